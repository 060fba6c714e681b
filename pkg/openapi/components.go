package openapi

// Components holds reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents creates Components with the page request schema and the
// shared error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Matches title or text"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: title,-created_at"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   ResponseJSON("Invalid request", "Error"),
			"Unauthorized": ResponseJSON("Sign in required", "Error"),
			"Forbidden":    ResponseJSON("Resource belongs to another user", "Error"),
			"NotFound":     ResponseJSON("Resource not found", "Error"),
			"Conflict":     ResponseJSON("Username or email already taken", "Error"),
		},
	}
}
