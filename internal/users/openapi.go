package users

import "github.com/JaimeStill/promptsaver/pkg/openapi"

// Schemas returns the component schemas used by the account endpoints.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"username":   {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"RegisterCommand": {
			Type:     "object",
			Required: []string{"username", "email", "password"},
			Properties: map[string]*openapi.Schema{
				"username": {Type: "string"},
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", Format: "password"},
			},
		},
		"LoginCommand": {
			Type:     "object",
			Required: []string{"username", "password"},
			Properties: map[string]*openapi.Schema{
				"username": {Type: "string"},
				"password": {Type: "string", Format: "password"},
				"remember": {Type: "boolean", Description: "Keep the session for the remember TTL"},
			},
		},
	}
}

// PathItems returns the account operations keyed by path relative to the API base.
func PathItems() map[string]*openapi.PathItem {
	tags := []string{"Auth"}

	return map[string]*openapi.PathItem{
		"/auth/register": {
			Post: &openapi.Operation{
				Summary:     "Create an account",
				Tags:        tags,
				RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Account created", "User"),
					400: openapi.ResponseRef("BadRequest"),
					409: openapi.ResponseRef("Conflict"),
				},
			},
		},
		"/auth/login": {
			Post: &openapi.Operation{
				Summary:     "Sign in and start a session",
				Tags:        tags,
				RequestBody: openapi.RequestBodyJSON("LoginCommand", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Signed in", "User"),
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/auth/logout": {
			Post: &openapi.Operation{
				Summary: "End the current session",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					204: {Description: "Signed out"},
				},
			},
		},
		"/auth/me": {
			Get: &openapi.Operation{
				Summary: "Get the signed in user",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Current user", "User"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
	}
}
