package prompts

import "github.com/JaimeStill/promptsaver/pkg/openapi"

// Schemas returns the component schemas used by the prompt endpoints.
func Schemas() map[string]*openapi.Schema {
	maxTitle := MaxTitleLength

	command := &openapi.Schema{
		Type:     "object",
		Required: []string{"title", "text"},
		Properties: map[string]*openapi.Schema{
			"title": {Type: "string", MaxLength: &maxTitle},
			"text":  {Type: "string"},
		},
	}

	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"user_id":    {Type: "string", Format: "uuid", Description: "Empty for the shared collection"},
				"title":      {Type: "string", MaxLength: &maxTitle},
				"text":       {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"PromptPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Prompt")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"PromptCommand": command,
		"PromptSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string", Description: "Matches title or text"},
				"sort":      {Type: "string"},
				"title":     {Type: "string", Description: "Title contains"},
			},
		},
		"Export": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":         {Type: "string"},
				"count":       {Type: "integer"},
				"exported_at": {Type: "string", Format: "date-time"},
			},
		},
		"ExportList": {
			Type: "array",
			Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"key":           {Type: "string"},
					"content_type":  {Type: "string"},
					"size":          {Type: "integer"},
					"last_modified": {Type: "string", Format: "date-time"},
				},
			},
		},
	}
}

// PathItems returns the prompt operations keyed by path relative to the API base.
func PathItems() map[string]*openapi.PathItem {
	tags := []string{"Prompts"}
	id := openapi.PathParam("id", "Prompt ID")

	return map[string]*openapi.PathItem{
		"/prompts": {
			Get: &openapi.Operation{
				Summary: "List the signed in user's prompts, newest first",
				Tags:    tags,
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("page", "integer", "Page number", false),
					openapi.QueryParam("page_size", "integer", "Results per page", false),
					openapi.QueryParam("search", "string", "Matches title or text", false),
					openapi.QueryParam("sort", "string", "Sort fields", false),
					openapi.QueryParam("title", "string", "Title contains", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Prompt page", "PromptPage"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
			Post: &openapi.Operation{
				Summary:     "Create a prompt",
				Tags:        tags,
				RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Created prompt", "Prompt"),
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/prompts/{id}": {
			Get: &openapi.Operation{
				Summary:    "Get a prompt",
				Tags:       tags,
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Prompt", "Prompt"),
					401: openapi.ResponseRef("Unauthorized"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
			Put: &openapi.Operation{
				Summary:     "Update a prompt",
				Tags:        tags,
				Parameters:  []*openapi.Parameter{id},
				RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Updated prompt", "Prompt"),
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
			Delete: &openapi.Operation{
				Summary:    "Delete a prompt",
				Tags:       tags,
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					204: {Description: "Deleted"},
					401: openapi.ResponseRef("Unauthorized"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/prompts/search": {
			Post: &openapi.Operation{
				Summary:     "Search the signed in user's prompts",
				Tags:        tags,
				RequestBody: openapi.RequestBodyJSON("PromptSearch", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Prompt page", "PromptPage"),
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/prompts/export": {
			Post: &openapi.Operation{
				Summary: "Write a JSON snapshot of the user's prompts to blob storage",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Snapshot written", "Export"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/prompts/exports": {
			Get: &openapi.Operation{
				Summary: "List the user's snapshots",
				Tags:    tags,
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Snapshots", "ExportList"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/prompts/exports/{key}": {
			Get: &openapi.Operation{
				Summary:    "Download a snapshot",
				Tags:       tags,
				Parameters: []*openapi.Parameter{openapi.StringPathParam("key", "Snapshot key")},
				Responses: map[int]*openapi.Response{
					200: {
						Description: "Snapshot JSON",
						Content: map[string]*openapi.MediaType{
							"application/json": {Schema: &openapi.Schema{Type: "object"}},
						},
					},
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
			Delete: &openapi.Operation{
				Summary:    "Delete a snapshot",
				Tags:       tags,
				Parameters: []*openapi.Parameter{openapi.StringPathParam("key", "Snapshot key")},
				Responses: map[int]*openapi.Response{
					204: {Description: "Deleted"},
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
					403: openapi.ResponseRef("Forbidden"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}
}
