package assistant

import "github.com/JaimeStill/slide-lab/pkg/openapi"

type spec struct {
	SlideContent *openapi.Operation
	Improve      *openapi.Operation
	Chat         *openapi.Operation
	History      *openapi.Operation
}

var userHeader = openapi.HeaderParam("X-User-ID", "Caller identity forwarded by the credential layer", false)

// Spec contains OpenAPI operation definitions for all assistant endpoints.
var Spec = spec{
	SlideContent: &openapi.Operation{
		Summary:     "Generate slide content",
		Description: "Generates title, content, and speaker notes for one slide. Nothing is stored",
		RequestBody: openapi.RequestBodyJSON("SlideContentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Generated content", "SlideContent"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			502: openapi.ResponseRef("BadGateway"),
			504: openapi.ResponseRef("GatewayTimeout"),
		},
	},
	Improve: &openapi.Operation{
		Summary:     "Improve content",
		Description: "Rewrites slide content for general polish, clarity, engagement, or conciseness",
		RequestBody: openapi.RequestBodyJSON("ImproveCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Improved content", "Improvement"),
			400: openapi.ResponseRef("BadRequest"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			502: openapi.ResponseRef("BadGateway"),
			504: openapi.ResponseRef("GatewayTimeout"),
		},
	},
	Chat: &openapi.Operation{
		Summary:     "Send chat message",
		Description: "Answers a message using the presentation, the optional slide, and recent history as context",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("ChatCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stored exchange", "ChatExchange"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			502: openapi.ResponseRef("BadGateway"),
			504: openapi.ResponseRef("GatewayTimeout"),
		},
	},
	History: &openapi.Operation{
		Summary: "Chat history",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Presentation UUID"),
			openapi.QueryParam("limit", "integer", "Most recent messages to return (default 10)", false),
			userHeader,
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Messages, oldest first",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("ChatMessage")}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas defines the assistant component schemas.
var Schemas = map[string]*openapi.Schema{
	"SlideContentCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":   {Type: "string"},
			"context": {Type: "string"},
			"layout":  {Type: "string"},
		},
		Required: []string{"title"},
	},
	"SlideContent": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":         {Type: "string"},
			"content":       {Type: "string"},
			"speaker_notes": {Type: "string"},
			"layout":        {Type: "string"},
		},
	},
	"ImproveCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"content": {Type: "string"},
			"type":    {Type: "string", Enum: []any{"general", "clarity", "engagement", "conciseness"}},
			"context": {Type: "string"},
		},
		Required: []string{"content"},
	},
	"Improvement": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"improved_content": {Type: "string"},
			"changes_made":     {Type: "string"},
			"suggestions":      {Type: "string"},
		},
	},
	"ChatCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"message":  {Type: "string"},
			"slide_id": {Type: "string", Format: "uuid"},
		},
		Required: []string{"message"},
	},
	"ChatMessage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":              {Type: "string", Format: "uuid"},
			"presentation_id": {Type: "string", Format: "uuid"},
			"slide_id":        {Type: "string", Format: "uuid"},
			"role":            {Type: "string", Enum: []any{"user", "assistant"}},
			"content":         {Type: "string"},
			"created_at":      {Type: "string", Format: "date-time"},
		},
	},
	"ChatExchange": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"user_message":      openapi.SchemaRef("ChatMessage"),
			"assistant_message": openapi.SchemaRef("ChatMessage"),
		},
	},
}
