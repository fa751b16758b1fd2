package slides

import (
	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/pkg/openapi"
)

type spec struct {
	List            *openapi.Operation
	Create          *openapi.Operation
	Find            *openapi.Operation
	Update          *openapi.Operation
	Delete          *openapi.Operation
	Move            *openapi.Operation
	Duplicate       *openapi.Operation
	ApplySuggestion *openapi.Operation
}

var userHeader = openapi.HeaderParam("X-User-ID", "Caller identity forwarded by the credential layer", false)

// Spec contains OpenAPI operation definitions for all slide endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List slides",
		Description: "Returns the presentation's slides in slide_number order",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Slides in order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Slide")}},
				},
			},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Insert slide",
		Description: "Inserts a slide at position, shifting later slides by one. Omitting position appends",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Presentation UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("CreateSlideCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Slide created", "Slide"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get slide",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Slide", "Slide"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update slide",
		Description: "Replaces the fields present in the body. slide_number is unchanged",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("UpdateSlideCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Slide updated", "Slide"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete slide",
		Description: "Removes the slide and renumbers later slides",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			204: {Description: "Slide deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Move: &openapi.Operation{
		Summary:     "Move slide",
		Description: "Moves the slide to position and returns the reordered slides",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("MoveSlideCommand", true),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Slides in their new order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Slide")}},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Duplicate: &openapi.Operation{
		Summary:     "Duplicate slide",
		Description: "Copies the slide directly after the source",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Slide copy", "Slide"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	ApplySuggestion: &openapi.Operation{
		Summary:     "Apply suggestion",
		Description: "Applies a content, layout, or style patch to the slide's elements",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Slide UUID"), userHeader},
		RequestBody: openapi.RequestBodyJSON("Suggestion", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Slide with suggestion applied", "Slide"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
}

func layoutEnum() []any {
	out := make([]any, len(deck.Layouts))
	for i, l := range deck.Layouts {
		out[i] = string(l)
	}
	return out
}

func percent() *openapi.Schema {
	lo, hi := 0.0, 100.0
	return &openapi.Schema{Type: "number", Minimum: &lo, Maximum: &hi}
}

var jsonObject = &openapi.Schema{Type: "object", AdditionalProperties: &openapi.Schema{}}

// Schemas defines the slide component schemas.
var Schemas = map[string]*openapi.Schema{
	"Position": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"x":       percent(),
			"y":       percent(),
			"width":   percent(),
			"height":  percent(),
			"z_index": {Type: "integer"},
		},
	},
	"Element": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":        {Type: "string"},
			"type":      {Type: "string", Enum: []any{"text", "image", "shape"}},
			"position":  openapi.SchemaRef("Position"),
			"content":   jsonObject,
			"style":     jsonObject,
			"locked":    {Type: "boolean"},
			"visible":   {Type: "boolean"},
			"animation": jsonObject,
		},
		Required: []string{"type", "position"},
	},
	"Background": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"type":      {Type: "string", Example: "solid"},
			"color":     {Type: "string", Example: "#FFFFFF"},
			"gradient":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"image_url": {Type: "string"},
			"opacity":   {Type: "number"},
		},
	},
	"Slide": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":              {Type: "string", Format: "uuid"},
			"presentation_id": {Type: "string", Format: "uuid"},
			"slide_number":    {Type: "integer"},
			"title":           {Type: "string"},
			"layout":          {Type: "string", Enum: layoutEnum()},
			"elements":        {Type: "array", Items: openapi.SchemaRef("Element")},
			"background":      openapi.SchemaRef("Background"),
			"notes":           {Type: "string"},
			"duration":        {Type: "integer"},
			"transition":      {Type: "string"},
			"created_at":      {Type: "string", Format: "date-time"},
			"updated_at":      {Type: "string", Format: "date-time"},
		},
	},
	"CreateSlideCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"position": {Type: "integer", Description: "1-based insert position; omitted appends"},
			"title":    {Type: "string", Example: deck.DefaultTitle},
			"layout":   {Type: "string", Enum: layoutEnum()},
		},
	},
	"UpdateSlideCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"title":      {Type: "string"},
			"layout":     {Type: "string", Enum: layoutEnum()},
			"elements":   {Type: "array", Items: openapi.SchemaRef("Element")},
			"background": openapi.SchemaRef("Background"),
			"notes":      {Type: "string"},
			"duration":   {Type: "integer"},
			"transition": {Type: "string"},
		},
	},
	"MoveSlideCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"position": {Type: "integer", Description: "1-based target position"},
		},
		Required: []string{"position"},
	},
	"Suggestion": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"kind":     {Type: "string", Enum: []any{"content", "layout", "style"}},
			"elements": {Type: "array", Items: openapi.SchemaRef("Element")},
			"layout_updates": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"element_id": {Type: "string"},
						"position":   openapi.SchemaRef("Position"),
					},
				},
			},
			"style_updates": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"element_id": {Type: "string"},
						"style":      jsonObject,
					},
				},
			},
		},
		Required: []string{"kind"},
	},
}
