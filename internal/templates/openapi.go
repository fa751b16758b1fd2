package templates

import (
	"github.com/JaimeStill/slide-lab/pkg/openapi"
)

type spec struct {
	List       *openapi.Operation
	Categories *openapi.Operation
	Find       *openapi.Operation
	Apply      *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all template endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List templates",
		Description: "Returns the template catalog, optionally limited to one category",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("category", "string", "Exact category name", false),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Templates",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Template")}},
				},
			},
		},
	},
	Categories: &openapi.Operation{
		Summary:     "List template categories",
		Description: "Returns the distinct catalog categories in sorted order",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Template categories", "TemplateCategories"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get template",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Template id")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Template", "Template"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Apply: &openapi.Operation{
		Summary:     "Apply template",
		Description: "Restyles every slide of a presentation and records the template on it",
		Parameters: []*openapi.Parameter{
			openapi.HeaderParam("X-User-ID", "Caller identity forwarded by the credential layer", false),
		},
		RequestBody: openapi.RequestBodyJSON("ApplyTemplateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Template applied", "ApplyTemplateResult"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
}

var colorSchemeSchema = &openapi.Schema{
	Type: "object",
	Properties: map[string]*openapi.Schema{
		"primary":    {Type: "string", Example: "#2563EB"},
		"secondary":  {Type: "string"},
		"background": {Type: "string"},
		"text":       {Type: "string"},
	},
}

var fontPairingSchema = &openapi.Schema{
	Type: "object",
	Properties: map[string]*openapi.Schema{
		"heading": {Type: "string", Example: "Inter"},
		"body":    {Type: "string"},
	},
}

// Schemas defines the template component schemas.
var Schemas = map[string]*openapi.Schema{
	"Template": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string"},
			"name":          {Type: "string"},
			"category":      {Type: "string"},
			"description":   {Type: "string"},
			"thumbnail_url": {Type: "string"},
			"color_scheme":  colorSchemeSchema,
			"font_family":   {Type: "string"},
			"slide_layouts": {
				Type: "array",
				Items: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"type":   {Type: "string"},
						"layout": {Type: "string"},
					},
				},
			},
		},
	},
	"TemplateCategories": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"categories": {Type: "array", Items: &openapi.Schema{Type: "string"}},
		},
	},
	"ApplyTemplateCommand": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"presentation_id": {Type: "string", Format: "uuid"},
			"template_id":     {Type: "string", Example: "template-modern-business"},
			"color_scheme":    colorSchemeSchema,
			"font_pairing":    fontPairingSchema,
		},
		Required: []string{"presentation_id", "template_id"},
	},
	"ApplyTemplateResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"template_id":    {Type: "string"},
			"slides_updated": {Type: "integer"},
			"presentation":   openapi.SchemaRef("PresentationDetail"),
		},
	},
}
