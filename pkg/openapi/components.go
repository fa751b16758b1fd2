package openapi

// Components holds reusable schemas and responses.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// NewComponents creates Components with the shared error responses registered.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":          errorResponse("Malformed request"),
			"Forbidden":           errorResponse("Caller does not own the presentation"),
			"NotFound":            errorResponse("Resource not found"),
			"Conflict":            errorResponse("Slide position out of range"),
			"UnprocessableEntity": errorResponse("Generated content failed parsing or validation"),
			"BadGateway":          errorResponse("Generative service failed"),
			"ServiceUnavailable":  errorResponse("Presentation is busy; retry later"),
			"GatewayTimeout":      errorResponse("Generative service timed out"),
		},
	}
}

// AddSchemas merges schemas, replacing existing names.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	if c.Schemas == nil {
		c.Schemas = make(map[string]*Schema, len(schemas))
	}
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}
