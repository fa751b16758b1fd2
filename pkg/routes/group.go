package routes

import "github.com/JaimeStill/slide-lab/pkg/openapi"

// Group is a set of routes sharing a URL prefix, tags, and component schemas.
// Children nest beneath the parent prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec records every documented route in spec under basePath+Prefix.
// Operations without explicit tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g Group) addToSpec(parentPath string, spec *openapi.Spec) {
	prefix := parentPath + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec)
	}
}
