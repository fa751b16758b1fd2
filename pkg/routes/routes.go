// Package routes registers route groups on an http.ServeMux and documents
// them in an OpenAPI spec.
package routes

import (
	"net/http"

	"github.com/JaimeStill/slide-lab/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler with optional documentation.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Register mounts every group's routes on mux relative to the module root
// and documents them in spec beneath basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parent string, group Group) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
