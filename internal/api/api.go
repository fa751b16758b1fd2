// Package api assembles the HTTP module that exposes the domain systems
// under the configured base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/infrastructure"
	"github.com/JaimeStill/slide-lab/pkg/middleware"
	"github.com/JaimeStill/slide-lab/pkg/module"
	"github.com/JaimeStill/slide-lab/pkg/openapi"
)

// NewModule builds the API module with its OpenAPI document served at /openapi.json.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
