package api

import (
	"net/http"

	"github.com/JaimeStill/slide-lab/internal/assistant"
	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/presentations"
	"github.com/JaimeStill/slide-lab/internal/slides"
	"github.com/JaimeStill/slide-lab/internal/templates"
	"github.com/JaimeStill/slide-lab/pkg/openapi"
	"github.com/JaimeStill/slide-lab/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	presentationsHandler := presentations.NewHandler(domain.Presentations, runtime.Logger, runtime.Pagination)
	slidesHandler := slides.NewHandler(domain.Slides, runtime.Logger)
	assistantHandler := assistant.NewHandler(domain.Assistant, runtime.Logger)
	templatesHandler := templates.NewHandler(domain.Templates, runtime.Logger)

	groups := []routes.Group{presentationsHandler.Routes(), templatesHandler.Routes()}
	groups = append(groups, slidesHandler.Routes()...)
	groups = append(groups, assistantHandler.Routes()...)

	routes.Register(mux, cfg.API.BasePath, spec, groups...)
}
