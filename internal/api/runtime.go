package api

import (
	"fmt"

	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/infrastructure"
	"github.com/JaimeStill/slide-lab/internal/templates"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Concurrency int
	ShareURL    string
	Templates   *templates.Catalog
}

// NewRuntime creates an API runtime with a module-scoped logger and the
// built-in template catalog.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	catalog, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Concurrency:    cfg.Generator.MaxConcurrency,
		ShareURL:       cfg.API.ShareURL(cfg.Domain),
		Templates:      catalog,
	}, nil
}
