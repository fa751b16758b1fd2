package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/JaimeStill/slide-lab/pkg/middleware"
	"github.com/JaimeStill/slide-lab/pkg/openapi"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

const (
	// EnvAPIBasePath overrides the prefix every API route is mounted under.
	EnvAPIBasePath = "API_BASE_PATH"

	// EnvAPIShareBaseURL overrides the origin used to build share links.
	EnvAPIShareBaseURL = "API_SHARE_BASE_URL"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig configures the HTTP API module. ShareBaseURL is the origin that
// share links point at, typically the editor front end; when empty, links
// point at the API's own preview route.
type APIConfig struct {
	BasePath     string                `toml:"base_path"`
	ShareBaseURL string                `toml:"share_base_url"`
	CORS         middleware.CORSConfig `toml:"cors"`
	Pagination   pagination.Config     `toml:"pagination"`
	OpenAPI      openapi.Config        `toml:"openapi"`
}

// ShareURL returns the base that share links are built on. domain is the
// service's public URL, used when no ShareBaseURL is configured.
func (c *APIConfig) ShareURL(domain string) string {
	if c.ShareBaseURL != "" {
		return c.ShareBaseURL
	}
	return strings.TrimSuffix(domain, "/") + c.BasePath
}

// Finalize applies defaults, loads environment overrides, and validates the API configuration.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.ShareBaseURL != "" {
		c.ShareBaseURL = overlay.ShareBaseURL
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIShareBaseURL); v != "" {
		c.ShareBaseURL = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	c.ShareBaseURL = strings.TrimSuffix(c.ShareBaseURL, "/")
	if c.ShareBaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.ShareBaseURL)
	if err != nil {
		return fmt.Errorf("invalid share_base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("share_base_url must be absolute: %q", c.ShareBaseURL)
	}
	return nil
}
