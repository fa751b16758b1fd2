package templates

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/slide-lab/pkg/handlers"
	"github.com/JaimeStill/slide-lab/pkg/routes"
)

// Handler provides HTTP handlers for the template catalog.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new templates HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the route group for template endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/templates",
		Tags:        []string{"Templates"},
		Description: "Template catalog and application",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/categories", Handler: h.Categories, OpenAPI: Spec.Categories},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "/apply", Handler: h.Apply, OpenAPI: Spec.Apply},
		},
		Schemas: Schemas,
	}
}

// List handles GET /api/templates with an optional category filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.List(r.URL.Query().Get("category")))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string][]string{
		"categories": h.sys.Categories(),
	})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Find(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Apply handles POST /api/templates/apply.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[ApplyCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Apply(r.Context(), handlers.CallerID(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
