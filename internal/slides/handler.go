package slides

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/suggestions"
	"github.com/JaimeStill/slide-lab/pkg/handlers"
	"github.com/JaimeStill/slide-lab/pkg/routes"
)

// Handler provides HTTP handlers for slide operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new slides HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the slide endpoints and the slide collection endpoints
// nested under presentations.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/presentations/{id}/slides",
			Tags:        []string{"Slides"},
			Description: "Slides of a presentation",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
				{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			},
		},
		{
			Prefix:      "/slides",
			Tags:        []string{"Slides"},
			Description: "Slide editing, ordering, and suggestions",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
				{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
				{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
				{Method: "POST", Pattern: "/{id}/move", Handler: h.Move, OpenAPI: Spec.Move},
				{Method: "POST", Pattern: "/{id}/duplicate", Handler: h.Duplicate, OpenAPI: Spec.Duplicate},
				{Method: "POST", Pattern: "/{id}/suggestions", Handler: h.ApplySuggestion, OpenAPI: Spec.ApplySuggestion},
			},
			Schemas: Schemas,
		},
	}
}

// List handles GET /api/presentations/{id}/slides.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.List(r.Context(), handlers.CallerID(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create handles POST /api/presentations/{id}/slides.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), handlers.CallerID(r), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Find(r.Context(), handlers.CallerID(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[UpdateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Update(r.Context(), handlers.CallerID(r), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), handlers.CallerID(r), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Move handles POST /api/slides/{id}/move and returns the reordered slides.
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[MoveCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Move(r.Context(), handlers.CallerID(r), id, cmd.Position)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Duplicate(r.Context(), handlers.CallerID(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ApplySuggestion handles POST /api/slides/{id}/suggestions.
func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	body, err := handlers.DecodeJSON[map[string]any](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sg, err := suggestions.FromMap(body)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.ApplySuggestion(r.Context(), handlers.CallerID(r), id, sg)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}
