package presentations

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/pkg/handlers"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
	"github.com/JaimeStill/slide-lab/pkg/routes"
)

// Handler provides HTTP handlers for presentation operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new presentations HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger,
		pagination: pagination,
	}
}

// Routes returns the route group for presentation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/presentations",
		Tags:        []string{"Presentations"},
		Description: "Presentation management and generation",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "GET", Pattern: "/{id}/view", Handler: h.View, OpenAPI: Spec.View},
			{Method: "POST", Pattern: "/{id}/duplicate", Handler: h.Duplicate, OpenAPI: Spec.Duplicate},
			{Method: "POST", Pattern: "/{id}/share", Handler: h.Share, OpenAPI: Spec.Share},
			{Method: "GET", Pattern: "/{id}/preview", Handler: h.Preview, OpenAPI: Spec.Preview},
			{Method: "POST", Pattern: "/assemble", Handler: h.Assemble, OpenAPI: Spec.Assemble},
			{Method: "POST", Pattern: "/generate", Handler: h.Generate, OpenAPI: Spec.Generate},
			{Method: "POST", Pattern: "/outline", Handler: h.Outline, OpenAPI: Spec.Outline},
			{Method: "POST", Pattern: "/generate-from-outline", Handler: h.GenerateFromOutline, OpenAPI: Spec.GenerateFromOutline},
		},
		Schemas: Schemas,
	}
}

// List handles GET /api/presentations with the caller's presentations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := gateway.FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), handlers.CallerID(r), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), handlers.CallerID(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Find handles GET /api/presentations/{id} and returns the presentation
// with its slides.
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

// View handles GET /api/presentations/{id}/view.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.View(r.Context(), handlers.CallerID(r), id)
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

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Share(r.Context(), handlers.CallerID(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Preview handles GET /api/presentations/{id}/preview?token=.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result, err := h.sys.Preview(r.Context(), handlers.CallerID(r), id, r.URL.Query().Get("token"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Assemble handles POST /api/presentations/assemble with raw generated text.
func (h *Handler) Assemble(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[AssembleCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Assemble(r.Context(), handlers.CallerID(r), cmd.Content)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[GenerateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Generate(r.Context(), handlers.CallerID(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) Outline(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[OutlineCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.GenerateOutline(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) GenerateFromOutline(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[FromOutlineCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.GenerateFromOutline(r.Context(), handlers.CallerID(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}
