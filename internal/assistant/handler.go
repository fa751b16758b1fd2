package assistant

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/presentations"
	"github.com/JaimeStill/slide-lab/pkg/handlers"
	"github.com/JaimeStill/slide-lab/pkg/routes"
)

// Handler provides HTTP handlers for assistant operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a new assistant HTTP handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

// Routes returns the content helpers and the per-presentation conversation.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/assistant",
			Tags:        []string{"Assistant"},
			Description: "Generated slide content and rewrites",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/slide-content", Handler: h.SlideContent, OpenAPI: Spec.SlideContent},
				{Method: "POST", Pattern: "/improve", Handler: h.Improve, OpenAPI: Spec.Improve},
			},
			Schemas: Schemas,
		},
		{
			Prefix:      "/presentations/{id}/chat",
			Tags:        []string{"Assistant"},
			Description: "Conversation about a presentation",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.History, OpenAPI: Spec.History},
				{Method: "POST", Pattern: "", Handler: h.Chat, OpenAPI: Spec.Chat},
			},
		},
	}
}

func (h *Handler) SlideContent(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[SlideContentCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.GenerateSlideContent(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, presentations.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Improve(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[ImproveCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ImproveContent(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, presentations.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Chat handles POST /api/presentations/{id}/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, err := handlers.DecodeJSON[ChatCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Chat(r.Context(), handlers.CallerID(r), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, presentations.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// History handles GET /api/presentations/{id}/chat?limit=n.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid limit: %w", err))
			return
		}
		limit = n
	}

	result, err := h.sys.History(r.Context(), handlers.CallerID(r), id, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, presentations.MapHTTPStatus(err), err)
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
