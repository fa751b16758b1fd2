// Package assistant provides generative help while editing: content for a
// single slide, rewrites of existing content, and a conversation scoped to
// one presentation.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/assembler"
	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/generator"
	"github.com/JaimeStill/slide-lab/internal/presentations"
)

// System defines assistant operations.
type System interface {
	GenerateSlideContent(ctx context.Context, cmd SlideContentCommand) (SlideContent, error)
	ImproveContent(ctx context.Context, cmd ImproveCommand) (Improvement, error)
	Chat(ctx context.Context, caller string, presentationID uuid.UUID, cmd ChatCommand) (Exchange, error)
	History(ctx context.Context, caller string, presentationID uuid.UUID, limit int) ([]deck.ChatMessage, error)
}

type system struct {
	gw     gateway.Gateway
	gen    generator.Client
	pres   presentations.System
	logger *slog.Logger
	now    func() time.Time
}

// New creates the assistant system. pres authorizes access to the
// presentation a conversation belongs to.
func New(gw gateway.Gateway, gen generator.Client, pres presentations.System, logger *slog.Logger) System {
	return &system{
		gw:     gw,
		gen:    gen,
		pres:   pres,
		logger: logger.With("system", "assistant"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *system) GenerateSlideContent(ctx context.Context, cmd SlideContentCommand) (SlideContent, error) {
	if err := cmd.validate(); err != nil {
		return SlideContent{}, err
	}

	session := "slide-" + uuid.NewString()
	raw, err := s.gen.Generate(ctx, slideContentPrompt(cmd), slideContentSystemPrompt, session)
	if err != nil {
		return SlideContent{}, err
	}

	draft, err := assembler.ParseDraft(raw)
	if err != nil {
		s.logger.Warn("generated slide content rejected", "session", session, "error", err)
		return SlideContent{}, err
	}

	return SlideContent{
		Title:        draft.Title,
		Content:      draft.Content,
		SpeakerNotes: draft.SpeakerNotes,
		Layout:       cmd.Layout,
	}, nil
}

func (s *system) ImproveContent(ctx context.Context, cmd ImproveCommand) (Improvement, error) {
	if err := cmd.normalize(); err != nil {
		return Improvement{}, err
	}

	session := "improve-" + uuid.NewString()
	raw, err := s.gen.Generate(ctx, improvePrompt(cmd), improveSystemPrompt(cmd.Type), session)
	if err != nil {
		return Improvement{}, err
	}

	fields, err := assembler.ParseFields(raw,
		[]string{"improved_content"},
		[]string{"changes_made", "suggestions"},
	)
	if err != nil {
		s.logger.Warn("generated improvement rejected", "session", session, "error", err)
		return Improvement{}, err
	}

	return Improvement{
		ImprovedContent: fields["improved_content"],
		ChangesMade:     fields["changes_made"],
		Suggestions:     fields["suggestions"],
	}, nil
}

// Chat answers one user turn. Both messages are stored only after the
// generator replies.
func (s *system) Chat(ctx context.Context, caller string, presentationID uuid.UUID, cmd ChatCommand) (Exchange, error) {
	if cmd.Message == "" {
		return Exchange{}, fmt.Errorf("%w: message is required", deck.ErrSchemaValidation)
	}

	p, err := s.pres.Authorize(ctx, caller, presentationID)
	if err != nil {
		return Exchange{}, err
	}

	slide, err := s.contextSlide(ctx, presentationID, cmd.SlideID)
	if err != nil {
		return Exchange{}, err
	}

	history, err := s.gw.Messages(ctx, presentationID, HistoryWindow)
	if err != nil {
		return Exchange{}, err
	}

	reply, err := s.gen.Generate(ctx, chatPrompt(history, cmd.Message), chatSystem(p, slide), "chat-"+presentationID.String())
	if err != nil {
		return Exchange{}, err
	}

	var slideID *uuid.UUID
	if slide != nil {
		slideID = &slide.ID
	}

	userAt := s.now()
	ex := Exchange{
		UserMessage: deck.ChatMessage{
			ID:             uuid.New(),
			PresentationID: presentationID,
			SlideID:        slideID,
			Role:           deck.ChatUser,
			Content:        cmd.Message,
			CreatedAt:      userAt,
		},
		AssistantMessage: deck.ChatMessage{
			ID:             uuid.New(),
			PresentationID: presentationID,
			SlideID:        slideID,
			Role:           deck.ChatAssistant,
			Content:        reply,
			CreatedAt:      userAt.Add(time.Microsecond),
		},
	}

	if err := s.gw.AppendMessages(ctx, ex.UserMessage, ex.AssistantMessage); err != nil {
		return Exchange{}, err
	}

	s.logger.Info("chat exchange", "presentation", presentationID, "slide", slideID, "history", len(history))
	return ex, nil
}

// History returns up to limit recent messages, oldest first.
func (s *system) History(ctx context.Context, caller string, presentationID uuid.UUID, limit int) ([]deck.ChatMessage, error) {
	if _, err := s.pres.Authorize(ctx, caller, presentationID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	return s.gw.Messages(ctx, presentationID, limit)
}

func (s *system) contextSlide(ctx context.Context, presentationID uuid.UUID, raw *string) (*deck.Slide, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: slide_id: %v", deck.ErrSchemaValidation, err)
	}

	slide, err := s.gw.FindSlide(ctx, id)
	if err != nil {
		return nil, err
	}
	if slide.PresentationID != presentationID {
		return nil, fmt.Errorf("slide %s in presentation %s: %w", id, presentationID, deck.ErrNotFound)
	}
	return &slide, nil
}
