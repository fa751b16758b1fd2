package assistant

import (
	"fmt"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

// Chat limits.
const (
	HistoryWindow       = 6
	HistoryExcerpt      = 100
	SlideExcerpt        = 200
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// ImprovementType selects the rewriting goal for ImproveContent.
type ImprovementType string

const (
	ImproveGeneral     ImprovementType = "general"
	ImproveClarity     ImprovementType = "clarity"
	ImproveEngagement  ImprovementType = "engagement"
	ImproveConciseness ImprovementType = "conciseness"
)

var improvementInstructions = map[ImprovementType]string{
	ImproveGeneral:     "Make the content more professional and engaging",
	ImproveClarity:     "Improve clarity and make the message clearer",
	ImproveEngagement:  "Make the content more engaging and impactful",
	ImproveConciseness: "Make the content more concise while retaining key information",
}

func (t ImprovementType) Valid() bool {
	_, ok := improvementInstructions[t]
	return ok
}

// SlideContentCommand requests content for a single slide.
type SlideContentCommand struct {
	Title   string `json:"title"`
	Context string `json:"context,omitempty"`
	Layout  string `json:"layout,omitempty"`
}

func (c SlideContentCommand) validate() error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", deck.ErrSchemaValidation)
	}
	if c.Layout != "" && !deck.Layout(c.Layout).Valid() {
		return fmt.Errorf("%w: unknown layout %q", deck.ErrSchemaValidation, c.Layout)
	}
	return nil
}

// SlideContent is generated content for one slide.
type SlideContent struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	SpeakerNotes string `json:"speaker_notes"`
	Layout       string `json:"layout,omitempty"`
}

// ImproveCommand requests a rewrite of existing slide content.
type ImproveCommand struct {
	Content string          `json:"content"`
	Type    ImprovementType `json:"type,omitempty"`
	Context string          `json:"context,omitempty"`
}

func (c *ImproveCommand) normalize() error {
	if c.Content == "" {
		return fmt.Errorf("%w: content is required", deck.ErrSchemaValidation)
	}
	// Unrecognized goals fall back to a general rewrite.
	if !c.Type.Valid() {
		c.Type = ImproveGeneral
	}
	return nil
}

// Improvement is a rewritten version of slide content.
type Improvement struct {
	ImprovedContent string `json:"improved_content"`
	ChangesMade     string `json:"changes_made"`
	Suggestions     string `json:"suggestions"`
}

// ChatCommand is one user turn. SlideID scopes the turn to a slide.
type ChatCommand struct {
	Message string  `json:"message"`
	SlideID *string `json:"slide_id,omitempty"`
}

// Exchange is a persisted user message and the assistant's reply.
type Exchange struct {
	UserMessage      deck.ChatMessage `json:"user_message"`
	AssistantMessage deck.ChatMessage `json:"assistant_message"`
}
