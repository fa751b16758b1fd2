package slides

import (
	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/suggestions"
)

// CreateCommand inserts a slide. A nil Position appends after the last slide.
type CreateCommand struct {
	Position *int   `json:"position,omitempty"`
	Title    string `json:"title"`
	Layout   string `json:"layout"`
}

// UpdateCommand replaces the fields that are present. slide_number is never
// changed by an update; use Move.
type UpdateCommand struct {
	Title      *string          `json:"title,omitempty"`
	Layout     *string          `json:"layout,omitempty"`
	Elements   []deck.Element   `json:"elements,omitempty"`
	Background *deck.Background `json:"background,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
	Duration   *int             `json:"duration,omitempty"`
	Transition *string          `json:"transition,omitempty"`
}

// MoveCommand moves a slide to a 1-based position.
type MoveCommand struct {
	Position int `json:"position"`
}

// SuggestionCommand is the request body for applying a suggestion.
type SuggestionCommand = suggestions.Suggestion
