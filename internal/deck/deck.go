// Package deck defines the presentation object graph shared by every
// presentation subsystem: presentations, slides, positioned elements, and
// the error taxonomy used to report structural failures.
package deck

import (
	"time"

	"github.com/google/uuid"
)

// Limits applied when validating slides.
const (
	MaxTitleLength = 200
	MaxNotesLength = 5000
	DefaultTitle   = "Untitled Slide"
)

// Layout tags a slide with its arrangement.
type Layout string

const (
	LayoutTitleSlide Layout = "title-slide"
	LayoutContent    Layout = "content"
	LayoutConclusion Layout = "conclusion"
	LayoutBlank      Layout = "blank"
	LayoutTwoColumn  Layout = "two-column"
	LayoutImageLeft  Layout = "image-left"
	LayoutImageRight Layout = "image-right"
	LayoutSection    Layout = "section"
)

// Layouts lists every recognized layout tag.
var Layouts = []Layout{
	LayoutTitleSlide,
	LayoutContent,
	LayoutConclusion,
	LayoutBlank,
	LayoutTwoColumn,
	LayoutImageLeft,
	LayoutImageRight,
	LayoutSection,
}

func (l Layout) Valid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

// ElementType discriminates element content and style payloads.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
)

func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementImage, ElementShape:
		return true
	default:
		return false
	}
}

// Position places an element as percentages of the slide canvas.
// Overflow past 100 on the far edges is permitted.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"z_index"`
}

// Element is a positioned visual item on a slide. Content and Style are
// type-specific payloads.
type Element struct {
	ID        string         `json:"id"`
	Type      ElementType    `json:"type"`
	Position  Position       `json:"position"`
	Content   map[string]any `json:"content"`
	Style     map[string]any `json:"style"`
	Locked    bool           `json:"locked"`
	Visible   bool           `json:"visible"`
	Animation map[string]any `json:"animation,omitempty"`
}

// Background describes the slide canvas fill.
type Background struct {
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Gradient []string `json:"gradient,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Opacity  float64  `json:"opacity"`
}

// DefaultBackground is a solid white fill.
func DefaultBackground() Background {
	return Background{Type: "solid", Color: "#FFFFFF", Opacity: 1.0}
}

// Slide is one page of a presentation. SlideNumber is authoritative for order.
type Slide struct {
	ID             uuid.UUID  `json:"id"`
	PresentationID uuid.UUID  `json:"presentation_id"`
	SlideNumber    int        `json:"slide_number"`
	Title          string     `json:"title"`
	Layout         Layout     `json:"layout"`
	Elements       []Element  `json:"elements"`
	Background     Background `json:"background"`
	Notes          string     `json:"notes"`
	Duration       *int       `json:"duration,omitempty"`
	Transition     string     `json:"transition,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Presentation is an owned, ordered collection of slides. SlideIDs is
// advisory and always mirrors slide_number order after a write. ShareToken
// grants preview access while the presentation is public and is never
// serialized with the record.
type Presentation struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      string      `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	TemplateID   *string     `json:"template_id,omitempty"`
	ThumbnailURL *string     `json:"thumbnail_url,omitempty"`
	SlideIDs     []uuid.UUID `json:"slide_ids"`
	IsPublic     bool        `json:"is_public"`
	ViewCount    int         `json:"view_count"`
	ShareToken   string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Detail pairs a presentation with its slides in slide_number order.
type Detail struct {
	Presentation
	Slides []Slide `json:"slides"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatUser      ChatRole = "user"
	ChatAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the assistant conversation attached to a presentation.
type ChatMessage struct {
	ID             uuid.UUID  `json:"id"`
	PresentationID uuid.UUID  `json:"presentation_id"`
	SlideID        *uuid.UUID `json:"slide_id,omitempty"`
	Role           ChatRole   `json:"role"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at"`
}
