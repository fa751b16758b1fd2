// Package assembler turns untrusted generated text into a validated
// presentation: it strips code fences, decodes a strict draft schema, and
// lowers every draft into slides with synthesized element geometry.
//
// Assembly is all-or-nothing. Any draft that fails validation fails the
// whole result, so callers only persist fully formed presentations.
package assembler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/geometry"
	"github.com/JaimeStill/slide-lab/internal/ordering"
)

// GeneratedSlideDraft is one unvalidated slide description.
type GeneratedSlideDraft struct {
	Title        string `json:"title"`
	Content      string `json:"content,omitempty"`
	Layout       string `json:"layout,omitempty"`
	SpeakerNotes string `json:"speaker_notes,omitempty"`
}

// GeneratedPresentation is the decoded full-mode payload.
type GeneratedPresentation struct {
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Slides      []GeneratedSlideDraft `json:"slides"`
}

// OutlineItem is one slide of an outline-mode payload.
type OutlineItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Layout      string `json:"layout,omitempty"`
}

// GeneratedOutline is the decoded outline-mode payload.
type GeneratedOutline struct {
	Topic   string        `json:"topic"`
	Outline []OutlineItem `json:"outline"`
}

// Result is a lowered presentation ready for a single batch write.
type Result struct {
	Presentation deck.Presentation
	Slides       []deck.Slide
}

// Detail returns the result as a presentation detail.
func (r Result) Detail() deck.Detail {
	return deck.Detail{Presentation: r.Presentation, Slides: r.Slides}
}

// ParsePresentation decodes full-mode generated text. Unparseable input
// fails with deck.ErrContentFormat; a missing title, an empty slides list,
// or a malformed draft fails with deck.ErrSchemaValidation.
func ParsePresentation(raw string) (GeneratedPresentation, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return GeneratedPresentation{}, err
	}

	var gp GeneratedPresentation
	if gp.Title, err = requireString(fields, "title"); err != nil {
		return GeneratedPresentation{}, err
	}
	if gp.Description, err = optionalString(fields, "description"); err != nil {
		return GeneratedPresentation{}, err
	}

	items, err := requireList(fields, "slides")
	if err != nil {
		return GeneratedPresentation{}, err
	}

	gp.Slides = make([]GeneratedSlideDraft, len(items))
	for i, item := range items {
		draft, err := parseDraft(item)
		if err != nil {
			return GeneratedPresentation{}, fmt.Errorf("slide %d: %w", i+1, err)
		}
		gp.Slides[i] = draft
	}

	return gp, nil
}

// ParseOutline decodes outline-mode generated text.
func ParseOutline(raw string) (GeneratedOutline, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return GeneratedOutline{}, err
	}

	var out GeneratedOutline
	if out.Topic, err = requireString(fields, "topic"); err != nil {
		return GeneratedOutline{}, err
	}

	items, err := requireList(fields, "outline")
	if err != nil {
		return GeneratedOutline{}, err
	}

	out.Outline = make([]OutlineItem, len(items))
	for i, item := range items {
		var oi OutlineItem
		if oi.Title, err = requireString(item, "title"); err != nil {
			return GeneratedOutline{}, fmt.Errorf("outline item %d: %w", i+1, err)
		}
		if oi.Description, err = optionalString(item, "description"); err != nil {
			return GeneratedOutline{}, fmt.Errorf("outline item %d: %w", i+1, err)
		}
		if oi.Layout, err = optionalString(item, "layout"); err != nil {
			return GeneratedOutline{}, fmt.Errorf("outline item %d: %w", i+1, err)
		}
		out.Outline[i] = oi
	}

	return out, nil
}

// ParseDraft decodes a single generated slide description.
func ParseDraft(raw string) (GeneratedSlideDraft, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return GeneratedSlideDraft{}, err
	}
	return parseDraft(fields)
}

func parseDraft(fields map[string]json.RawMessage) (GeneratedSlideDraft, error) {
	var d GeneratedSlideDraft
	var err error
	if d.Title, err = requireString(fields, "title"); err != nil {
		return d, err
	}
	if d.Content, err = optionalText(fields, "content"); err != nil {
		return d, err
	}
	if d.Layout, err = optionalString(fields, "layout"); err != nil {
		return d, err
	}
	if d.SpeakerNotes, err = optionalText(fields, "speaker_notes"); err != nil {
		return d, err
	}
	return d, nil
}

// Assemble parses raw full-mode text and lowers it for ownerID.
func Assemble(ownerID, raw string, now time.Time) (Result, error) {
	gp, err := ParsePresentation(raw)
	if err != nil {
		return Result{}, err
	}
	return Lower(ownerID, gp, now)
}

// Lower converts a decoded presentation into concrete records. The first
// slide is a title slide, the last a conclusion, and the rest keep their
// requested layout or fall back to content. Numbers follow submission order.
func Lower(ownerID string, gp GeneratedPresentation, now time.Time) (Result, error) {
	if len(gp.Slides) == 0 {
		return Result{}, fmt.Errorf("%w: slides must not be empty", deck.ErrSchemaValidation)
	}

	p := deck.Presentation{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       gp.Title,
		Description: gp.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	slides := make([]deck.Slide, 0, len(gp.Slides))
	for i, draft := range gp.Slides {
		slide, err := lowerDraft(p.ID, draft, LayoutFor(i+1, len(gp.Slides), draft.Layout), i+1, now)
		if err != nil {
			return Result{}, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, slide)
	}

	if err := ordering.Validate(slides); err != nil {
		return Result{}, fmt.Errorf("%w: %v", deck.ErrSchemaValidation, err)
	}

	p.SlideIDs = ordering.IDs(slides)
	return Result{Presentation: p, Slides: slides}, nil
}

// LayoutFor picks the layout for the slide at 1-based index of count.
// Unrecognized requested layouts fall back to content.
func LayoutFor(index, count int, requested string) deck.Layout {
	switch {
	case index == 1:
		return deck.LayoutTitleSlide
	case index == count:
		return deck.LayoutConclusion
	}
	if l := deck.Layout(requested); l.Valid() {
		return l
	}
	return deck.LayoutContent
}

func lowerDraft(presentationID uuid.UUID, draft GeneratedSlideDraft, layout deck.Layout, number int, now time.Time) (deck.Slide, error) {
	elements := []deck.Element{
		geometry.TextElement(geometry.RoleTitle, layout, draft.Title),
	}
	if draft.Content != "" {
		elements = append(elements, geometry.TextElement(geometry.RoleBody, layout, draft.Content))
	}

	slide := deck.Slide{
		ID:             uuid.New(),
		PresentationID: presentationID,
		SlideNumber:    number,
		Title:          draft.Title,
		Layout:         layout,
		Elements:       elements,
		Background:     deck.DefaultBackground(),
		Notes:          draft.SpeakerNotes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := slide.Validate(); err != nil {
		return deck.Slide{}, err
	}
	return slide, nil
}
