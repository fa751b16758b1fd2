// Package suggestions applies typed partial patches proposed by the
// assistant to a slide's element tree. Every operation returns a new slide
// and leaves the input untouched.
package suggestions

import (
	"fmt"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/geometry"
	"github.com/JaimeStill/slide-lab/pkg/decode"
)

// Kind selects which part of a slide a suggestion targets.
type Kind string

const (
	KindContent Kind = "content"
	KindLayout  Kind = "layout"
	KindStyle   Kind = "style"
)

func (k Kind) Valid() bool {
	switch k {
	case KindContent, KindLayout, KindStyle:
		return true
	default:
		return false
	}
}

// PositionPatch carries the position fields to overwrite. Nil fields are
// left as they are.
type PositionPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	ZIndex *int     `json:"z_index,omitempty"`
}

// Merge returns p with the present patch fields applied.
func (pp PositionPatch) Merge(p deck.Position) deck.Position {
	if pp.X != nil {
		p.X = *pp.X
	}
	if pp.Y != nil {
		p.Y = *pp.Y
	}
	if pp.Width != nil {
		p.Width = *pp.Width
	}
	if pp.Height != nil {
		p.Height = *pp.Height
	}
	if pp.ZIndex != nil {
		p.ZIndex = *pp.ZIndex
	}
	return p
}

type LayoutPatch struct {
	ElementID string        `json:"element_id"`
	Position  PositionPatch `json:"position"`
}

type StylePatch struct {
	ElementID string         `json:"element_id"`
	Style     map[string]any `json:"style"`
}

// Suggestion is a typed patch. Only the payload matching Kind is read.
type Suggestion struct {
	Kind          Kind           `json:"kind"`
	Elements      []deck.Element `json:"elements,omitempty"`
	LayoutUpdates []LayoutPatch  `json:"layout_updates,omitempty"`
	StyleUpdates  []StylePatch   `json:"style_updates,omitempty"`
}

// FromMap decodes a loosely typed suggestion payload.
func FromMap(data map[string]any) (Suggestion, error) {
	s, err := decode.FromMap[Suggestion](data)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", deck.ErrSchemaValidation, err)
	}
	return s, nil
}

// Apply returns a copy of slide with s applied. Content suggestions replace
// the element list wholesale when they carry one; new elements receive ids
// and stack above the rest. Layout and style suggestions merge into the
// named elements; patches naming an element the slide no longer has are
// skipped. An unknown kind fails with deck.ErrSchemaValidation.
func Apply(slide deck.Slide, s Suggestion) (deck.Slide, error) {
	next := slide.Clone()

	switch s.Kind {
	case KindContent:
		if s.Elements != nil {
			next.Elements = geometry.PlaceNew(s.Elements)
		}
	case KindLayout:
		for _, patch := range s.LayoutUpdates {
			if i := indexOf(next.Elements, patch.ElementID); i >= 0 {
				next.Elements[i].Position = patch.Position.Merge(next.Elements[i].Position)
			}
		}
	case KindStyle:
		for _, patch := range s.StyleUpdates {
			if i := indexOf(next.Elements, patch.ElementID); i >= 0 {
				next.Elements[i].Style = MergeStyle(next.Elements[i].Style, patch.Style)
			}
		}
	default:
		return deck.Slide{}, fmt.Errorf("%w: unknown suggestion kind %q", deck.ErrSchemaValidation, s.Kind)
	}

	if err := next.Validate(); err != nil {
		return deck.Slide{}, err
	}
	return next, nil
}

// MergeStyle returns a new map holding base overlaid with patch.
func MergeStyle(base, patch map[string]any) map[string]any {
	merged := deck.CloneMap(base)
	if merged == nil {
		merged = make(map[string]any, len(patch))
	}
	for k, v := range deck.CloneMap(patch) {
		merged[k] = v
	}
	return merged
}

func indexOf(elements []deck.Element, id string) int {
	for i, e := range elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}
