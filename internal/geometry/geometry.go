// Package geometry synthesizes default element placement and text styling
// from an element's role and the slide layout.
package geometry

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

// Role is the semantic purpose of a synthesized element.
type Role string

const (
	RoleTitle Role = "title"
	RoleBody  Role = "body"
)

// BaseZIndex is the paint order assigned to synthesized elements.
const BaseZIndex = 1

const (
	FontFamily = "Inter"
	TextColor  = "#000000"
	LineHeight = 1.5
)

// Position returns the default geometry for role on a slide with layout.
// Title elements occupy the top band and sit taller on title slides. Body
// elements fill the band beneath the title.
func Position(role Role, layout deck.Layout) deck.Position {
	switch role {
	case RoleTitle:
		height := 15.0
		if layout == deck.LayoutTitleSlide {
			height = 20
		}
		return deck.Position{X: 10, Y: 10, Width: 80, Height: height, ZIndex: BaseZIndex}
	default:
		return deck.Position{X: 10, Y: 30, Width: 80, Height: 60, ZIndex: BaseZIndex}
	}
}

// TextStyle returns default text styling for role. Title slides use larger
// centred type.
func TextStyle(role Role, layout deck.Layout) map[string]any {
	size, weight, align := 18, 400, "left"

	switch {
	case role == RoleTitle && layout == deck.LayoutTitleSlide:
		size, weight, align = 48, 700, "center"
	case role == RoleTitle:
		size, weight = 32, 600
	case layout == deck.LayoutTitleSlide:
		size, align = 24, "center"
	}

	return map[string]any{
		"font_family": FontFamily,
		"font_size":   size,
		"font_weight": weight,
		"color":       TextColor,
		"align":       align,
		"line_height": LineHeight,
	}
}

// TextElement builds a visible text element for role with synthesized
// geometry and style and a fresh id.
func TextElement(role Role, layout deck.Layout, text string) deck.Element {
	return deck.Element{
		ID:       uuid.NewString(),
		Type:     deck.ElementText,
		Position: Position(role, layout),
		Content:  map[string]any{"text": text},
		Style:    TextStyle(role, layout),
		Visible:  true,
	}
}

// NextZIndex returns one above the highest z_index among elements, or
// BaseZIndex for an empty slide.
func NextZIndex(elements []deck.Element) int {
	if len(elements) == 0 {
		return BaseZIndex
	}
	top := 0
	for _, e := range elements {
		if e.Position.ZIndex > top {
			top = e.Position.ZIndex
		}
	}
	return top + 1
}

// PlaceNew returns a copy of elements in which every element without an id
// receives a fresh id and a z_index above all elements that came with one,
// in list order.
func PlaceNew(elements []deck.Element) []deck.Element {
	var placed []deck.Element
	for _, e := range elements {
		if e.ID != "" {
			placed = append(placed, e)
		}
	}
	z := NextZIndex(placed)

	out := make([]deck.Element, len(elements))
	for i, e := range elements {
		e = e.Clone()
		if e.ID == "" {
			e.ID = uuid.NewString()
			e.Position.ZIndex = z
			z++
		}
		out[i] = e
	}
	return out
}
