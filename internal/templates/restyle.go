package templates

import (
	"encoding/json"
	"time"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

// HeadingSize is the font size above which a text element takes the
// heading font.
const HeadingSize = 30

const defaultFontSize = 16

// Fallbacks for scheme and font fields a request leaves empty.
var (
	DefaultScheme = ColorScheme{
		Primary:    "#3B82F6",
		Secondary:  "#1E40AF",
		Background: "#FFFFFF",
		Text:       "#000000",
	}
	DefaultFont = "Inter"
)

// Restyle returns copies of slides repainted with scheme and fonts. Each
// background takes the scheme background; text elements take the text color
// and the heading or body font by size; shapes take primary fill and
// secondary stroke. Image elements are untouched.
func Restyle(slides []deck.Slide, scheme ColorScheme, fonts FontPairing, now time.Time) []deck.Slide {
	out := deck.CloneSlides(slides)
	for i := range out {
		s := &out[i]
		if s.Background.Type == "" {
			s.Background.Type = "solid"
		}
		s.Background.Color = scheme.Background

		for j := range s.Elements {
			e := &s.Elements[j]
			if e.Style == nil {
				e.Style = map[string]any{}
			}
			switch e.Type {
			case deck.ElementText:
				font := fonts.Body
				if fontSize(e.Style) > HeadingSize {
					font = fonts.Heading
				}
				e.Style["font_family"] = font
				e.Style["color"] = scheme.Text
			case deck.ElementShape:
				e.Style["fill_color"] = scheme.Primary
				e.Style["stroke_color"] = scheme.Secondary
			}
		}
		s.UpdatedAt = now
	}
	return out
}

func fontSize(style map[string]any) float64 {
	switch v := style["font_size"].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return defaultFontSize
}

func (c ColorScheme) withDefaults() ColorScheme {
	if c.Primary == "" {
		c.Primary = DefaultScheme.Primary
	}
	if c.Secondary == "" {
		c.Secondary = DefaultScheme.Secondary
	}
	if c.Background == "" {
		c.Background = DefaultScheme.Background
	}
	if c.Text == "" {
		c.Text = DefaultScheme.Text
	}
	return c
}

func (f FontPairing) withDefaults() FontPairing {
	if f.Heading == "" {
		f.Heading = DefaultFont
	}
	if f.Body == "" {
		f.Body = DefaultFont
	}
	return f
}
