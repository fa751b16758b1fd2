package deck

import "github.com/google/uuid"

// Clone returns a deep copy of the element. Nested maps and slices inside
// Content, Style, and Animation are copied.
func (e Element) Clone() Element {
	e.Content = CloneMap(e.Content)
	e.Style = CloneMap(e.Style)
	e.Animation = CloneMap(e.Animation)
	return e
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	if s.Elements != nil {
		elements := make([]Element, len(s.Elements))
		for i, e := range s.Elements {
			elements[i] = e.Clone()
		}
		s.Elements = elements
	}
	if s.Background.Gradient != nil {
		s.Background.Gradient = append([]string(nil), s.Background.Gradient...)
	}
	if s.Duration != nil {
		d := *s.Duration
		s.Duration = &d
	}
	return s
}

// Clone returns a deep copy of the presentation.
func (p Presentation) Clone() Presentation {
	if p.SlideIDs != nil {
		p.SlideIDs = append([]uuid.UUID(nil), p.SlideIDs...)
	}
	if p.TemplateID != nil {
		v := *p.TemplateID
		p.TemplateID = &v
	}
	if p.ThumbnailURL != nil {
		v := *p.ThumbnailURL
		p.ThumbnailURL = &v
	}
	return p
}

// CloneSlides deep-copies every slide.
func CloneSlides(slides []Slide) []Slide {
	if slides == nil {
		return nil
	}
	out := make([]Slide, len(slides))
	for i, s := range slides {
		out[i] = s.Clone()
	}
	return out
}

// CloneMap deep-copies a JSON-shaped map. A nil map stays nil.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
