package deck

import (
	"fmt"
	"unicode/utf8"
)

// Validate checks the position bounds: every coordinate and extent in
// [0,100] and a non-negative z_index.
func (p Position) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"x", p.X},
		{"y", p.Y},
		{"width", p.Width},
		{"height", p.Height},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 100 {
			return fmt.Errorf("%w: position %s %.2f outside [0,100]", ErrSchemaValidation, f.name, f.value)
		}
	}
	if p.ZIndex < 0 {
		return fmt.Errorf("%w: z_index %d is negative", ErrSchemaValidation, p.ZIndex)
	}
	return nil
}

func (e Element) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: element id required", ErrSchemaValidation)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: element %s has unknown type %q", ErrSchemaValidation, e.ID, e.Type)
	}
	if err := e.Position.Validate(); err != nil {
		return fmt.Errorf("element %s: %w", e.ID, err)
	}
	return nil
}

// Validate checks slide fields and element id uniqueness. It does not check
// slide_number contiguity, which depends on the sibling set.
func (s Slide) Validate() error {
	if s.SlideNumber < 1 {
		return fmt.Errorf("%w: slide_number must be positive", ErrSchemaValidation)
	}
	if utf8.RuneCountInString(s.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrSchemaValidation, MaxTitleLength)
	}
	if utf8.RuneCountInString(s.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrSchemaValidation, MaxNotesLength)
	}
	if !s.Layout.Valid() {
		return fmt.Errorf("%w: unknown layout %q", ErrSchemaValidation, s.Layout)
	}

	seen := make(map[string]struct{}, len(s.Elements))
	for _, e := range s.Elements {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate element id %s", ErrSchemaValidation, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
