package suggestions_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/suggestions"
)

func fixture() deck.Slide {
	return deck.Slide{
		ID:             uuid.New(),
		PresentationID: uuid.New(),
		SlideNumber:    2,
		Title:          "Revenue",
		Layout:         deck.LayoutContent,
		Background:     deck.DefaultBackground(),
		Elements: []deck.Element{
			{
				ID:       "e1",
				Type:     deck.ElementText,
				Position: deck.Position{X: 10, Y: 10, Width: 80, Height: 15, ZIndex: 1},
				Content:  map[string]any{"text": "Revenue"},
				Style:    map[string]any{"font_size": 32, "color": "#000000"},
				Visible:  true,
			},
			{
				ID:       "e2",
				Type:     deck.ElementText,
				Position: deck.Position{X: 10, Y: 30, Width: 80, Height: 60, ZIndex: 1},
				Content:  map[string]any{"text": "Up 12%"},
				Style:    map[string]any{"font_size": 18},
				Visible:  true,
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestApply_LayoutPatchChangesOnlyNamedField(t *testing.T) {
	slide := fixture()
	original := slide.Clone()

	got, err := suggestions.Apply(slide, suggestions.Suggestion{
		Kind: suggestions.KindLayout,
		LayoutUpdates: []suggestions.LayoutPatch{
			{ElementID: "e1", Position: suggestions.PositionPatch{X: ptr(5.0)}},
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := original.Elements[0].Position
	want.X = 5
	if got.Elements[0].Position != want {
		t.Errorf("e1 position = %+v, want %+v", got.Elements[0].Position, want)
	}
	if !reflect.DeepEqual(got.Elements[0].Style, original.Elements[0].Style) {
		t.Errorf("e1 style changed: %v", got.Elements[0].Style)
	}
	if !reflect.DeepEqual(got.Elements[1], original.Elements[1]) {
		t.Errorf("e2 changed: %+v", got.Elements[1])
	}
	if !reflect.DeepEqual(slide, original) {
		t.Error("input slide was mutated")
	}
}

func TestApply_LayoutPatchUnknownElementIgnored(t *testing.T) {
	slide := fixture()

	got, err := suggestions.Apply(slide, suggestions.Suggestion{
		Kind: suggestions.KindLayout,
		LayoutUpdates: []suggestions.LayoutPatch{
			{ElementID: "gone", Position: suggestions.PositionPatch{X: ptr(1.0)}},
			{ElementID: "e2", Position: suggestions.PositionPatch{ZIndex: ptr(3)}},
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got.Elements[1].Position.ZIndex != 3 {
		t.Errorf("e2 z_index = %d, want 3", got.Elements[1].Position.ZIndex)
	}
	if got.Elements[0].Position != slide.Elements[0].Position {
		t.Errorf("e1 position changed: %+v", got.Elements[0].Position)
	}
}

func TestApply_LayoutPatchOutOfBounds(t *testing.T) {
	_, err := suggestions.Apply(fixture(), suggestions.Suggestion{
		Kind: suggestions.KindLayout,
		LayoutUpdates: []suggestions.LayoutPatch{
			{ElementID: "e1", Position: suggestions.PositionPatch{Width: ptr(140.0)}},
		},
	})
	if !errors.Is(err, deck.ErrSchemaValidation) {
		t.Errorf("error = %v, want schema validation", err)
	}
}

func TestApply_StyleMerge(t *testing.T) {
	slide := fixture()

	got, err := suggestions.Apply(slide, suggestions.Suggestion{
		Kind: suggestions.KindStyle,
		StyleUpdates: []suggestions.StylePatch{
			{ElementID: "e1", Style: map[string]any{"color": "#FF0000", "italic": true}},
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := map[string]any{"font_size": 32, "color": "#FF0000", "italic": true}
	if !reflect.DeepEqual(got.Elements[0].Style, want) {
		t.Errorf("style = %v, want %v", got.Elements[0].Style, want)
	}
	if slide.Elements[0].Style["color"] != "#000000" {
		t.Error("input style map was mutated")
	}
}

func TestApply_ContentReplacesElements(t *testing.T) {
	slide := fixture()
	replacement := []deck.Element{
		{
			ID:       "n1",
			Type:     deck.ElementShape,
			Position: deck.Position{X: 0, Y: 0, Width: 100, Height: 100},
			Content:  map[string]any{"shape": "rectangle"},
			Visible:  true,
		},
	}

	got, err := suggestions.Apply(slide, suggestions.Suggestion{
		Kind:     suggestions.KindContent,
		Elements: replacement,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(got.Elements) != 1 || got.Elements[0].ID != "n1" {
		t.Fatalf("elements = %+v, want only n1", got.Elements)
	}

	got.Elements[0].Content["shape"] = "circle"
	if replacement[0].Content["shape"] != "rectangle" {
		t.Error("result shares content map with the suggestion payload")
	}
	if len(slide.Elements) != 2 {
		t.Error("input slide was mutated")
	}
}

func TestApply_ContentWithoutElementsKeepsSlide(t *testing.T) {
	slide := fixture()

	got, err := suggestions.Apply(slide, suggestions.Suggestion{Kind: suggestions.KindContent})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !reflect.DeepEqual(got, slide) {
		t.Errorf("slide changed: %+v", got)
	}
}

func TestApply_ContentPlacesNewElements(t *testing.T) {
	got, err := suggestions.Apply(fixture(), suggestions.Suggestion{
		Kind: suggestions.KindContent,
		Elements: []deck.Element{
			{ID: "e1", Type: deck.ElementText, Position: deck.Position{ZIndex: 2}},
			{Type: deck.ElementText, Content: map[string]any{"text": "New point"}},
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(got.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(got.Elements))
	}
	added := got.Elements[1]
	if added.ID == "" || added.ID == "e1" {
		t.Errorf("new element id = %q", added.ID)
	}
	if added.Position.ZIndex != 3 {
		t.Errorf("new element z_index = %d, want 3", added.Position.ZIndex)
	}
}

func TestApply_Rejections(t *testing.T) {
	tests := []struct {
		name string
		s    suggestions.Suggestion
	}{
		{"unknown kind", suggestions.Suggestion{Kind: "theme"}},
		{"empty kind", suggestions.Suggestion{}},
		{"duplicate element ids", suggestions.Suggestion{
			Kind: suggestions.KindContent,
			Elements: []deck.Element{
				{ID: "a", Type: deck.ElementText},
				{ID: "a", Type: deck.ElementText},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := suggestions.Apply(fixture(), tt.s); !errors.Is(err, deck.ErrSchemaValidation) {
				t.Errorf("error = %v, want schema validation", err)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	s, err := suggestions.FromMap(map[string]any{
		"kind": "layout",
		"layout_updates": []any{
			map[string]any{"element_id": "e1", "position": map[string]any{"x": 5}},
		},
	})
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}

	if s.Kind != suggestions.KindLayout || len(s.LayoutUpdates) != 1 {
		t.Fatalf("decoded %+v", s)
	}
	pp := s.LayoutUpdates[0].Position
	if pp.X == nil || *pp.X != 5 || pp.Y != nil || pp.ZIndex != nil {
		t.Errorf("position patch = %+v", pp)
	}

	if _, err := suggestions.FromMap(map[string]any{"kind": "layout", "layout_updates": "bad"}); !errors.Is(err, deck.ErrSchemaValidation) {
		t.Errorf("error = %v, want schema validation", err)
	}
}
