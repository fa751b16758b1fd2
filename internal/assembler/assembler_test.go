package assembler_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/slide-lab/internal/assembler"
	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/geometry"
)

const sixSlides = `{
  "title": "Quarterly Review",
  "description": "Results for Q3",
  "slides": [
    {"title": "Quarterly Review", "content": "Q3 2026", "layout": "content"},
    {"title": "Revenue", "content": ["Up 12%", "Driven by renewals"], "layout": "two-column"},
    {"title": "Costs", "content": "Flat", "speaker_notes": "Mention hiring freeze"},
    {"title": "Pipeline", "layout": "hologram"},
    {"title": "Risks", "content": "Supply chain"},
    {"title": "Thank You", "content": "Questions?", "layout": "content"}
  ]
}`

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unfenced", `  {"a":1}  `, `{"a":1}`},
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"trailing whitespace", "```json\n{\"a\":1}\n```\n\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assembler.StripFence(tt.raw); got != tt.want {
				t.Errorf("StripFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssemble_FencedMatchesUnfenced(t *testing.T) {
	plain, err := assembler.ParsePresentation(sixSlides)
	if err != nil {
		t.Fatalf("ParsePresentation(plain) failed: %v", err)
	}

	fenced, err := assembler.ParsePresentation("```json\n" + sixSlides + "\n```")
	if err != nil {
		t.Fatalf("ParsePresentation(fenced) failed: %v", err)
	}

	prose, err := assembler.ParsePresentation("Here is your deck:\n```json\n" + sixSlides + "\n```\nEnjoy!")
	if err != nil {
		t.Fatalf("ParsePresentation(prose) failed: %v", err)
	}

	for _, got := range []assembler.GeneratedPresentation{fenced, prose} {
		if got.Title != plain.Title || len(got.Slides) != len(plain.Slides) {
			t.Fatalf("got %q with %d slides, want %q with %d", got.Title, len(got.Slides), plain.Title, len(plain.Slides))
		}
		for i := range got.Slides {
			if got.Slides[i] != plain.Slides[i] {
				t.Errorf("slide %d = %+v, want %+v", i, got.Slides[i], plain.Slides[i])
			}
		}
	}
}

func TestAssemble_SixDrafts(t *testing.T) {
	result, err := assembler.Assemble("user-1", sixSlides, now)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	wantLayouts := []deck.Layout{
		deck.LayoutTitleSlide,
		deck.LayoutTwoColumn,
		deck.LayoutContent,
		deck.LayoutContent,
		deck.LayoutContent,
		deck.LayoutConclusion,
	}

	if len(result.Slides) != len(wantLayouts) {
		t.Fatalf("got %d slides, want %d", len(result.Slides), len(wantLayouts))
	}

	for i, s := range result.Slides {
		if s.SlideNumber != i+1 {
			t.Errorf("slide %d number = %d", i, s.SlideNumber)
		}
		if s.Layout != wantLayouts[i] {
			t.Errorf("slide %d layout = %s, want %s", i+1, s.Layout, wantLayouts[i])
		}
		if s.PresentationID != result.Presentation.ID {
			t.Errorf("slide %d presentation_id mismatch", i+1)
		}
		if result.Presentation.SlideIDs[i] != s.ID {
			t.Errorf("slide_ids[%d] does not mirror slide order", i)
		}
	}

	p := result.Presentation
	if p.OwnerID != "user-1" || p.Title != "Quarterly Review" || p.Description != "Results for Q3" {
		t.Errorf("unexpected presentation fields: %+v", p)
	}
	if !p.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", p.CreatedAt, now)
	}
}

func TestAssemble_Elements(t *testing.T) {
	result, err := assembler.Assemble("user-1", sixSlides, now)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	first := result.Slides[0]
	if len(first.Elements) != 2 {
		t.Fatalf("title slide has %d elements, want 2", len(first.Elements))
	}
	if got, want := first.Elements[0].Position, geometry.Position(geometry.RoleTitle, deck.LayoutTitleSlide); got != want {
		t.Errorf("title position = %+v, want %+v", got, want)
	}

	revenue := result.Slides[1]
	if got := revenue.Elements[1].Content["text"]; got != "Up 12%\nDriven by renewals" {
		t.Errorf("joined content = %q", got)
	}

	costs := result.Slides[2]
	if costs.Notes != "Mention hiring freeze" {
		t.Errorf("notes = %q", costs.Notes)
	}

	pipeline := result.Slides[3]
	if len(pipeline.Elements) != 1 {
		t.Errorf("draft without content has %d elements, want 1", len(pipeline.Elements))
	}

	for _, s := range result.Slides {
		if !reflect.DeepEqual(s.Background, deck.DefaultBackground()) {
			t.Errorf("slide %d background = %+v", s.SlideNumber, s.Background)
		}
		for _, e := range s.Elements {
			if e.Position.ZIndex != geometry.BaseZIndex {
				t.Errorf("element z_index = %d", e.Position.ZIndex)
			}
		}
	}
}

func TestAssemble_SingleSlideIsTitleSlide(t *testing.T) {
	result, err := assembler.Assemble("u", `{"title":"One","slides":[{"title":"Only"}]}`, now)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if result.Slides[0].Layout != deck.LayoutTitleSlide {
		t.Errorf("layout = %s, want title-slide", result.Slides[0].Layout)
	}
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"truncated", `{"title": "Broken", "slides": [`, deck.ErrContentFormat},
		{"prose", "I could not build a presentation.", deck.ErrContentFormat},
		{"array root", `[{"title":"x"}]`, deck.ErrContentFormat},
		{"null root", `null`, deck.ErrContentFormat},
		{"missing title", `{"slides":[{"title":"a"}]}`, deck.ErrSchemaValidation},
		{"numeric title", `{"title":7,"slides":[{"title":"a"}]}`, deck.ErrSchemaValidation},
		{"missing slides", `{"title":"x"}`, deck.ErrSchemaValidation},
		{"empty slides", `{"title":"x","slides":[]}`, deck.ErrSchemaValidation},
		{"slides not list", `{"title":"x","slides":"a"}`, deck.ErrSchemaValidation},
		{"draft missing title", `{"title":"x","slides":[{"content":"a"}]}`, deck.ErrSchemaValidation},
		{"draft content object", `{"title":"x","slides":[{"title":"a","content":{"k":1}}]}`, deck.ErrSchemaValidation},
		{"draft title too long", fmt.Sprintf(`{"title":"x","slides":[{"title":%q}]}`, strings.Repeat("t", deck.MaxTitleLength+1)), deck.ErrSchemaValidation},
		{"notes too long", fmt.Sprintf(`{"title":"x","slides":[{"title":"a","speaker_notes":%q}]}`, strings.Repeat("n", deck.MaxNotesLength+1)), deck.ErrSchemaValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := assembler.Assemble("u", tt.raw, now)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Assemble() error = %v, want %v", err, tt.want)
			}
			if len(result.Slides) != 0 {
				t.Errorf("failed assembly returned %d slides", len(result.Slides))
			}
		})
	}
}

func TestParseOutline(t *testing.T) {
	raw := "```json\n" + `{
  "topic": "Edge computing",
  "outline": [
    {"title": "Intro", "description": "What it is", "layout": "title-slide"},
    {"title": "Use cases", "description": "Where it fits"},
    {"title": "Wrap up", "description": "Summary"}
  ]
}` + "\n```"

	out, err := assembler.ParseOutline(raw)
	if err != nil {
		t.Fatalf("ParseOutline failed: %v", err)
	}

	if out.Topic != "Edge computing" {
		t.Errorf("topic = %q", out.Topic)
	}
	if len(out.Outline) != 3 {
		t.Fatalf("got %d items, want 3", len(out.Outline))
	}
	if out.Outline[1].Description != "Where it fits" {
		t.Errorf("description = %q", out.Outline[1].Description)
	}

	if _, err := assembler.ParseOutline(`{"topic":"x","outline":[]}`); !errors.Is(err, deck.ErrSchemaValidation) {
		t.Errorf("empty outline error = %v, want schema validation", err)
	}
	if _, err := assembler.ParseOutline(`{"topic":`); !errors.Is(err, deck.ErrContentFormat) {
		t.Errorf("truncated outline error = %v, want content format", err)
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		index, count int
		requested    string
		want         deck.Layout
	}{
		{1, 1, "content", deck.LayoutTitleSlide},
		{1, 5, "", deck.LayoutTitleSlide},
		{5, 5, "two-column", deck.LayoutConclusion},
		{3, 5, "section", deck.LayoutSection},
		{3, 5, "", deck.LayoutContent},
		{3, 5, "unknown", deck.LayoutContent},
	}

	for _, tt := range tests {
		if got := assembler.LayoutFor(tt.index, tt.count, tt.requested); got != tt.want {
			t.Errorf("LayoutFor(%d, %d, %q) = %s, want %s", tt.index, tt.count, tt.requested, got, tt.want)
		}
	}
}
