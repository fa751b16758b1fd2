package templates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/internal/templates"
	"github.com/JaimeStill/slide-lab/pkg/logging"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

const owner = "alice"

type fixture struct {
	gw  gateway.Gateway
	sys templates.System
	p   deck.Presentation
}

func setup(t *testing.T, n int) *fixture {
	t.Helper()

	gw := gateway.NewMemory(logging.Discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	sys := templates.New(load(t), gw, locks.NewMemory(), logging.Discard())

	now := time.Now().UTC()
	p := deck.Presentation{ID: uuid.New(), OwnerID: owner, Title: "Deck", CreatedAt: now, UpdatedAt: now}
	slides := make([]deck.Slide, n)
	for i := range slides {
		s := styledSlide()
		s.PresentationID = p.ID
		s.SlideNumber = i + 1
		slides[i] = s
	}
	if err := gw.Create(context.Background(), p, slides); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return &fixture{gw: gw, sys: sys, p: p}
}

func TestApply_TemplateScheme(t *testing.T) {
	f := setup(t, 3)
	ctx := context.Background()

	result, err := f.sys.Apply(ctx, owner, templates.ApplyCommand{
		PresentationID: f.p.ID,
		TemplateID:     "template-dark-elegance",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.SlidesUpdated != 3 || result.TemplateID != "template-dark-elegance" {
		t.Errorf("result = %d slides, template %s", result.SlidesUpdated, result.TemplateID)
	}

	stored, _ := f.gw.Find(ctx, f.p.ID)
	if stored.TemplateID == nil || *stored.TemplateID != "template-dark-elegance" {
		t.Errorf("template_id = %v", stored.TemplateID)
	}

	slides, _ := f.gw.FindSlides(ctx, f.p.ID)
	for _, s := range slides {
		if s.Background.Color != "#1F2937" {
			t.Errorf("slide %d background = %s", s.SlideNumber, s.Background.Color)
		}
		title := find(t, s, "title")
		if title.Style["font_family"] != "Cormorant Garamond" || title.Style["color"] != "#F9FAFB" {
			t.Errorf("slide %d title style = %v", s.SlideNumber, title.Style)
		}
		if find(t, s, "box").Style["fill_color"] != "#D97706" {
			t.Errorf("slide %d shape not filled with primary", s.SlideNumber)
		}
	}
}

func TestApply_CustomSchemeFallsBack(t *testing.T) {
	f := setup(t, 1)
	ctx := context.Background()

	_, err := f.sys.Apply(ctx, owner, templates.ApplyCommand{
		PresentationID: f.p.ID,
		TemplateID:     "template-minimal-white",
		ColorScheme:    &templates.ColorScheme{Background: "#ABCDEF"},
		FontPairing:    &templates.FontPairing{Heading: "Manrope"},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	slides, _ := f.gw.FindSlides(ctx, f.p.ID)
	s := slides[0]
	if s.Background.Color != "#ABCDEF" {
		t.Errorf("background = %s", s.Background.Color)
	}
	if got := find(t, s, "title").Style["font_family"]; got != "Manrope" {
		t.Errorf("heading font = %v", got)
	}
	if got := find(t, s, "body").Style; got["font_family"] != templates.DefaultFont || got["color"] != templates.DefaultScheme.Text {
		t.Errorf("body style = %v", got)
	}
	if got := find(t, s, "box").Style["stroke_color"]; got != templates.DefaultScheme.Secondary {
		t.Errorf("stroke = %v", got)
	}
}

func TestApply_Rejects(t *testing.T) {
	f := setup(t, 2)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller string
		cmd    templates.ApplyCommand
		want   error
	}{
		{"not owner", "mallory", templates.ApplyCommand{PresentationID: f.p.ID, TemplateID: "template-bold-pitch"}, deck.ErrOwnership},
		{"unknown template", owner, templates.ApplyCommand{PresentationID: f.p.ID, TemplateID: "template-none"}, deck.ErrNotFound},
		{"unknown presentation", owner, templates.ApplyCommand{PresentationID: uuid.New(), TemplateID: "template-bold-pitch"}, deck.ErrNotFound},
		{"missing presentation", owner, templates.ApplyCommand{TemplateID: "template-bold-pitch"}, deck.ErrSchemaValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.sys.Apply(ctx, tt.caller, tt.cmd); !errors.Is(err, tt.want) {
				t.Fatalf("Apply error = %v, want %v", err, tt.want)
			}
		})
	}

	stored, _ := f.gw.Find(ctx, f.p.ID)
	if stored.TemplateID != nil {
		t.Errorf("template_id = %s after rejected applies", *stored.TemplateID)
	}
	slides, _ := f.gw.FindSlides(ctx, f.p.ID)
	for _, s := range slides {
		if s.Background.Color != "#FFFFFF" {
			t.Errorf("slide %d restyled by a rejected apply", s.SlideNumber)
		}
	}
}
