// Package templates serves the built-in catalog of visual themes and
// restyles a presentation's slides with one of them.
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/locks"
)

// ApplyCommand restyles a presentation with a catalog template. A nil
// ColorScheme or FontPairing selects the template's own; empty fields in a
// supplied one fall back to DefaultScheme and DefaultFont.
type ApplyCommand struct {
	PresentationID uuid.UUID    `json:"presentation_id"`
	TemplateID     string       `json:"template_id"`
	ColorScheme    *ColorScheme `json:"color_scheme,omitempty"`
	FontPairing    *FontPairing `json:"font_pairing,omitempty"`
}

// ApplyResult reports a completed template application.
type ApplyResult struct {
	TemplateID    string      `json:"template_id"`
	SlidesUpdated int         `json:"slides_updated"`
	Presentation  deck.Detail `json:"presentation"`
}

// System defines template operations.
type System interface {
	List(category string) []Template
	Categories() []string
	Find(id string) (Template, error)

	// Apply restyles every slide and records the template on the
	// presentation in one write under the presentation lock.
	Apply(ctx context.Context, caller string, cmd ApplyCommand) (ApplyResult, error)
}

type system struct {
	catalog *Catalog
	gw      gateway.Gateway
	locks   locks.Locker
	logger  *slog.Logger
	now     func() time.Time
}

// New creates the templates system over catalog.
func New(catalog *Catalog, gw gateway.Gateway, locker locks.Locker, logger *slog.Logger) System {
	return &system{
		catalog: catalog,
		gw:      gw,
		locks:   locker,
		logger:  logger.With("system", "templates"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *system) List(category string) []Template {
	return s.catalog.List(category)
}

func (s *system) Categories() []string {
	return s.catalog.Categories()
}

func (s *system) Find(id string) (Template, error) {
	return s.catalog.Find(id)
}

func (s *system) Apply(ctx context.Context, caller string, cmd ApplyCommand) (ApplyResult, error) {
	if cmd.PresentationID == uuid.Nil {
		return ApplyResult{}, fmt.Errorf("%w: presentation_id is required", deck.ErrSchemaValidation)
	}
	t, err := s.catalog.Find(cmd.TemplateID)
	if err != nil {
		return ApplyResult{}, err
	}

	scheme := t.ColorScheme
	if cmd.ColorScheme != nil {
		scheme = cmd.ColorScheme.withDefaults()
	}
	fonts := t.Fonts()
	if cmd.FontPairing != nil {
		fonts = cmd.FontPairing.withDefaults()
	}

	unlock, err := s.locks.Lock(ctx, cmd.PresentationID.String())
	if err != nil {
		return ApplyResult{}, err
	}
	defer unlock()

	now := s.now()
	d, err := s.gw.Edit(ctx, cmd.PresentationID, func(p deck.Presentation, slides []deck.Slide) (deck.Presentation, []deck.Slide, error) {
		if err := deck.Authorize(p, caller); err != nil {
			return p, nil, err
		}
		p.TemplateID = &t.ID
		return p, Restyle(slides, scheme, fonts, now), nil
	})
	if err != nil {
		return ApplyResult{}, err
	}

	s.logger.Info("template applied", "template", t.ID, "presentation", cmd.PresentationID, "slides", len(d.Slides))
	return ApplyResult{TemplateID: t.ID, SlidesUpdated: len(d.Slides), Presentation: d}, nil
}
