// Package slides implements slide CRUD and the structural operations that
// renumber a presentation: insert, delete, move, and duplicate. Every
// operation on a presentation's slides holds that presentation's lock and
// commits through a single gateway write.
package slides

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/geometry"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/internal/suggestions"
)

// System defines slide operations. caller is the requesting user id; an
// empty caller skips the ownership check.
type System interface {
	List(ctx context.Context, caller string, presentationID uuid.UUID) ([]deck.Slide, error)
	Find(ctx context.Context, caller string, id uuid.UUID) (deck.Slide, error)
	Create(ctx context.Context, caller string, presentationID uuid.UUID, cmd CreateCommand) (deck.Slide, error)
	Update(ctx context.Context, caller string, id uuid.UUID, cmd UpdateCommand) (deck.Slide, error)
	Delete(ctx context.Context, caller string, id uuid.UUID) error
	Move(ctx context.Context, caller string, id uuid.UUID, position int) ([]deck.Slide, error)
	Duplicate(ctx context.Context, caller string, id uuid.UUID) (deck.Slide, error)
	ApplySuggestion(ctx context.Context, caller string, id uuid.UUID, s suggestions.Suggestion) (deck.Slide, error)
}

type system struct {
	gw     gateway.Gateway
	locks  locks.Locker
	logger *slog.Logger
	now    func() time.Time
}

// New creates the slides system.
func New(gw gateway.Gateway, locker locks.Locker, logger *slog.Logger) System {
	return &system{
		gw:     gw,
		locks:  locker,
		logger: logger.With("system", "slides"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *system) List(ctx context.Context, caller string, presentationID uuid.UUID) ([]deck.Slide, error) {
	p, err := s.gw.Find(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	if err := deck.AuthorizeRead(p, caller); err != nil {
		return nil, err
	}
	return s.gw.FindSlides(ctx, presentationID)
}

func (s *system) Find(ctx context.Context, caller string, id uuid.UUID) (deck.Slide, error) {
	slide, err := s.gw.FindSlide(ctx, id)
	if err != nil {
		return deck.Slide{}, err
	}
	p, err := s.gw.Find(ctx, slide.PresentationID)
	if err != nil {
		return deck.Slide{}, err
	}
	if err := deck.AuthorizeRead(p, caller); err != nil {
		return deck.Slide{}, err
	}
	return slide, nil
}

func (s *system) Create(ctx context.Context, caller string, presentationID uuid.UUID, cmd CreateCommand) (deck.Slide, error) {
	draft, err := s.newSlide(presentationID, cmd)
	if err != nil {
		return deck.Slide{}, err
	}

	var placed deck.Slide
	_, err = s.mutate(ctx, caller, presentationID, func(_ deck.Presentation, current []deck.Slide) ([]deck.Slide, error) {
		position := len(current) + 1
		if cmd.Position != nil {
			position = *cmd.Position
		}

		next, p, err := ordering.InsertAt(current, position, draft)
		if err != nil {
			return nil, err
		}
		placed = p
		s.touchShifted(current, next)
		return next, nil
	})
	if err != nil {
		return deck.Slide{}, err
	}

	s.logger.Info("slide created", "id", placed.ID, "presentation", presentationID, "position", placed.SlideNumber)
	return placed, nil
}

func (s *system) Update(ctx context.Context, caller string, id uuid.UUID, cmd UpdateCommand) (deck.Slide, error) {
	return s.rewrite(ctx, caller, id, func(slide deck.Slide) (deck.Slide, error) {
		return applyUpdate(slide, cmd)
	}, "slide updated")
}

func (s *system) ApplySuggestion(ctx context.Context, caller string, id uuid.UUID, sg suggestions.Suggestion) (deck.Slide, error) {
	return s.rewrite(ctx, caller, id, func(slide deck.Slide) (deck.Slide, error) {
		return suggestions.Apply(slide, sg)
	}, "suggestion applied", "kind", sg.Kind)
}

func (s *system) Delete(ctx context.Context, caller string, id uuid.UUID) error {
	presentationID, err := s.presentationOf(ctx, id)
	if err != nil {
		return err
	}

	var removed deck.Slide
	_, err = s.mutate(ctx, caller, presentationID, func(_ deck.Presentation, current []deck.Slide) ([]deck.Slide, error) {
		next, r, err := ordering.Remove(current, id)
		if err != nil {
			return nil, err
		}
		removed = r
		s.touchShifted(current, next)
		return next, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("slide deleted", "id", id, "presentation", presentationID, "position", removed.SlideNumber)
	return nil
}

func (s *system) Move(ctx context.Context, caller string, id uuid.UUID, position int) ([]deck.Slide, error) {
	presentationID, err := s.presentationOf(ctx, id)
	if err != nil {
		return nil, err
	}

	from := 0
	next, err := s.mutate(ctx, caller, presentationID, func(_ deck.Presentation, current []deck.Slide) ([]deck.Slide, error) {
		for _, sl := range current {
			if sl.ID == id {
				from = sl.SlideNumber
			}
		}
		next, err := ordering.Move(current, id, position)
		if err != nil {
			return nil, err
		}
		s.touchShifted(current, next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("slide moved", "id", id, "presentation", presentationID, "from", from, "to", position)
	return next, nil
}

func (s *system) Duplicate(ctx context.Context, caller string, id uuid.UUID) (deck.Slide, error) {
	presentationID, err := s.presentationOf(ctx, id)
	if err != nil {
		return deck.Slide{}, err
	}

	var dup deck.Slide
	_, err = s.mutate(ctx, caller, presentationID, func(_ deck.Presentation, current []deck.Slide) ([]deck.Slide, error) {
		next, d, err := ordering.Duplicate(current, id, uuid.New())
		if err != nil {
			return nil, err
		}

		now := s.now()
		for i := range next {
			if next[i].ID == d.ID {
				next[i].CreatedAt = now
				next[i].UpdatedAt = now
				d = next[i].Clone()
			}
		}
		dup = d
		s.touchShifted(current, next)
		return next, nil
	})
	if err != nil {
		return deck.Slide{}, err
	}

	s.logger.Info("slide duplicated", "source", id, "id", dup.ID, "presentation", presentationID, "position", dup.SlideNumber)
	return dup, nil
}

// mutate authorizes caller, takes the presentation lock, and commits fn
// through a single gateway write.
func (s *system) mutate(ctx context.Context, caller string, presentationID uuid.UUID, fn gateway.MutateFunc) ([]deck.Slide, error) {
	unlock, err := s.locks.Lock(ctx, presentationID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.gw.Mutate(ctx, presentationID, func(p deck.Presentation, current []deck.Slide) ([]deck.Slide, error) {
		if err := deck.Authorize(p, caller); err != nil {
			return nil, err
		}
		return fn(p, current)
	})
}

// rewrite re-reads a slide under its presentation lock, transforms it, and
// writes the full slide back.
func (s *system) rewrite(ctx context.Context, caller string, id uuid.UUID, fn func(deck.Slide) (deck.Slide, error), msg string, attrs ...any) (deck.Slide, error) {
	presentationID, err := s.presentationOf(ctx, id)
	if err != nil {
		return deck.Slide{}, err
	}

	unlock, err := s.locks.Lock(ctx, presentationID.String())
	if err != nil {
		return deck.Slide{}, err
	}
	defer unlock()

	p, err := s.gw.Find(ctx, presentationID)
	if err != nil {
		return deck.Slide{}, err
	}
	if err := deck.Authorize(p, caller); err != nil {
		return deck.Slide{}, err
	}

	current, err := s.gw.FindSlide(ctx, id)
	if err != nil {
		return deck.Slide{}, err
	}

	next, err := fn(current)
	if err != nil {
		return deck.Slide{}, err
	}
	next.UpdatedAt = s.now()

	if err := s.gw.PutSlide(ctx, next); err != nil {
		return deck.Slide{}, err
	}

	s.logger.Info(msg, append([]any{"id", id, "presentation", presentationID}, attrs...)...)
	return next, nil
}

func (s *system) presentationOf(ctx context.Context, slideID uuid.UUID) (uuid.UUID, error) {
	slide, err := s.gw.FindSlide(ctx, slideID)
	if err != nil {
		return uuid.Nil, err
	}
	return slide.PresentationID, nil
}

// touchShifted stamps updated_at on slides whose number changed.
func (s *system) touchShifted(before, next []deck.Slide) {
	shifted := ordering.Shifted(before, next)
	if len(shifted) == 0 {
		return
	}
	now := s.now()
	for _, id := range shifted {
		for i := range next {
			if next[i].ID == id {
				next[i].UpdatedAt = now
			}
		}
	}
}

func (s *system) newSlide(presentationID uuid.UUID, cmd CreateCommand) (deck.Slide, error) {
	title := cmd.Title
	if title == "" {
		title = deck.DefaultTitle
	}

	layout := deck.LayoutBlank
	if cmd.Layout != "" {
		layout = deck.Layout(cmd.Layout)
	}

	now := s.now()
	slide := deck.Slide{
		ID:             uuid.New(),
		PresentationID: presentationID,
		SlideNumber:    1,
		Title:          title,
		Layout:         layout,
		Elements:       []deck.Element{},
		Background:     deck.DefaultBackground(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if layout != deck.LayoutBlank {
		slide.Elements = append(slide.Elements, geometry.TextElement(geometry.RoleTitle, layout, title))
	}

	if err := slide.Validate(); err != nil {
		return deck.Slide{}, err
	}
	return slide, nil
}

func applyUpdate(slide deck.Slide, cmd UpdateCommand) (deck.Slide, error) {
	next := slide.Clone()

	if cmd.Title != nil {
		next.Title = *cmd.Title
		if next.Title == "" {
			next.Title = deck.DefaultTitle
		}
	}
	if cmd.Layout != nil {
		next.Layout = deck.Layout(*cmd.Layout)
	}
	if cmd.Elements != nil {
		next.Elements = geometry.PlaceNew(cmd.Elements)
	}
	if cmd.Background != nil {
		next.Background = *cmd.Background
	}
	if cmd.Notes != nil {
		next.Notes = *cmd.Notes
	}
	if cmd.Duration != nil {
		if *cmd.Duration < 0 {
			return deck.Slide{}, fmt.Errorf("%w: duration must not be negative", deck.ErrSchemaValidation)
		}
		d := *cmd.Duration
		next.Duration = &d
	}
	if cmd.Transition != nil {
		next.Transition = *cmd.Transition
	}

	if err := next.Validate(); err != nil {
		return deck.Slide{}, err
	}
	return next, nil
}
