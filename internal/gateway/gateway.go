// Package gateway persists presentations, slides, and assistant chat
// history. Structural slide changes go through Mutate, which reads the full
// slide set and writes the replacement as one atomic unit.
package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

// MutateFunc receives the presentation and its slides in slide_number order
// and returns the complete replacement slide set. Returning an error aborts
// the mutation with nothing written.
type MutateFunc func(p deck.Presentation, slides []deck.Slide) ([]deck.Slide, error)

// EditFunc is a MutateFunc that also returns replacement presentation
// metadata. Owner, view count, share token, and creation time in the
// returned presentation are ignored.
type EditFunc func(p deck.Presentation, slides []deck.Slide) (deck.Presentation, []deck.Slide, error)

// Gateway is the document store consumed by the presentation systems.
type Gateway interface {
	Find(ctx context.Context, id uuid.UUID) (deck.Presentation, error)
	List(ctx context.Context, ownerID string, page pagination.PageRequest, filters Filters) (*pagination.PageResult[deck.Presentation], error)

	// Create writes a presentation and its initial slides in one batch.
	Create(ctx context.Context, p deck.Presentation, slides []deck.Slide) error

	// PutPresentation replaces presentation metadata. Owner, slide ids,
	// view count, share token, and creation time are not changed.
	PutPresentation(ctx context.Context, p deck.Presentation) error

	// DeletePresentation removes a presentation along with its slides and
	// chat history.
	DeletePresentation(ctx context.Context, id uuid.UUID) error

	FindSlides(ctx context.Context, presentationID uuid.UUID) ([]deck.Slide, error)
	FindSlide(ctx context.Context, id uuid.UUID) (deck.Slide, error)

	// PutSlide replaces a slide's content. The slide keeps its presentation
	// and slide_number; use Mutate to change either.
	PutSlide(ctx context.Context, s deck.Slide) error

	Mutate(ctx context.Context, presentationID uuid.UUID, fn MutateFunc) ([]deck.Slide, error)

	// Edit is Mutate that writes the presentation metadata returned by fn
	// in the same atomic unit as the slide set.
	Edit(ctx context.Context, presentationID uuid.UUID, fn EditFunc) (deck.Detail, error)

	// Share makes a presentation public and records token as its share token.
	Share(ctx context.Context, id uuid.UUID, token string) (deck.Presentation, error)

	IncrementViews(ctx context.Context, id uuid.UUID) (deck.Presentation, error)

	// AppendMessages stores msgs as one unit: either every message is
	// written or none is.
	AppendMessages(ctx context.Context, msgs ...deck.ChatMessage) error

	// Messages returns up to limit of the most recent messages, oldest first.
	Messages(ctx context.Context, presentationID uuid.UUID, limit int) ([]deck.ChatMessage, error)
}

func slidesOnly(fn MutateFunc) EditFunc {
	return func(p deck.Presentation, slides []deck.Slide) (deck.Presentation, []deck.Slide, error) {
		next, err := fn(p, slides)
		return p, next, err
	}
}

func checkSlideSet(presentationID uuid.UUID, slides []deck.Slide) error {
	if err := ordering.Validate(slides); err != nil {
		return fmt.Errorf("%w: %v", deck.ErrOrderingConflict, err)
	}
	seen := make(map[uuid.UUID]struct{}, len(slides))
	for _, s := range slides {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: slide %s listed twice", deck.ErrSchemaValidation, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.PresentationID != presentationID {
			return fmt.Errorf("%w: slide %s belongs to presentation %s", deck.ErrSchemaValidation, s.ID, s.PresentationID)
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
