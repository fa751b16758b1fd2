package gateway

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
	"github.com/JaimeStill/slide-lab/pkg/query"
)

type memory struct {
	mu            sync.Mutex
	presentations map[uuid.UUID]deck.Presentation
	slides        map[uuid.UUID]deck.Slide
	messages      map[uuid.UUID][]deck.ChatMessage
	logger        *slog.Logger
	pagination    pagination.Config
}

// NewMemory creates an in-process gateway. Every read and write is
// serialized by a single mutex and values are copied across the boundary,
// so callers never share maps or slices with the store.
func NewMemory(logger *slog.Logger, pagination pagination.Config) Gateway {
	return &memory{
		presentations: make(map[uuid.UUID]deck.Presentation),
		slides:        make(map[uuid.UUID]deck.Slide),
		messages:      make(map[uuid.UUID][]deck.ChatMessage),
		logger:        logger.With("system", "gateway", "backend", "memory"),
		pagination:    pagination,
	}
}

func (g *memory) Find(ctx context.Context, id uuid.UUID) (deck.Presentation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.presentations[id]
	if !ok {
		return deck.Presentation{}, fmt.Errorf("presentation %s: %w", id, deck.ErrNotFound)
	}
	return p.Clone(), nil
}

var memorySorts = map[string]func(a, b deck.Presentation) int{
	"Title":     func(a, b deck.Presentation) int { return cmp.Compare(a.Title, b.Title) },
	"ViewCount": func(a, b deck.Presentation) int { return cmp.Compare(a.ViewCount, b.ViewCount) },
	"CreatedAt": func(a, b deck.Presentation) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"UpdatedAt": func(a, b deck.Presentation) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

func (g *memory) List(ctx context.Context, ownerID string, page pagination.PageRequest, filters Filters) (*pagination.PageResult[deck.Presentation], error) {
	page.Normalize(g.pagination)

	g.mu.Lock()
	matched := make([]deck.Presentation, 0)
	for _, p := range g.presentations {
		if p.OwnerID != ownerID || !filters.matches(p) {
			continue
		}
		if page.Search != nil && !containsFold(p.Title, *page.Search) && !containsFold(p.Description, *page.Search) {
			continue
		}
		matched = append(matched, p.Clone())
	}
	g.mu.Unlock()

	sorts := page.Sort
	if len(sorts) == 0 {
		sorts = []query.SortField{presentationSort}
	}
	slices.SortStableFunc(matched, func(a, b deck.Presentation) int {
		for _, s := range sorts {
			compare, ok := memorySorts[s.Field]
			if !ok {
				continue
			}
			c := compare(a, b)
			if s.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	result := pagination.Slice(matched, page)
	return &result, nil
}

func (g *memory) Create(ctx context.Context, p deck.Presentation, slides []deck.Slide) error {
	if err := checkSlideSet(p.ID, slides); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.presentations[p.ID]; exists {
		return fmt.Errorf("%w: presentation %s already exists", deck.ErrSchemaValidation, p.ID)
	}

	p = p.Clone()
	p.SlideIDs = ordering.IDs(ordering.Sort(slides))
	g.presentations[p.ID] = p
	for _, s := range slides {
		g.slides[s.ID] = s.Clone()
	}

	g.logger.Info("presentation created", "id", p.ID, "slides", len(slides))
	return nil
}

func (g *memory) PutPresentation(ctx context.Context, p deck.Presentation) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.presentations[p.ID]
	if !ok {
		return fmt.Errorf("presentation %s: %w", p.ID, deck.ErrNotFound)
	}

	next := p.Clone()
	next.OwnerID = current.OwnerID
	next.SlideIDs = current.SlideIDs
	next.ViewCount = current.ViewCount
	next.ShareToken = current.ShareToken
	next.CreatedAt = current.CreatedAt
	g.presentations[p.ID] = next
	return nil
}

func (g *memory) DeletePresentation(ctx context.Context, id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.presentations[id]; !ok {
		return fmt.Errorf("presentation %s: %w", id, deck.ErrNotFound)
	}

	delete(g.presentations, id)
	delete(g.messages, id)
	for sid, s := range g.slides {
		if s.PresentationID == id {
			delete(g.slides, sid)
		}
	}

	g.logger.Info("presentation deleted", "id", id)
	return nil
}

func (g *memory) FindSlides(ctx context.Context, presentationID uuid.UUID) ([]deck.Slide, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slidesOf(presentationID), nil
}

func (g *memory) FindSlide(ctx context.Context, id uuid.UUID) (deck.Slide, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.slides[id]
	if !ok {
		return deck.Slide{}, fmt.Errorf("slide %s: %w", id, deck.ErrNotFound)
	}
	return s.Clone(), nil
}

func (g *memory) PutSlide(ctx context.Context, s deck.Slide) error {
	if err := s.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.slides[s.ID]
	if !ok {
		return fmt.Errorf("slide %s: %w", s.ID, deck.ErrNotFound)
	}

	next := s.Clone()
	next.PresentationID = current.PresentationID
	next.SlideNumber = current.SlideNumber
	next.CreatedAt = current.CreatedAt
	g.slides[s.ID] = next
	return nil
}

func (g *memory) Mutate(ctx context.Context, presentationID uuid.UUID, fn MutateFunc) ([]deck.Slide, error) {
	d, err := g.Edit(ctx, presentationID, slidesOnly(fn))
	if err != nil {
		return nil, err
	}
	return d.Slides, nil
}

func (g *memory) Edit(ctx context.Context, presentationID uuid.UUID, fn EditFunc) (deck.Detail, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.presentations[presentationID]
	if !ok {
		return deck.Detail{}, fmt.Errorf("presentation %s: %w", presentationID, deck.ErrNotFound)
	}

	slides := g.slidesOf(presentationID)
	p, next, err := fn(current.Clone(), slides)
	if err != nil {
		return deck.Detail{}, err
	}
	if err := ctx.Err(); err != nil {
		return deck.Detail{}, err
	}
	if err := checkSlideSet(presentationID, next); err != nil {
		return deck.Detail{}, err
	}

	next = ordering.Sort(next)
	keep := make(map[uuid.UUID]struct{}, len(next))
	for _, s := range next {
		keep[s.ID] = struct{}{}
	}
	for _, s := range slides {
		if _, ok := keep[s.ID]; !ok {
			delete(g.slides, s.ID)
		}
	}
	for _, s := range next {
		g.slides[s.ID] = s.Clone()
	}

	p = p.Clone()
	p.ID = current.ID
	p.OwnerID = current.OwnerID
	p.ViewCount = current.ViewCount
	p.ShareToken = current.ShareToken
	p.CreatedAt = current.CreatedAt
	p.SlideIDs = ordering.IDs(next)
	p.UpdatedAt = time.Now().UTC()
	g.presentations[presentationID] = p

	return deck.Detail{Presentation: p.Clone(), Slides: deck.CloneSlides(next)}, nil
}

func (g *memory) Share(ctx context.Context, id uuid.UUID, token string) (deck.Presentation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.presentations[id]
	if !ok {
		return deck.Presentation{}, fmt.Errorf("presentation %s: %w", id, deck.ErrNotFound)
	}
	p.IsPublic = true
	p.ShareToken = token
	p.UpdatedAt = time.Now().UTC()
	g.presentations[id] = p
	return p.Clone(), nil
}

func (g *memory) IncrementViews(ctx context.Context, id uuid.UUID) (deck.Presentation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.presentations[id]
	if !ok {
		return deck.Presentation{}, fmt.Errorf("presentation %s: %w", id, deck.ErrNotFound)
	}
	p.ViewCount++
	g.presentations[id] = p
	return p.Clone(), nil
}

func (g *memory) AppendMessages(ctx context.Context, msgs ...deck.ChatMessage) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, m := range msgs {
		if _, ok := g.presentations[m.PresentationID]; !ok {
			return fmt.Errorf("presentation %s: %w", m.PresentationID, deck.ErrNotFound)
		}
	}
	for _, m := range msgs {
		if m.SlideID != nil {
			id := *m.SlideID
			m.SlideID = &id
		}
		g.messages[m.PresentationID] = append(g.messages[m.PresentationID], m)
	}
	return nil
}

func (g *memory) Messages(ctx context.Context, presentationID uuid.UUID, limit int) ([]deck.ChatMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.messages[presentationID]
	start := 0
	if limit > 0 && len(all) > limit {
		start = len(all) - limit
	}
	return slices.Clone(all[start:]), nil
}

// slidesOf returns copies of the presentation's slides in slide_number
// order. The caller must hold g.mu.
func (g *memory) slidesOf(presentationID uuid.UUID) []deck.Slide {
	out := make([]deck.Slide, 0)
	for _, s := range g.slides {
		if s.PresentationID == presentationID {
			out = append(out, s.Clone())
		}
	}
	return ordering.Sort(out)
}
