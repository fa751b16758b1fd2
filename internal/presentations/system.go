// Package presentations manages presentation records and the generation
// flows that turn generated text into a stored presentation with slides.
// Generation happens before any lock or write; a flow either stores the
// whole presentation in one batch or stores nothing.
package presentations

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/config"
	wf "github.com/JaimeStill/go-agents-orchestration/pkg/workflows"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/JaimeStill/slide-lab/internal/assembler"
	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/generator"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
)

// System defines presentation operations. caller is the requesting user id;
// an empty caller skips ownership checks on existing presentations but
// cannot create new ones.
type System interface {
	List(ctx context.Context, caller string, page pagination.PageRequest, filters gateway.Filters) (*pagination.PageResult[deck.Presentation], error)
	Find(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error)
	View(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error)
	Create(ctx context.Context, caller string, cmd CreateCommand) (deck.Presentation, error)
	Update(ctx context.Context, caller string, id uuid.UUID, cmd UpdateCommand) (deck.Presentation, error)
	Delete(ctx context.Context, caller string, id uuid.UUID) error
	Duplicate(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error)

	// Share makes the presentation public under a fresh share token and
	// returns the link that grants preview access. Sharing again replaces
	// the token.
	Share(ctx context.Context, caller string, id uuid.UUID) (ShareLink, error)

	// Preview reads a presentation for the owner or for a holder of its
	// current share token, and counts the view.
	Preview(ctx context.Context, caller string, id uuid.UUID, token string) (deck.Detail, error)

	// Authorize loads a presentation and checks that caller owns it.
	Authorize(ctx context.Context, caller string, id uuid.UUID) (deck.Presentation, error)

	Assemble(ctx context.Context, caller, raw string) (deck.Detail, error)
	Generate(ctx context.Context, caller string, cmd GenerateCommand) (deck.Detail, error)
	GenerateOutline(ctx context.Context, cmd OutlineCommand) (assembler.GeneratedOutline, error)
	GenerateFromOutline(ctx context.Context, caller string, cmd FromOutlineCommand) (deck.Detail, error)
}

type system struct {
	gw        gateway.Gateway
	gen       generator.Client
	locks     locks.Locker
	expansion *semaphore.Weighted
	shareURL  string
	logger    *slog.Logger
	now       func() time.Time
}

// New creates the presentations system. concurrency caps the number of
// generator calls in flight while expanding an outline. Share links are
// built on shareURL.
func New(gw gateway.Gateway, gen generator.Client, locker locks.Locker, concurrency int, shareURL string, logger *slog.Logger) System {
	if concurrency < 1 {
		concurrency = 1
	}
	return &system{
		gw:        gw,
		gen:       gen,
		locks:     locker,
		expansion: semaphore.NewWeighted(int64(concurrency)),
		shareURL:  shareURL,
		logger:    logger.With("system", "presentations"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *system) List(ctx context.Context, caller string, page pagination.PageRequest, filters gateway.Filters) (*pagination.PageResult[deck.Presentation], error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.gw.List(ctx, caller, page, filters)
}

func (s *system) Find(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error) {
	p, err := s.gw.Find(ctx, id)
	if err != nil {
		return deck.Detail{}, err
	}
	if err := deck.AuthorizeRead(p, caller); err != nil {
		return deck.Detail{}, err
	}
	return s.detail(ctx, p)
}

// View reads a presentation for display. Reads of public presentations
// count toward view_count.
func (s *system) View(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error) {
	p, err := s.gw.Find(ctx, id)
	if err != nil {
		return deck.Detail{}, err
	}
	if err := deck.AuthorizeRead(p, caller); err != nil {
		return deck.Detail{}, err
	}

	if p.IsPublic {
		if p, err = s.gw.IncrementViews(ctx, id); err != nil {
			return deck.Detail{}, err
		}
	}
	return s.detail(ctx, p)
}

func (s *system) Create(ctx context.Context, caller string, cmd CreateCommand) (deck.Presentation, error) {
	if err := requireCaller(caller); err != nil {
		return deck.Presentation{}, err
	}
	if err := validateTitle(cmd.Title); err != nil {
		return deck.Presentation{}, err
	}

	now := s.now()
	p := deck.Presentation{
		ID:          uuid.New(),
		OwnerID:     caller,
		Title:       cmd.Title,
		Description: cmd.Description,
		TemplateID:  cmd.TemplateID,
		SlideIDs:    []uuid.UUID{},
		IsPublic:    cmd.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.gw.Create(ctx, p, nil); err != nil {
		return deck.Presentation{}, err
	}

	s.logger.Info("presentation created", "id", p.ID, "owner", caller)
	return p, nil
}

func (s *system) Update(ctx context.Context, caller string, id uuid.UUID, cmd UpdateCommand) (deck.Presentation, error) {
	unlock, err := s.locks.Lock(ctx, id.String())
	if err != nil {
		return deck.Presentation{}, err
	}
	defer unlock()

	p, err := s.Authorize(ctx, caller, id)
	if err != nil {
		return deck.Presentation{}, err
	}

	if cmd.Title != nil {
		if err := validateTitle(*cmd.Title); err != nil {
			return deck.Presentation{}, err
		}
		p.Title = *cmd.Title
	}
	if cmd.Description != nil {
		p.Description = *cmd.Description
	}
	if cmd.TemplateID != nil {
		p.TemplateID = cmd.TemplateID
	}
	if cmd.ThumbnailURL != nil {
		p.ThumbnailURL = cmd.ThumbnailURL
	}
	if cmd.IsPublic != nil {
		p.IsPublic = *cmd.IsPublic
	}
	p.UpdatedAt = s.now()

	if err := s.gw.PutPresentation(ctx, p); err != nil {
		return deck.Presentation{}, err
	}

	s.logger.Info("presentation updated", "id", id)
	return p, nil
}

func (s *system) Delete(ctx context.Context, caller string, id uuid.UUID) error {
	unlock, err := s.locks.Lock(ctx, id.String())
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.Authorize(ctx, caller, id); err != nil {
		return err
	}

	if err := s.gw.DeletePresentation(ctx, id); err != nil {
		return err
	}

	s.logger.Info("presentation deleted", "id", id)
	return nil
}

// Duplicate copies a presentation and all of its slides under new ids. The
// copy is private, has no views, and belongs to caller when one is given.
func (s *system) Duplicate(ctx context.Context, caller string, id uuid.UUID) (deck.Detail, error) {
	source, err := s.Find(ctx, caller, id)
	if err != nil {
		return deck.Detail{}, err
	}

	now := s.now()
	p := source.Presentation.Clone()
	p.ID = uuid.New()
	p.Title = copyTitle(p.Title)
	p.IsPublic = false
	p.ViewCount = 0
	p.ShareToken = ""
	p.CreatedAt = now
	p.UpdatedAt = now
	if caller != "" {
		p.OwnerID = caller
	}

	slides := make([]deck.Slide, len(source.Slides))
	for i, sl := range source.Slides {
		dup := sl.Clone()
		dup.ID = uuid.New()
		dup.PresentationID = p.ID
		dup.CreatedAt = now
		dup.UpdatedAt = now
		slides[i] = dup
	}
	p.SlideIDs = ordering.IDs(slides)

	if err := s.gw.Create(ctx, p, slides); err != nil {
		return deck.Detail{}, err
	}

	s.logger.Info("presentation duplicated", "source", id, "id", p.ID, "slides", len(slides))
	return deck.Detail{Presentation: p, Slides: ordering.Sort(slides)}, nil
}

func (s *system) Share(ctx context.Context, caller string, id uuid.UUID) (ShareLink, error) {
	if err := requireCaller(caller); err != nil {
		return ShareLink{}, err
	}

	unlock, err := s.locks.Lock(ctx, id.String())
	if err != nil {
		return ShareLink{}, err
	}
	defer unlock()

	if _, err := s.Authorize(ctx, caller, id); err != nil {
		return ShareLink{}, err
	}

	token, err := newShareToken()
	if err != nil {
		return ShareLink{}, err
	}
	p, err := s.gw.Share(ctx, id, token)
	if err != nil {
		return ShareLink{}, err
	}

	s.logger.Info("presentation shared", "id", id)
	return ShareLink{
		ShareToken: token,
		ShareLink:  fmt.Sprintf("%s/presentations/%s/preview?token=%s", s.shareURL, id, token),
		IsPublic:   p.IsPublic,
	}, nil
}

func (s *system) Preview(ctx context.Context, caller string, id uuid.UUID, token string) (deck.Detail, error) {
	p, err := s.gw.Find(ctx, id)
	if err != nil {
		return deck.Detail{}, err
	}

	owner := caller != "" && caller == p.OwnerID
	if !owner && !validShareToken(p, token) {
		return deck.Detail{}, fmt.Errorf("%w: preview requires the share token", deck.ErrOwnership)
	}

	if p, err = s.gw.IncrementViews(ctx, id); err != nil {
		return deck.Detail{}, err
	}
	return s.detail(ctx, p)
}

func (s *system) Authorize(ctx context.Context, caller string, id uuid.UUID) (deck.Presentation, error) {
	p, err := s.gw.Find(ctx, id)
	if err != nil {
		return deck.Presentation{}, err
	}
	if err := deck.Authorize(p, caller); err != nil {
		return deck.Presentation{}, err
	}
	return p, nil
}

// Assemble stores raw full-mode generated text as a new presentation.
func (s *system) Assemble(ctx context.Context, caller, raw string) (deck.Detail, error) {
	if err := requireCaller(caller); err != nil {
		return deck.Detail{}, err
	}

	result, err := assembler.Assemble(caller, raw, s.now())
	if err != nil {
		s.logger.Warn("assembly rejected", "owner", caller, "error", err)
		return deck.Detail{}, err
	}

	return s.store(ctx, result)
}

func (s *system) Generate(ctx context.Context, caller string, cmd GenerateCommand) (deck.Detail, error) {
	if err := requireCaller(caller); err != nil {
		return deck.Detail{}, err
	}
	if err := cmd.normalize(); err != nil {
		return deck.Detail{}, err
	}

	session := "pres-gen-" + uuid.NewString()
	raw, err := s.gen.Generate(ctx, presentationPrompt(cmd), presentationSystemPrompt, session)
	if err != nil {
		return deck.Detail{}, err
	}

	result, err := assembler.Assemble(caller, raw, s.now())
	if err != nil {
		s.logger.Warn("generated presentation rejected", "session", session, "error", err)
		return deck.Detail{}, err
	}

	return s.store(ctx, result)
}

// GenerateOutline returns a validated outline. Nothing is stored.
func (s *system) GenerateOutline(ctx context.Context, cmd OutlineCommand) (assembler.GeneratedOutline, error) {
	if err := cmd.normalize(); err != nil {
		return assembler.GeneratedOutline{}, err
	}

	session := "outline-" + uuid.NewString()
	raw, err := s.gen.Generate(ctx, outlinePrompt(cmd), outlineSystemPrompt, session)
	if err != nil {
		return assembler.GeneratedOutline{}, err
	}

	outline, err := assembler.ParseOutline(raw)
	if err != nil {
		s.logger.Warn("generated outline rejected", "session", session, "error", err)
		return assembler.GeneratedOutline{}, err
	}

	s.logger.Info("outline generated", "topic", outline.Topic, "slides", len(outline.Outline))
	return outline, nil
}

type expansionTask struct {
	index int
	item  assembler.OutlineItem
}

type expandedDraft struct {
	index int
	draft assembler.GeneratedSlideDraft
}

// GenerateFromOutline expands every outline item into slide content in
// parallel and stores the result. Any failed expansion fails the whole
// request.
func (s *system) GenerateFromOutline(ctx context.Context, caller string, cmd FromOutlineCommand) (deck.Detail, error) {
	if err := requireCaller(caller); err != nil {
		return deck.Detail{}, err
	}
	if err := cmd.validate(); err != nil {
		return deck.Detail{}, err
	}

	title := cmd.Title
	if title == "" {
		title = cmd.Outline.Topic
	}

	items := cmd.Outline.Outline
	tasks := make([]expansionTask, len(items))
	for i, item := range items {
		tasks[i] = expansionTask{index: i, item: item}
	}

	failures := make([]error, len(items))
	processor := func(ctx context.Context, t expansionTask) (expandedDraft, error) {
		if err := s.expansion.Acquire(ctx, 1); err != nil {
			failures[t.index] = err
			return expandedDraft{}, err
		}
		defer s.expansion.Release(1)

		draft, err := s.expand(ctx, title, cmd.Audience, t.index+1, len(items), t.item)
		if err != nil {
			failures[t.index] = fmt.Errorf("slide %d: %w", t.index+1, err)
			return expandedDraft{}, failures[t.index]
		}
		return expandedDraft{index: t.index, draft: draft}, nil
	}

	result, err := wf.ProcessParallel(ctx, expansionParallelConfig(), tasks, processor, nil)
	if cause := firstError(failures); cause != nil {
		s.logger.Warn("outline expansion failed", "topic", title, "error", cause)
		return deck.Detail{}, cause
	}
	if err != nil {
		return deck.Detail{}, fmt.Errorf("outline expansion failed: %w", err)
	}

	drafts := make([]assembler.GeneratedSlideDraft, len(items))
	for _, r := range result.Results {
		drafts[r.index] = r.draft
	}

	lowered, err := assembler.Lower(caller, assembler.GeneratedPresentation{
		Title:  title,
		Slides: drafts,
	}, s.now())
	if err != nil {
		return deck.Detail{}, err
	}

	return s.store(ctx, lowered)
}

func (s *system) expand(ctx context.Context, topic, audience string, index, count int, item assembler.OutlineItem) (assembler.GeneratedSlideDraft, error) {
	session := "slide-" + uuid.NewString()
	raw, err := s.gen.Generate(ctx, expansionPrompt(topic, audience, index, count, item), slideSystemPrompt, session)
	if err != nil {
		return assembler.GeneratedSlideDraft{}, err
	}

	draft, err := assembler.ParseDraft(raw)
	if err != nil {
		return assembler.GeneratedSlideDraft{}, err
	}
	if item.Layout != "" {
		draft.Layout = item.Layout
	}
	return draft, nil
}

func (s *system) store(ctx context.Context, result assembler.Result) (deck.Detail, error) {
	if err := s.gw.Create(ctx, result.Presentation, result.Slides); err != nil {
		return deck.Detail{}, err
	}

	s.logger.Info("presentation assembled",
		"id", result.Presentation.ID,
		"owner", result.Presentation.OwnerID,
		"slides", len(result.Slides),
	)
	return result.Detail(), nil
}

func (s *system) detail(ctx context.Context, p deck.Presentation) (deck.Detail, error) {
	slides, err := s.gw.FindSlides(ctx, p.ID)
	if err != nil {
		return deck.Detail{}, err
	}
	return deck.Detail{Presentation: p, Slides: slides}, nil
}

func expansionParallelConfig() config.ParallelConfig {
	cfg := config.DefaultParallelConfig()
	cfg.Observer = "noop"
	return cfg
}

func newShareToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// validShareToken reports whether token opens p. Unshared and private
// presentations accept no token.
func validShareToken(p deck.Presentation, token string) bool {
	if !p.IsPublic || p.ShareToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.ShareToken), []byte(token)) == 1
}

func requireCaller(caller string) error {
	if caller == "" {
		return fmt.Errorf("%w: caller identity required", deck.ErrOwnership)
	}
	return nil
}

func copyTitle(title string) string {
	t := title + " (Copy)"
	if len([]rune(t)) > deck.MaxTitleLength {
		return title
	}
	return t
}

// firstError returns the first failure that is not a cancellation caused by
// a sibling failing first.
func firstError(errs []error) error {
	var canceled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			if canceled == nil {
				canceled = err
			}
		default:
			return err
		}
	}
	return canceled
}
