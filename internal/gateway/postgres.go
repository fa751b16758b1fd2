package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/internal/ordering"
	"github.com/JaimeStill/slide-lab/pkg/pagination"
	"github.com/JaimeStill/slide-lab/pkg/query"
	"github.com/JaimeStill/slide-lab/pkg/repository"
)

// errDuplicate is returned when an insert collides with an existing id.
var errDuplicate = fmt.Errorf("%w: record already exists", deck.ErrSchemaValidation)

type postgres struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewPostgres creates a gateway backed by the schema in Migrations.
// Mutate locks the presentation row for the length of its transaction and
// relies on the deferred (presentation_id, slide_number) constraint, so
// renumbering never exposes a duplicate or a gap to other readers.
func NewPostgres(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Gateway {
	return &postgres{
		db:         db,
		logger:     logger.With("system", "gateway", "backend", "postgres"),
		pagination: pagination,
	}
}

func (g *postgres) Find(ctx context.Context, id uuid.UUID) (deck.Presentation, error) {
	q, args := query.NewBuilder(presentationProjection, presentationSort).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, g.db, q, args, scanPresentation)
	if err != nil {
		return deck.Presentation{}, g.mapError(err, "presentation", id)
	}
	return p, nil
}

func (g *postgres) List(ctx context.Context, ownerID string, page pagination.PageRequest, filters Filters) (*pagination.PageResult[deck.Presentation], error) {
	page.Normalize(g.pagination)

	qb := query.
		NewBuilder(presentationProjection, presentationSort).
		WhereEquals("OwnerID", ownerID).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderBy(page.Sort...)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := g.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count presentations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, g.db, pageSQL, pageArgs, scanPresentation)
	if err != nil {
		return nil, fmt.Errorf("query presentations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (g *postgres) Create(ctx context.Context, p deck.Presentation, slides []deck.Slide) error {
	if err := checkSlideSet(p.ID, slides); err != nil {
		return err
	}

	ids, err := encodeSlideIDs(ordering.IDs(ordering.Sort(slides)))
	if err != nil {
		return err
	}

	q := `
		INSERT INTO presentations (
			id, owner_id, title, description, template_id, thumbnail_url,
			slide_ids, is_public, view_count, share_token, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = repository.WithTx(ctx, g.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q,
			p.ID, p.OwnerID, p.Title, p.Description, p.TemplateID, p.ThumbnailURL,
			ids, p.IsPublic, p.ViewCount, p.ShareToken, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return struct{}{}, err
		}
		for _, s := range slides {
			if err := upsertSlide(ctx, tx, s); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, deck.ErrNotFound, errDuplicate)
	}

	g.logger.Info("presentation created", "id", p.ID, "slides", len(slides))
	return nil
}

func (g *postgres) PutPresentation(ctx context.Context, p deck.Presentation) error {
	q := `
		UPDATE presentations
		SET title = $1, description = $2, template_id = $3, thumbnail_url = $4,
			is_public = $5, updated_at = $6
		WHERE id = $7`

	err := repository.ExecExpectOne(ctx, g.db, q,
		p.Title, p.Description, p.TemplateID, p.ThumbnailURL, p.IsPublic, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return g.mapError(err, "presentation", p.ID)
	}
	return nil
}

func (g *postgres) DeletePresentation(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, g.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM presentations WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return g.mapError(err, "presentation", id)
	}

	g.logger.Info("presentation deleted", "id", id)
	return nil
}

func (g *postgres) FindSlides(ctx context.Context, presentationID uuid.UUID) ([]deck.Slide, error) {
	return g.findSlides(ctx, g.db, presentationID)
}

func (g *postgres) FindSlide(ctx context.Context, id uuid.UUID) (deck.Slide, error) {
	q, args := query.NewBuilder(slideProjection, slideSort).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, g.db, q, args, scanSlide)
	if err != nil {
		return deck.Slide{}, g.mapError(err, "slide", id)
	}
	return s, nil
}

func (g *postgres) PutSlide(ctx context.Context, s deck.Slide) error {
	if err := s.Validate(); err != nil {
		return err
	}

	args, err := slideArgs(s)
	if err != nil {
		return err
	}

	q := `
		UPDATE slides
		SET title = $1, layout = $2, elements = $3, background = $4, notes = $5,
			duration = $6, transition = $7, updated_at = $8
		WHERE id = $9`

	err = repository.ExecExpectOne(ctx, g.db, q,
		args[3], args[4], args[5], args[6], args[7], args[8], args[9], args[11], s.ID,
	)
	if err != nil {
		return g.mapError(err, "slide", s.ID)
	}
	return nil
}

func (g *postgres) Mutate(ctx context.Context, presentationID uuid.UUID, fn MutateFunc) ([]deck.Slide, error) {
	d, err := g.Edit(ctx, presentationID, slidesOnly(fn))
	if err != nil {
		return nil, err
	}
	return d.Slides, nil
}

func (g *postgres) Edit(ctx context.Context, presentationID uuid.UUID, fn EditFunc) (deck.Detail, error) {
	d, err := repository.WithTx(ctx, g.db, func(tx *sql.Tx) (deck.Detail, error) {
		q, args := query.NewBuilder(presentationProjection, presentationSort).BuildSingle("ID", presentationID)
		current, err := repository.QueryOne(ctx, tx, q+" FOR UPDATE", args, scanPresentation)
		if err != nil {
			return deck.Detail{}, err
		}

		slides, err := g.findSlides(ctx, tx, presentationID)
		if err != nil {
			return deck.Detail{}, err
		}

		p, next, err := fn(current.Clone(), slides)
		if err != nil {
			return deck.Detail{}, err
		}
		if err := checkSlideSet(presentationID, next); err != nil {
			return deck.Detail{}, err
		}
		next = ordering.Sort(next)

		for _, s := range slides {
			if slices.ContainsFunc(next, func(n deck.Slide) bool { return n.ID == s.ID }) {
				continue
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM slides WHERE id = $1", s.ID); err != nil {
				return deck.Detail{}, fmt.Errorf("delete slide %s: %w", s.ID, err)
			}
		}

		for _, s := range next {
			if err := upsertSlide(ctx, tx, s); err != nil {
				return deck.Detail{}, err
			}
		}

		p.ID = current.ID
		p.OwnerID = current.OwnerID
		p.ViewCount = current.ViewCount
		p.ShareToken = current.ShareToken
		p.CreatedAt = current.CreatedAt
		p.SlideIDs = ordering.IDs(next)
		p.UpdatedAt = time.Now().UTC()

		ids, err := encodeSlideIDs(p.SlideIDs)
		if err != nil {
			return deck.Detail{}, err
		}
		err = repository.ExecExpectOne(ctx, tx, `
			UPDATE presentations
			SET slide_ids = $1, title = $2, description = $3, template_id = $4,
				thumbnail_url = $5, is_public = $6, updated_at = $7
			WHERE id = $8`,
			ids, p.Title, p.Description, p.TemplateID, p.ThumbnailURL, p.IsPublic, p.UpdatedAt, presentationID,
		)
		if err != nil {
			return deck.Detail{}, err
		}

		return deck.Detail{Presentation: p, Slides: next}, nil
	})
	if err != nil {
		return deck.Detail{}, g.mapError(err, "presentation", presentationID)
	}
	return d, nil
}

func (g *postgres) Share(ctx context.Context, id uuid.UUID, token string) (deck.Presentation, error) {
	q := fmt.Sprintf(`
		UPDATE presentations p
		SET is_public = TRUE, share_token = $1, updated_at = $2
		WHERE p.id = $3
		RETURNING %s`, presentationProjection.Columns())

	p, err := repository.QueryOne(ctx, g.db, q, []any{token, time.Now().UTC(), id}, scanPresentation)
	if err != nil {
		return deck.Presentation{}, g.mapError(err, "presentation", id)
	}
	return p, nil
}

func (g *postgres) IncrementViews(ctx context.Context, id uuid.UUID) (deck.Presentation, error) {
	q := fmt.Sprintf(`
		UPDATE presentations p
		SET view_count = p.view_count + 1
		WHERE p.id = $1
		RETURNING %s`, presentationProjection.Columns())

	p, err := repository.QueryOne(ctx, g.db, q, []any{id}, scanPresentation)
	if err != nil {
		return deck.Presentation{}, g.mapError(err, "presentation", id)
	}
	return p, nil
}

func (g *postgres) AppendMessages(ctx context.Context, msgs ...deck.ChatMessage) error {
	q := `
		INSERT INTO chat_messages (id, presentation_id, slide_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.WithTx(ctx, g.db, func(tx *sql.Tx) (struct{}, error) {
		for _, m := range msgs {
			var slideID uuid.NullUUID
			if m.SlideID != nil {
				slideID = uuid.NullUUID{UUID: *m.SlideID, Valid: true}
			}
			_, err := tx.ExecContext(ctx, q, m.ID, m.PresentationID, slideID, string(m.Role), m.Content, m.CreatedAt)
			if err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, deck.ErrNotFound, errDuplicate)
	}
	return nil
}

func (g *postgres) Messages(ctx context.Context, presentationID uuid.UUID, limit int) ([]deck.ChatMessage, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2",
		messageProjection.Columns(),
		messageProjection.Table(),
		messageProjection.Column("PresentationID"),
		messageProjection.Column("CreatedAt"),
	)

	msgs, err := repository.QueryMany(ctx, g.db, q, []any{presentationID, limit}, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	slices.Reverse(msgs)
	return msgs, nil
}

func (g *postgres) findSlides(ctx context.Context, q repository.Querier, presentationID uuid.UUID) ([]deck.Slide, error) {
	stmt := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		slideProjection.Columns(),
		slideProjection.Table(),
		slideProjection.Column("PresentationID"),
		slideProjection.Column("SlideNumber"),
	)

	slides, err := repository.QueryMany(ctx, q, stmt, []any{presentationID}, scanSlide)
	if err != nil {
		return nil, fmt.Errorf("query slides: %w", err)
	}
	return slides, nil
}

func upsertSlide(ctx context.Context, tx *sql.Tx, s deck.Slide) error {
	args, err := slideArgs(s)
	if err != nil {
		return err
	}

	q := `
		INSERT INTO slides (
			id, presentation_id, slide_number, title, layout, elements,
			background, notes, duration, transition, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			slide_number = EXCLUDED.slide_number,
			title = EXCLUDED.title,
			layout = EXCLUDED.layout,
			elements = EXCLUDED.elements,
			background = EXCLUDED.background,
			notes = EXCLUDED.notes,
			duration = EXCLUDED.duration,
			transition = EXCLUDED.transition,
			updated_at = EXCLUDED.updated_at
		WHERE slides.presentation_id = EXCLUDED.presentation_id`

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("write slide %s: %w", s.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return fmt.Errorf("%w: slide %s belongs to another presentation", deck.ErrSchemaValidation, s.ID)
	}
	return nil
}

func (g *postgres) mapError(err error, kind string, id uuid.UUID) error {
	mapped := repository.MapError(err, deck.ErrNotFound, errDuplicate)
	if mapped == deck.ErrNotFound {
		return fmt.Errorf("%s %s: %w", kind, id, deck.ErrNotFound)
	}
	return mapped
}
