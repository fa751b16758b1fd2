package gateway

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/slide-lab/internal/deck"
	"github.com/JaimeStill/slide-lab/pkg/query"
	"github.com/JaimeStill/slide-lab/pkg/repository"
)

var presentationProjection = query.
	NewProjectionMap("public", "presentations", "p").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("title", "Title").
	Project("description", "Description").
	Project("template_id", "TemplateID").
	Project("thumbnail_url", "ThumbnailURL").
	Project("slide_ids", "SlideIDs").
	Project("is_public", "IsPublic").
	Project("view_count", "ViewCount").
	Project("share_token", "ShareToken").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var presentationSort = query.SortField{Field: "UpdatedAt", Descending: true}

var slideProjection = query.
	NewProjectionMap("public", "slides", "s").
	Project("id", "ID").
	Project("presentation_id", "PresentationID").
	Project("slide_number", "SlideNumber").
	Project("title", "Title").
	Project("layout", "Layout").
	Project("elements", "Elements").
	Project("background", "Background").
	Project("notes", "Notes").
	Project("duration", "Duration").
	Project("transition", "Transition").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var slideSort = query.SortField{Field: "SlideNumber"}

var messageProjection = query.
	NewProjectionMap("public", "chat_messages", "m").
	Project("id", "ID").
	Project("presentation_id", "PresentationID").
	Project("slide_id", "SlideID").
	Project("role", "Role").
	Project("content", "Content").
	Project("created_at", "CreatedAt")

func scanPresentation(s repository.Scanner) (deck.Presentation, error) {
	var p deck.Presentation
	var slideIDs []byte
	err := s.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.TemplateID, &p.ThumbnailURL, &slideIDs,
		&p.IsPublic, &p.ViewCount, &p.ShareToken, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(slideIDs, &p.SlideIDs); err != nil {
		return p, fmt.Errorf("decode slide_ids: %w", err)
	}
	return p, nil
}

func scanSlide(s repository.Scanner) (deck.Slide, error) {
	var sl deck.Slide
	var elements, background []byte
	var duration sql.NullInt64
	err := s.Scan(
		&sl.ID, &sl.PresentationID, &sl.SlideNumber, &sl.Title, &sl.Layout,
		&elements, &background, &sl.Notes, &duration, &sl.Transition,
		&sl.CreatedAt, &sl.UpdatedAt,
	)
	if err != nil {
		return sl, err
	}
	if err := json.Unmarshal(elements, &sl.Elements); err != nil {
		return sl, fmt.Errorf("decode elements: %w", err)
	}
	if err := json.Unmarshal(background, &sl.Background); err != nil {
		return sl, fmt.Errorf("decode background: %w", err)
	}
	if duration.Valid {
		d := int(duration.Int64)
		sl.Duration = &d
	}
	return sl, nil
}

func scanMessage(s repository.Scanner) (deck.ChatMessage, error) {
	var m deck.ChatMessage
	var slideID uuid.NullUUID
	err := s.Scan(&m.ID, &m.PresentationID, &slideID, &m.Role, &m.Content, &m.CreatedAt)
	if err != nil {
		return m, err
	}
	if slideID.Valid {
		id := slideID.UUID
		m.SlideID = &id
	}
	return m, nil
}

// slideArgs returns the column values for the slides insert statement.
func slideArgs(s deck.Slide) ([]any, error) {
	elements := s.Elements
	if elements == nil {
		elements = []deck.Element{}
	}
	el, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("encode elements: %w", err)
	}
	bg, err := json.Marshal(s.Background)
	if err != nil {
		return nil, fmt.Errorf("encode background: %w", err)
	}
	var duration any
	if s.Duration != nil {
		duration = *s.Duration
	}
	return []any{
		s.ID, s.PresentationID, s.SlideNumber, s.Title, string(s.Layout),
		string(el), string(bg), s.Notes, duration, s.Transition,
		s.CreatedAt, s.UpdatedAt,
	}, nil
}

func encodeSlideIDs(ids []uuid.UUID) (string, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode slide_ids: %w", err)
	}
	return string(b), nil
}
