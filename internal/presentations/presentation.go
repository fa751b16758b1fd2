package presentations

import (
	"fmt"
	"unicode/utf8"

	"github.com/JaimeStill/slide-lab/internal/assembler"
	"github.com/JaimeStill/slide-lab/internal/deck"
)

// Slide count bounds applied to generation requests.
const (
	MinSlides     = 5
	MaxSlides     = 15
	DefaultSlides = 10
)

// CreateCommand creates an empty presentation owned by the caller.
type CreateCommand struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TemplateID  *string `json:"template_id,omitempty"`
	IsPublic    bool    `json:"is_public"`
}

// UpdateCommand replaces the metadata fields that are present.
type UpdateCommand struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	TemplateID   *string `json:"template_id,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

// ShareLink is the result of sharing a presentation. The token is only
// ever returned here.
type ShareLink struct {
	ShareToken string `json:"share_token"`
	ShareLink  string `json:"share_link"`
	IsPublic   bool   `json:"is_public"`
}

// AssembleCommand carries raw generated text in full-mode format.
type AssembleCommand struct {
	Content string `json:"content"`
}

// GenerateCommand requests a complete generated presentation.
type GenerateCommand struct {
	Topic             string `json:"topic"`
	Audience          string `json:"audience,omitempty"`
	Tone              string `json:"tone,omitempty"`
	SlideCount        int    `json:"slide_count,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

// OutlineCommand requests a slide outline for a topic.
type OutlineCommand struct {
	Topic      string `json:"topic"`
	SlideCount int    `json:"slide_count,omitempty"`
}

// FromOutlineCommand expands a reviewed outline into a presentation.
type FromOutlineCommand struct {
	Title    string                     `json:"title,omitempty"`
	Audience string                     `json:"audience,omitempty"`
	Outline  assembler.GeneratedOutline `json:"outline"`
}

// ClampSlides bounds a requested slide count to [MinSlides, MaxSlides]. Zero
// selects DefaultSlides.
func ClampSlides(n int) int {
	if n == 0 {
		return DefaultSlides
	}
	return max(MinSlides, min(MaxSlides, n))
}

func (c *GenerateCommand) normalize() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", deck.ErrSchemaValidation)
	}
	if c.Audience == "" {
		c.Audience = "general"
	}
	if c.Tone == "" {
		c.Tone = "professional"
	}
	c.SlideCount = ClampSlides(c.SlideCount)
	return nil
}

func (c *OutlineCommand) normalize() error {
	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", deck.ErrSchemaValidation)
	}
	c.SlideCount = ClampSlides(c.SlideCount)
	return nil
}

func (c FromOutlineCommand) validate() error {
	if c.Title == "" && c.Outline.Topic == "" {
		return fmt.Errorf("%w: outline topic is required", deck.ErrSchemaValidation)
	}
	if len(c.Outline.Outline) == 0 {
		return fmt.Errorf("%w: outline must not be empty", deck.ErrSchemaValidation)
	}
	for i, item := range c.Outline.Outline {
		if item.Title == "" {
			return fmt.Errorf("%w: outline item %d has no title", deck.ErrSchemaValidation, i+1)
		}
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", deck.ErrSchemaValidation)
	}
	if utf8.RuneCountInString(title) > deck.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", deck.ErrSchemaValidation, deck.MaxTitleLength)
	}
	return nil
}
