package presentations

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/slide-lab/internal/assembler"
)

const presentationSystemPrompt = `You are an expert presentation designer. Create professional presentations with clear structure and engaging content.

Respond with ONLY valid JSON in the following format:
{
  "title": "Presentation Title",
  "description": "Brief description",
  "slides": [
    {
      "title": "Slide Title",
      "content": "Main content with key points",
      "layout": "title-slide|content|two-column|image-left|image-right|section|conclusion",
      "speaker_notes": "Notes for presenter"
    }
  ]
}

Guidelines:
1. Slide titles are short and clear (5-8 words).
2. Content uses bullet points or short paragraphs.
3. The first slide is a title slide carrying the presentation title.
4. The last slide is a conclusion.
5. Middle slides cover the key topics in a logical order.
6. Each slide has 3-5 key points or 2-3 short paragraphs.
7. Language suits the stated audience.`

const outlineSystemPrompt = `You are a presentation structure expert. Create clear, logical outlines.

Respond with ONLY valid JSON:
{
  "topic": "Main topic",
  "outline": [
    {
      "title": "Slide Title",
      "description": "What this slide will cover",
      "layout": "title-slide|content|conclusion"
    }
  ]
}`

const slideSystemPrompt = `You are a presentation content expert. Create engaging slide content.

Respond with ONLY valid JSON:
{
  "title": "Slide Title",
  "content": "Main content with key points",
  "speaker_notes": "Presenter notes"
}`

func presentationPrompt(cmd GenerateCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-slide presentation about: %s\n\n", cmd.SlideCount, cmd.Topic)
	fmt.Fprintf(&b, "Target audience: %s\n", cmd.Audience)
	fmt.Fprintf(&b, "Presentation tone: %s\n", cmd.Tone)
	fmt.Fprintf(&b, "Number of slides: %d", cmd.SlideCount)
	if cmd.AdditionalContext != "" {
		fmt.Fprintf(&b, "\n\nAdditional context: %s", cmd.AdditionalContext)
	}
	b.WriteString("\n\nProvide the complete presentation structure as JSON.")
	return b.String()
}

func outlinePrompt(cmd OutlineCommand) string {
	return fmt.Sprintf(
		"Create a %d-slide outline for a presentation about: %s\n\nProvide slide titles and brief descriptions for each slide.",
		cmd.SlideCount, cmd.Topic,
	)
}

func expansionPrompt(topic, audience string, index, count int, item assembler.OutlineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create content for a slide titled: %s\n", item.Title)
	fmt.Fprintf(&b, "Presentation context: slide %d of %d in a presentation about %s", index, count, topic)
	if audience != "" {
		fmt.Fprintf(&b, " for a %s audience", audience)
	}
	if item.Description != "" {
		fmt.Fprintf(&b, "\nThis slide covers: %s", item.Description)
	}
	b.WriteString("\n\nProvide 3-5 key points or 2-3 short paragraphs.")
	return b.String()
}
