package assistant

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

const slideContentSystemPrompt = `You are a presentation content expert. Create engaging slide content.

Respond with ONLY valid JSON:
{
  "title": "Slide Title",
  "content": "Main content with key points",
  "speaker_notes": "Presenter notes"
}`

const chatSystemPrompt = `You are an AI presentation assistant helping with a presentation titled %q.

Your role is to:
1. Suggest better wording and structure for slide content
2. Recommend visual elements and design improvements
3. Provide content ideas and expand on topics
4. Offer design tips and best practices
5. Answer questions about presentation creation

Keep responses concise, actionable, and friendly.`

func slideContentPrompt(cmd SlideContentCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create content for a slide titled: %s", cmd.Title)
	if cmd.Context != "" {
		fmt.Fprintf(&b, "\nPresentation context: %s", cmd.Context)
	}
	if cmd.Layout != "" {
		fmt.Fprintf(&b, "\nThe slide uses the %s layout.", cmd.Layout)
	}
	b.WriteString("\n\nProvide 3-5 key points or 2-3 short paragraphs.")
	return b.String()
}

func improveSystemPrompt(t ImprovementType) string {
	return fmt.Sprintf(`You are a presentation improvement expert. %s.

Respond with ONLY valid JSON:
{
  "improved_content": "The improved content",
  "changes_made": "Brief description of changes",
  "suggestions": "Additional suggestions"
}`, improvementInstructions[t])
}

func improvePrompt(cmd ImproveCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Improve this slide content:\n\n%s", cmd.Content)
	if cmd.Context != "" {
		fmt.Fprintf(&b, "\nContext: %s", cmd.Context)
	}
	b.WriteString("\n\nProvide improved version.")
	return b.String()
}

func chatSystem(p deck.Presentation, slide *deck.Slide) string {
	title := p.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, chatSystemPrompt, title)
	if slide != nil {
		b.WriteString("\n\nCurrent slide context:")
		fmt.Fprintf(&b, "\n- Slide #%d: %s", slide.SlideNumber, slide.Title)
		if text := slideText(*slide); text != "" {
			fmt.Fprintf(&b, "\n- Content: %s", excerpt(text, SlideExcerpt))
		}
	}
	return b.String()
}

func chatPrompt(history []deck.ChatMessage, message string) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, m := range history {
			role := "User"
			if m.Role == deck.ChatAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, excerpt(m.Content, HistoryExcerpt))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\n\nProvide helpful, specific advice:", message)
	return b.String()
}

// slideText joins the text of a slide's visible text elements, skipping
// the element that repeats the slide title.
func slideText(s deck.Slide) string {
	var parts []string
	for _, e := range s.Elements {
		if e.Type != deck.ElementText || !e.Visible {
			continue
		}
		text, _ := e.Content["text"].(string)
		if text == "" || text == s.Title {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
