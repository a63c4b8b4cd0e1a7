package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/threadscout/internal/conversation"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	listHeight     int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 20,
		listHeight:     12,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - horizontalPadding
	if innerWidth < minContentWidth {
		innerWidth = minContentWidth
	}
	l.viewportWidth = innerWidth
	const chrome = 9
	usable := height - chrome
	if usable < 8 {
		usable = 8
	}
	l.viewportHeight = usable
	l.listHeight = usable
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// buildThreadContent renders the full response thread and records the line
// anchor where each exchange starts, so [ and ] can jump between them.
func (m *model) buildThreadContent() (string, []int) {
	cb := &contentBuilder{}
	var anchors []int
	wrap := m.wrapWidth(4)

	responses := m.thread.CurrentThread()
	for idx, response := range responses {
		if idx > 0 {
			cb.WriteRune('\n')
			cb.WriteString(dividerStyle.Render(strings.Repeat("─", min(wrap, 60))))
			cb.WriteRune('\n')
			cb.WriteRune('\n')
		}
		anchors = append(anchors, cb.Line())
		m.writeExchange(cb, response, wrap)
	}
	return cb.String(), anchors
}

func (m *model) writeExchange(cb *contentBuilder, response conversation.Response, wrap int) {
	cb.WriteString(queryLabelStyle.Render("You"))
	cb.WriteString("  ")
	cb.WriteString(badgeStyle.Render(categoryLabel(response.Category)))
	cb.WriteRune('\n')
	cb.WriteString(indentMultiline(wordwrap.String(response.Query, wrap), "  "))
	cb.WriteRune('\n')
	cb.WriteRune('\n')

	cb.WriteString(answerLabelStyle.Render("Scout"))
	cb.WriteRune('\n')
	cb.WriteString(indentMultiline(wordwrap.String(response.Answer, wrap), "  "))
	cb.WriteRune('\n')

	if len(response.Sources) > 0 {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render(fmt.Sprintf("Sources (%d)", len(response.Sources))))
		cb.WriteRune('\n')
		for _, source := range response.Sources {
			cb.WriteString("  • ")
			cb.WriteString(source.Title)
			cb.WriteString(helperStyle.Render(" · " + source.Domain))
			cb.WriteRune('\n')
		}
	}

	if len(response.Steps) > 0 {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render("How this was assembled"))
		cb.WriteRune('\n')
		for _, step := range response.Steps {
			cb.WriteString("  ✓ ")
			cb.WriteString(step.Title)
			if len(step.Details) > 0 {
				cb.WriteString(helperStyle.Render(" · " + previewText(strings.Join(step.Details, ", "), 60)))
			}
			cb.WriteRune('\n')
		}
	}

	if len(response.Charts) > 0 {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render("Visualizations"))
		cb.WriteRune('\n')
		for _, chart := range response.Charts {
			cb.WriteString(fmt.Sprintf("  ▦ %s (%s)", chart.Title, chart.Kind))
			cb.WriteRune('\n')
			if chart.Description != "" {
				cb.WriteString(helperStyle.Render(indentMultiline(wordwrap.String(chart.Description, wrap-4), "    ")))
				cb.WriteRune('\n')
			}
		}
	}

	if len(response.RelatedQuestions) > 0 {
		cb.WriteRune('\n')
		cb.WriteString(sectionHeaderStyle.Render("Related questions"))
		cb.WriteRune('\n')
		for _, question := range response.RelatedQuestions {
			cb.WriteString("  ? ")
			cb.WriteString(question)
			cb.WriteRune('\n')
		}
	}
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
