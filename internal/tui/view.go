package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/thread"
)

func (m *model) View() string {
	switch m.stage {
	case stageLanding:
		return m.viewLanding()
	case stageFeed:
		return m.viewFeed()
	case stageDetail:
		return m.viewDetail()
	case stageNotFound:
		return m.viewNotFound()
	default:
		return ""
	}
}

func (m *model) viewLanding() string {
	var sections []string
	sections = append(sections, m.heroView())

	form := strings.Builder{}
	form.WriteString(sectionHeaderStyle.Render("What do you want to know?"))
	form.WriteRune('\n')
	form.WriteString(m.askInput.View())
	form.WriteRune('\n')
	form.WriteString(helperStyle.Render("Press Enter to ask, Tab to browse recent conversations, Esc to quit."))
	if m.infoMessage != "" {
		form.WriteRune('\n')
		form.WriteString(helperStyle.Render(m.infoMessage))
	}
	if m.errorMessage != "" {
		form.WriteRune('\n')
		form.WriteString(errorStyle.Render(m.errorMessage))
	}
	sections = append(sections, form.String())
	return strings.Join(sections, "\n\n")
}

func (m *model) viewFeed() string {
	parts := []string{m.heroView(), m.feedMeterView()}

	if m.searching {
		search := strings.Builder{}
		search.WriteString(sectionHeaderStyle.Render("Search"))
		search.WriteRune('\n')
		search.WriteString(m.searchInput.View())
		search.WriteRune('\n')
		search.WriteString(helperStyle.Render("Results narrow as you type. Enter keeps the filter, Esc clears it."))
		parts = append(parts, search.String())
	}

	if m.notification != nil {
		banner := fmt.Sprintf("◆ New conversation: %s", m.notification.note.Title)
		parts = append(parts, notificationStyle.Render(banner))
	}

	parts = append(parts, m.feedListView())

	if m.config.Feed.Loading() {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Loading conversations…", m.spinner.View())))
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	parts = append(parts, m.feedLegendView())
	return joinNonEmpty(parts)
}

func (m *model) feedMeterView() string {
	stats := []string{
		fmt.Sprintf("Showing %d of %d", len(m.projected), m.config.Store.Len()),
		fmt.Sprintf("Sort %s", m.config.Feed.SortMode()),
		fmt.Sprintf("Filter %s", m.config.Feed.FilterMode()),
	}
	if text := m.config.Feed.SearchText(); text != "" {
		stats = append(stats, fmt.Sprintf("Search %q", text))
	}
	if count := m.config.Feed.SelectedCount(); count > 0 {
		stats = append(stats, fmt.Sprintf("Selected %d", count))
	}
	if !m.config.Feed.HasMore() {
		stats = append(stats, "All loaded")
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) feedListView() string {
	if len(m.projected) == 0 {
		if m.config.Feed.Loading() {
			return ""
		}
		return helperStyle.Render("No conversations match. Press x to clear the selection, f to change the filter, or n to start one.")
	}

	top, bottom := m.listWindow()
	rows := make([]string, 0, bottom-top+2)
	if top > 0 {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("  ↑ %d more above", top)))
	}
	for idx := top; idx <= bottom; idx++ {
		rows = append(rows, m.feedRowView(m.projected[idx], idx == m.cursor))
	}
	if bottom < len(m.projected)-1 {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("  ↓ %d more below", len(m.projected)-1-bottom)))
	} else if m.config.Feed.HasMore() {
		rows = append(rows, helperStyle.Render("  ↓ press j or G for more"))
	}
	return strings.Join(rows, "\n")
}

// listWindow clamps the visible slice of the projection around the cursor so
// the list never overflows the terminal.
func (m *model) listWindow() (int, int) {
	visible := m.layout.listHeight
	if visible < 3 {
		visible = 3
	}
	if visible >= len(m.projected) {
		return 0, len(m.projected) - 1
	}
	top := m.cursor - visible/2
	if top < 0 {
		top = 0
	}
	bottom := top + visible - 1
	if bottom >= len(m.projected) {
		bottom = len(m.projected) - 1
		top = bottom - visible + 1
	}
	return top, bottom
}

func (m *model) feedRowView(record conversation.Conversation, current bool) string {
	marker := "  "
	if current {
		marker = "▸ "
	}
	checkbox := "[ ]"
	if m.config.Feed.IsSelected(record.ID) {
		checkbox = "[✓]"
	}

	var flags []string
	if record.IsLive {
		flags = append(flags, liveStyle.Render("● live"))
	}
	if record.IsStarred {
		flags = append(flags, starStyle.Render("★"))
	}
	if record.IsShared {
		flags = append(flags, helperStyle.Render("⇄"))
	}
	if record.Status == conversation.StatusArchived {
		flags = append(flags, helperStyle.Render("archived"))
	}
	if record.IsTyping {
		flags = append(flags, liveStyle.Render("typing…"))
	}
	if record.UnreadCount > 0 {
		flags = append(flags, unreadStyle.Render(fmt.Sprintf(" %d ", record.UnreadCount)))
	}

	title := previewText(record.Title, 48)
	if current {
		title = currentRowStyle.Render(title)
	}

	line1 := fmt.Sprintf("%s%s %s %s", marker, checkbox, title, strings.Join(flags, " "))
	line2 := fmt.Sprintf("      %s · %s · %d msgs · %s",
		badgeStyle.Render(categoryLabel(record.Category)),
		priorityLabel(record.Priority),
		record.MessageCount,
		record.LastMessage,
	)
	return line1 + "\n" + helperStyle.Render(line2)
}

func priorityLabel(priority conversation.Priority) string {
	switch priority {
	case conversation.PriorityUrgent:
		return errorStyle.Render("urgent")
	case conversation.PriorityHigh:
		return starStyle.Render("high")
	default:
		return string(priority)
	}
}

func (m *model) feedLegendView() string {
	hints := []keyHint{
		{"↑/↓", "Move"},
		{"enter", "Open"},
		{"n", "New chat"},
		{"/", "Search"},
		{"s", "Cycle sort"},
		{"f", "Cycle filter"},
		{"space", "Select"},
		{"a/x", "All / none"},
		{"S/A/D", "Star / archive / delete"},
		{"r", "Refresh"},
		{"g/G", "Top or bottom"},
		{"q/esc", "Back"},
	}
	return renderLegend("Feed Keys", hints)
}

func (m *model) viewDetail() string {
	if m.thread == nil {
		return m.viewNotFound()
	}

	parts := []string{m.detailHeaderView()}

	if m.thread.State() == thread.StateProcessing {
		overlay := fmt.Sprintf("%s %s", m.spinner.View(), m.thread.CurrentStage())
		parts = append(parts, processingStyle.Render(overlay))
	}

	parts = append(parts, m.viewport.View())

	composer := strings.Builder{}
	composer.WriteString(m.followUpInput.View())
	composer.WriteRune('\n')
	composer.WriteString(helperStyle.Render("Enter sends, [ ] jump between answers, ↑/↓ scroll, Esc back to feed."))
	parts = append(parts, composer.String())

	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	return joinNonEmpty(parts)
}

func (m *model) detailHeaderView() string {
	record, ok := m.config.Store.GetByID(m.thread.ID())
	if !ok {
		return sectionHeaderStyle.Render("Conversation")
	}
	title := heroTitleStyle.Render(wordwrap.String(record.Title, 60))
	meta := helperStyle.Render(fmt.Sprintf("%s · %s priority · %d messages · %d participants",
		categoryLabel(record.Category), record.Priority, record.MessageCount, record.Participants))
	return lipgloss.JoinVertical(lipgloss.Left, title, meta)
}

func (m *model) viewNotFound() string {
	body := strings.Builder{}
	body.WriteString(errorStyle.Render("This conversation no longer exists."))
	body.WriteRune('\n')
	body.WriteString(helperStyle.Render("It may have been deleted or replaced by a refresh. Press Enter to return to the feed."))
	return joinNonEmpty([]string{m.heroView(), body.String()})
}

func (m *model) heroView() string {
	logo := logoStyle.Render(" threadscout ")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		logo,
		taglineStyle.Render(heroTagline),
	)
}

func renderLegend(title string, hints []keyHint) string {
	rows := []string{sectionHeaderStyle.Render(title)}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description)
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	heroAccentColor = lipgloss.Color("#7f5af0")
	heroTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	logoStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 1)
	taglineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#908caa")).Italic(true)

	statusBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	notificationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c")).Padding(0, 1)
	processingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Italic(true)

	currentRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8ecae6"))
	badgeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	liveStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	starStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166"))
	unreadStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166"))

	queryLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	answerLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))

	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 2)
)
