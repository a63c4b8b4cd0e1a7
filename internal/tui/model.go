package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/threadscout/internal/config"
	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/feed"
	"github.com/csheth/threadscout/internal/synth"
	"github.com/csheth/threadscout/internal/thread"
)

// Config wires the shared state and controllers into the TUI program.
type Config struct {
	App   *config.Config
	Store *conversation.Store
	Feed  *feed.Controller
	Gen   *synth.Generator
}

// New returns a tea.Model ready to be mounted into a Program.
func New(cfg Config) tea.Model {
	askInput := textinput.New()
	askInput.Placeholder = "Ask anything…"
	askInput.Focus()
	askInput.CharLimit = 200
	askInput.Width = 70

	searchInput := textinput.New()
	searchInput.Placeholder = "Search conversations, categories, or keywords…"
	searchInput.CharLimit = 120
	searchInput.Width = 60

	followUpInput := textinput.New()
	followUpInput.Placeholder = "Ask a follow-up question…"
	followUpInput.CharLimit = 200
	followUpInput.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		config:        cfg,
		stage:         stageLanding,
		askInput:      askInput,
		searchInput:   searchInput,
		followUpInput: followUpInput,
		spinner:       spin,
		viewport:      vp,
		layout:        newPageLayout(),
		jobs:          newJobBus(),
		infoMessage:   "Press Enter to ask, Tab to browse your history.",
	}
}

type model struct {
	config Config
	stage  stage

	askInput      textinput.Model
	searchInput   textinput.Model
	followUpInput textinput.Model
	spinner       spinner.Model
	viewport      viewport.Model
	layout        pageLayout
	jobs          *jobBus

	projected   []conversation.Conversation
	cursor      int
	searching   bool
	tickerArmed bool

	notification *activeNotification
	noteSeq      int

	thread  *thread.Controller
	anchors []int

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		return m, m.spinner.Tick
	case jobResultEnvelope:
		if msg.Snapshot.Status == jobStatusFailed {
			m.errorMessage = msg.Snapshot.Err
			return m, nil
		}
		return m.handlePayload(msg.Payload)
	case liveTickMsg:
		return m.handleLiveTick()
	case notificationExpiredMsg:
		if m.notification != nil && m.notification.seq == msg.seq {
			m.notification = nil
		}
		return m, nil
	case stageTickMsg:
		return m.handleStageTick(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		if m.thread != nil {
			m.refreshThreadView(false)
		}
		return m, nil
	case tea.MouseMsg:
		if m.stage == stageDetail {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.stage {
		case stageLanding:
			return m.handleLandingKey(msg)
		case stageFeed:
			return m.handleFeedKey(msg)
		case stageDetail:
			return m.handleDetailKey(msg)
		case stageNotFound:
			return m.handleNotFoundKey(msg)
		}
	}
	return m, nil
}

func (m *model) handlePayload(payload tea.Msg) (tea.Model, tea.Cmd) {
	switch payload := payload.(type) {
	case batchLoadedMsg:
		m.config.Feed.CompleteLoadMore(payload.count)
		m.reproject()
		if !m.config.Feed.HasMore() {
			m.infoMessage = "You've reached the end of your chat history."
		}
		return m, nil
	case refreshDoneMsg:
		m.config.Feed.CompleteRefresh()
		m.reproject()
		m.cursor = 0
		m.infoMessage = "Conversations refreshed."
		return m, nil
	}
	return m, nil
}

func (m *model) handleLiveTick() (tea.Model, tea.Cmd) {
	if m.stage != stageFeed {
		// Leaving the feed parks the ticker; entering re-arms it.
		m.tickerArmed = false
		return m, nil
	}
	note := m.config.Feed.Tick()
	m.reproject()
	cmds := []tea.Cmd{liveTickCmd(m.config.Feed.TickInterval())}
	if note != nil {
		m.noteSeq++
		m.notification = &activeNotification{note: *note, seq: m.noteSeq}
		cmds = append(cmds, expireNotificationCmd(m.config.App.NotificationTTL, m.noteSeq))
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleStageTick(msg stageTickMsg) (tea.Model, tea.Cmd) {
	if m.thread == nil || msg.generation != m.thread.Generation() {
		return m, nil
	}
	if m.thread.State() != thread.StateProcessing {
		return m, nil
	}
	if m.thread.AdvanceStage() {
		return m, stageTickCmd(m.thread.StageDelay(), m.thread.Generation())
	}
	m.thread.Finish()
	m.reproject()
	m.refreshThreadView(true)
	m.infoMessage = "Answer ready. Ask another follow-up below."
	return m, nil
}

func (m *model) handleLandingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		return m, m.enterFeed()
	case tea.KeyEnter:
		query := strings.TrimSpace(m.askInput.Value())
		if query == "" {
			m.infoMessage = "Type a question to start a conversation."
			return m, nil
		}
		m.askInput.SetValue("")
		id := m.config.Store.Create(conversation.Params{Title: query})
		return m, m.openDetail(id)
	}
	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(key)
	return m, cmd
}

func (m *model) handleFeedKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch key.Type {
		case tea.KeyEsc:
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.config.Feed.SetSearchText("")
			m.reproject()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(key)
		m.config.Feed.SetSearchText(m.searchInput.Value())
		m.reproject()
		return m, cmd
	}

	if key.Type == tea.KeyEsc {
		m.stage = stageLanding
		m.askInput.Focus()
		return m, textinput.Blink
	}
	if key.Type == tea.KeyEnter {
		if record, ok := m.recordAtCursor(); ok {
			return m, m.openDetail(record.ID)
		}
		return m, nil
	}

	switch key.String() {
	case "q":
		m.stage = stageLanding
		m.askInput.Focus()
		return m, textinput.Blink
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projected)-1 {
			m.cursor++
		} else {
			return m, m.triggerLoadMore()
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(m.projected) > 0 {
			m.cursor = len(m.projected) - 1
		}
		return m, m.triggerLoadMore()
	case " ":
		if record, ok := m.recordAtCursor(); ok {
			m.config.Feed.ToggleSelection(record.ID)
		}
	case "a":
		m.config.Feed.SelectAll()
		m.infoMessage = fmt.Sprintf("Selected %d conversations.", m.config.Feed.SelectedCount())
	case "x":
		m.config.Feed.ClearSelection()
	case "D":
		return m, m.runBulk(feed.BulkDelete, "Deleted selected conversations.")
	case "A":
		return m, m.runBulk(feed.BulkArchive, "Archived selected conversations.")
	case "S":
		return m, m.runBulk(feed.BulkStar, "Toggled stars on selected conversations.")
	case "d":
		if record, ok := m.recordAtCursor(); ok {
			m.config.Store.Delete(record.ID)
			m.reproject()
			m.infoMessage = fmt.Sprintf("Deleted %q.", record.Title)
		}
	case "s":
		mode := m.config.Feed.CycleSortMode()
		m.reproject()
		m.infoMessage = fmt.Sprintf("Sorting by %s.", mode)
	case "f":
		mode := m.config.Feed.CycleFilterMode()
		m.reproject()
		m.infoMessage = fmt.Sprintf("Filtering %s conversations.", mode)
	case "n":
		id := m.config.Feed.NewChat()
		return m, m.openDetail(id)
	case "r":
		if m.config.Feed.BeginRefresh() {
			runner := sleepRunner(m.config.Feed.LoadDelay(), refreshDoneMsg{})
			return m, m.jobs.Start(jobKindRefresh, runner)
		}
	}
	return m, nil
}

func (m *model) handleDetailKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		return m, m.closeDetail()
	case tea.KeyEnter:
		return m.submitFollowUp()
	}

	switch key.String() {
	case "up", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	case "[":
		m.jumpToResponse(-1)
		return m, nil
	case "]":
		m.jumpToResponse(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.followUpInput, cmd = m.followUpInput.Update(key)
	return m, cmd
}

func (m *model) handleNotFoundKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc, tea.KeyEnter:
		return m, m.enterFeed()
	}
	return m, nil
}

func (m *model) submitFollowUp() (tea.Model, tea.Cmd) {
	if m.thread == nil {
		return m, nil
	}
	text := m.followUpInput.Value()
	if !m.thread.SubmitFollowUp(text) {
		if strings.TrimSpace(text) == "" {
			m.infoMessage = "Type a follow-up question first."
		}
		return m, nil
	}
	m.followUpInput.SetValue("")
	m.viewport.GotoBottom()
	return m, tea.Batch(
		m.spinner.Tick,
		stageTickCmd(m.thread.StageDelay(), m.thread.Generation()),
	)
}

func (m *model) openDetail(id string) tea.Cmd {
	controller := thread.NewController(m.config.Store, m.config.Gen, id)
	if controller.Open() == thread.StateNotFound {
		m.stage = stageNotFound
		m.thread = nil
		return nil
	}
	m.thread = controller
	m.stage = stageDetail
	m.reproject()
	m.refreshThreadView(true)
	m.followUpInput.Focus()
	m.infoMessage = "Enter sends a follow-up, Esc returns to the feed."
	return textinput.Blink
}

func (m *model) closeDetail() tea.Cmd {
	if m.thread != nil {
		m.thread.Close()
		m.thread = nil
	}
	m.followUpInput.Blur()
	m.followUpInput.SetValue("")
	return m.enterFeed()
}

func (m *model) enterFeed() tea.Cmd {
	m.stage = stageFeed
	m.reproject()
	var cmds []tea.Cmd
	if !m.tickerArmed {
		m.tickerArmed = true
		cmds = append(cmds, liveTickCmd(m.config.Feed.TickInterval()))
	}
	if m.config.Feed.NeedsBootstrap() && m.config.Feed.BeginLoadMore() {
		runner := sleepRunner(m.config.Feed.LoadDelay(), batchLoadedMsg{count: m.config.App.InitialBatch})
		cmds = append(cmds, m.jobs.Start(jobKindBootstrap, runner))
	}
	return tea.Batch(cmds...)
}

func (m *model) triggerLoadMore() tea.Cmd {
	if !m.config.Feed.BeginLoadMore() {
		return nil
	}
	runner := sleepRunner(m.config.Feed.LoadDelay(), batchLoadedMsg{count: m.config.App.PageSize})
	return m.jobs.Start(jobKindLoadMore, runner)
}

func (m *model) runBulk(action feed.BulkAction, message string) tea.Cmd {
	if m.config.Feed.SelectedCount() == 0 {
		m.infoMessage = "Select conversations with Space first."
		return nil
	}
	m.config.Feed.Bulk(action)
	m.reproject()
	m.infoMessage = message
	return nil
}

func (m *model) reproject() {
	m.projected = m.config.Feed.Project()
	if m.cursor >= len(m.projected) {
		m.cursor = len(m.projected) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) recordAtCursor() (conversation.Conversation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projected) {
		return conversation.Conversation{}, false
	}
	return m.projected[m.cursor], true
}

func (m *model) jumpToResponse(delta int) {
	if len(m.anchors) == 0 {
		return
	}
	offset := m.viewport.YOffset
	if delta > 0 {
		for _, line := range m.anchors {
			if line > offset {
				m.viewport.SetYOffset(line)
				return
			}
		}
		m.viewport.GotoBottom()
		return
	}
	for i := len(m.anchors) - 1; i >= 0; i-- {
		if m.anchors[i] < offset {
			m.viewport.SetYOffset(m.anchors[i])
			return
		}
	}
	m.viewport.SetYOffset(0)
}

func (m *model) refreshThreadView(gotoBottom bool) {
	if m.thread == nil {
		return
	}
	content, anchors := m.buildThreadContent()
	m.viewport.SetContent(content)
	m.anchors = anchors
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

func (m *model) busy() bool {
	if m.config.Feed.Loading() {
		return true
	}
	return m.thread != nil && m.thread.State() == thread.StateProcessing
}
