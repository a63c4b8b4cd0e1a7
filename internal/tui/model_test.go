package tui

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/threadscout/internal/config"
	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/feed"
	"github.com/csheth/threadscout/internal/synth"
	"github.com/csheth/threadscout/internal/thread"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	appCfg := &config.Config{
		PageSize:         3,
		InitialBatch:     5,
		MaxConversations: 10,
		TickInterval:     time.Hour,
		MinLoadDelay:     time.Millisecond,
		MaxLoadDelay:     2 * time.Millisecond,
		NotificationTTL:  time.Second,
	}
	now := func() time.Time { return time.UnixMilli(1_000_000) }
	store := conversation.NewStore(conversation.WithClock(now))
	gen := synth.NewGenerator(now, rand.New(rand.NewSource(1)))
	controller := feed.NewController(store, gen, feed.Config{
		PageSize:         appCfg.PageSize,
		InitialBatch:     appCfg.InitialBatch,
		MaxConversations: appCfg.MaxConversations,
		MinLoadDelay:     appCfg.MinLoadDelay,
		MaxLoadDelay:     appCfg.MaxLoadDelay,
		TickInterval:     appCfg.TickInterval,
	}, rand.New(rand.NewSource(2)))

	m, ok := New(Config{App: appCfg, Store: store, Feed: controller, Gen: gen}).(*model)
	if !ok {
		t.Fatalf("New did not return *model")
	}
	return m
}

func press(m *model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func pressRune(m *model, r rune) tea.Cmd {
	return press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func typeText(m *model, text string) {
	for _, r := range text {
		pressRune(m, r)
	}
}

func finishLoad(m *model, count int) {
	m.Update(jobResultEnvelope{
		Snapshot: jobSnapshot{Status: jobStatusSucceeded},
		Payload:  batchLoadedMsg{count: count},
	})
}

func enterLoadedFeed(t *testing.T, m *model) {
	t.Helper()
	if cmd := press(m, tea.KeyMsg{Type: tea.KeyTab}); cmd == nil {
		t.Fatalf("entering the feed should schedule the bootstrap")
	}
	if !m.config.Feed.Loading() {
		t.Fatalf("bootstrap load should be in flight")
	}
	finishLoad(m, m.config.App.InitialBatch)
}

func TestTabEntersFeedAndBootstraps(t *testing.T) {
	m := newTestModel(t)

	enterLoadedFeed(t, m)

	if m.stage != stageFeed {
		t.Fatalf("stage = %v, want feed", m.stage)
	}
	if got := m.config.Store.Len(); got != 5 {
		t.Fatalf("store has %d records after bootstrap, want 5", got)
	}
	if len(m.projected) != 5 {
		t.Fatalf("projection has %d records, want 5", len(m.projected))
	}
	if m.config.Feed.Loading() {
		t.Fatalf("loading flag should clear after the batch lands")
	}
}

func TestLandingEnterOpensDetailWithFirstResponse(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "why is the build slow")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.stage != stageDetail {
		t.Fatalf("stage = %v, want detail", m.stage)
	}
	if m.thread == nil {
		t.Fatalf("detail controller missing")
	}
	responses := m.thread.CurrentThread()
	if len(responses) != 1 {
		t.Fatalf("thread has %d responses, want 1", len(responses))
	}
	if responses[0].Query != "why is the build slow" {
		t.Fatalf("first response query = %q", responses[0].Query)
	}
	if m.config.Store.Len() != 1 {
		t.Fatalf("store should hold the created conversation")
	}
}

func TestLandingEnterIgnoresBlankQuery(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.stage != stageLanding {
		t.Fatalf("blank query must not leave the landing stage")
	}
	if m.config.Store.Len() != 0 {
		t.Fatalf("blank query must not create a conversation")
	}
}

func TestFeedCursorMovesAndOpensDetail(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)

	pressRune(m, 'j')
	pressRune(m, 'j')
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	pressRune(m, 'k')
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	want := m.projected[1].ID
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageDetail {
		t.Fatalf("enter should open the detail stage")
	}
	if m.thread.ID() != want {
		t.Fatalf("opened %s, want %s", m.thread.ID(), want)
	}
}

func TestSearchNarrowsProjectionLive(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)

	target := m.projected[0].Title
	pressRune(m, '/')
	if !m.searching {
		t.Fatalf("slash should enter search mode")
	}
	typeText(m, target)

	for _, record := range m.projected {
		if record.Title != target {
			t.Fatalf("projection still contains %q after searching %q", record.Title, target)
		}
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching {
		t.Fatalf("esc should leave search mode")
	}
	if m.config.Feed.SearchText() != "" {
		t.Fatalf("esc should clear the search text")
	}
	if len(m.projected) != 5 {
		t.Fatalf("projection should be restored, got %d", len(m.projected))
	}
}

func TestSortAndFilterCycleKeys(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)

	pressRune(m, 's')
	if m.config.Feed.SortMode() != feed.SortAlphabetical {
		t.Fatalf("sort mode = %s, want alphabetical", m.config.Feed.SortMode())
	}
	pressRune(m, 'f')
	if m.config.Feed.FilterMode() != feed.FilterStarred {
		t.Fatalf("filter mode = %s, want starred", m.config.Feed.FilterMode())
	}
}

func TestSelectionAndBulkDeleteKeys(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)
	total := len(m.projected)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	pressRune(m, 'j')
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.config.Feed.SelectedCount() != 2 {
		t.Fatalf("selected %d, want 2", m.config.Feed.SelectedCount())
	}

	pressRune(m, 'D')
	if m.config.Store.Len() != total-2 {
		t.Fatalf("store has %d records after bulk delete, want %d", m.config.Store.Len(), total-2)
	}
	if m.config.Feed.SelectedCount() != 0 {
		t.Fatalf("selection should clear after a bulk action")
	}
}

func TestBottomKeyTriggersLoadMore(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)

	cmd := pressRune(m, 'G')
	if cmd == nil {
		t.Fatalf("G at the bottom should schedule a load")
	}
	if !m.config.Feed.Loading() {
		t.Fatalf("load-more should be in flight")
	}
	finishLoad(m, m.config.App.PageSize)
	if got := m.config.Store.Len(); got != 8 {
		t.Fatalf("store has %d records, want 8", got)
	}
}

func TestFollowUpDrivesStageTimersToCompletion(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "first question")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	typeText(m, "and a follow-up")
	if cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("submitting a follow-up should arm the stage timer")
	}
	if m.thread.State() != thread.StateProcessing {
		t.Fatalf("state = %v, want processing", m.thread.State())
	}

	generation := m.thread.Generation()
	for i := 0; i < len(thread.Stages); i++ {
		m.Update(stageTickMsg{generation: generation})
	}

	if m.thread.State() != thread.StateReady {
		t.Fatalf("state = %v after all stages, want ready", m.thread.State())
	}
	if got := len(m.thread.CurrentThread()); got != 2 {
		t.Fatalf("thread has %d responses, want 2", got)
	}

	record, ok := m.config.Store.GetByID(m.thread.ID())
	if !ok {
		t.Fatalf("conversation vanished")
	}
	if record.MessageCount != 2 || record.UnreadCount != 0 {
		t.Fatalf("writeback counters = (%d, %d), want (2, 0)", record.MessageCount, record.UnreadCount)
	}
}

func TestBlankFollowUpIsNoOp(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "first question")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.thread.State() != thread.StateReady {
		t.Fatalf("blank follow-up should leave the thread ready")
	}
	if got := len(m.thread.CurrentThread()); got != 1 {
		t.Fatalf("thread has %d responses, want 1", got)
	}
}

func TestEscFromDetailInvalidatesStageTimers(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "first question")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "follow-up")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := m.thread.Generation()
	id := m.thread.ID()

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stageFeed {
		t.Fatalf("esc should return to the feed")
	}

	// The stale timer fires after the view closed; nothing must change.
	m.Update(stageTickMsg{generation: stale})
	record, ok := m.config.Store.GetByID(id)
	if !ok {
		t.Fatalf("conversation vanished")
	}
	if len(record.Responses) != 1 {
		t.Fatalf("stale timer appended a response")
	}
}

func TestDetailOnMissingIDShowsNotFound(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)
	id := m.projected[0].ID
	m.config.Store.Delete(id)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.stage != stageNotFound {
		t.Fatalf("stage = %v, want notFound", m.stage)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageFeed {
		t.Fatalf("enter should return to the feed from notFound")
	}
}

func TestLiveTickReArmsOnlyInFeed(t *testing.T) {
	m := newTestModel(t)
	enterLoadedFeed(t, m)

	if _, cmd := m.Update(liveTickMsg{}); cmd == nil {
		t.Fatalf("tick in the feed should re-arm the timer")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stageLanding {
		t.Fatalf("esc should return to landing")
	}
	if _, cmd := m.Update(liveTickMsg{}); cmd != nil {
		t.Fatalf("tick outside the feed must park the timer")
	}
	if m.tickerArmed {
		t.Fatalf("ticker should be marked parked")
	}
}

func TestNotificationExpiryMatchesSequence(t *testing.T) {
	m := newTestModel(t)
	m.noteSeq = 2
	m.notification = &activeNotification{note: feed.Notification{Title: "x"}, seq: 2}

	m.Update(notificationExpiredMsg{seq: 1})
	if m.notification == nil {
		t.Fatalf("stale expiry must not clear a newer notification")
	}

	m.Update(notificationExpiredMsg{seq: 2})
	if m.notification != nil {
		t.Fatalf("matching expiry should clear the notification")
	}
}
