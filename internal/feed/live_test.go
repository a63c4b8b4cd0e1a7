package feed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/synth"
)

func TestTickNeverRegressesRecords(t *testing.T) {
	controller, store := newTestController()
	seed(store,
		conversation.Conversation{ID: "a", Timestamp: 111, LastActivity: 500, UnreadCount: 4},
		conversation.Conversation{ID: "b", Timestamp: 222, LastActivity: 900, UnreadCount: 0},
	)
	before := map[string]conversation.Conversation{}
	for _, record := range store.GetAll() {
		before[record.ID] = record
	}

	for i := 0; i < 200; i++ {
		controller.Tick()
		for _, record := range store.GetAll() {
			prev, existed := before[record.ID]
			if !existed {
				// Injected by the ticker; start tracking it.
				before[record.ID] = record
				continue
			}
			assert.Equal(t, prev.Timestamp, record.Timestamp, "creation timestamp must never move")
			assert.GreaterOrEqual(t, record.LastActivity, prev.LastActivity, "activity only nudges forward")
			assert.LessOrEqual(t, record.UnreadCount, prev.UnreadCount, "unread only decays")
			assert.GreaterOrEqual(t, record.UnreadCount, 0)
			before[record.ID] = record
		}
	}
}

func TestTickEventuallyInjectsConversation(t *testing.T) {
	controller, store := newTestController()
	initial := store.Len()

	var note *Notification
	for i := 0; i < 1000 && note == nil; i++ {
		note = controller.Tick()
	}

	require.NotNil(t, note, "a new conversation should land within 1000 ticks")
	assert.NotEmpty(t, note.Title)
	assert.Greater(t, store.Len(), initial)

	// The injected record carries fresh-conversation defaults.
	all := store.GetAll()
	injected := all[0]
	assert.Equal(t, note.Title, injected.Title)
	assert.Equal(t, conversation.StatusActive, injected.Status)
	assert.Equal(t, 1, injected.MessageCount)
}

func TestTickUnreadDecaysToZeroOverTime(t *testing.T) {
	controller, store := newTestController()
	seed(store, conversation.Conversation{ID: "a", UnreadCount: 3})

	for i := 0; i < 5000; i++ {
		controller.Tick()
	}

	record, ok := store.GetByID("a")
	require.True(t, ok)
	assert.Zero(t, record.UnreadCount, "decay-only unread should reach zero eventually")
}

func TestTickIntervalComesFromConfig(t *testing.T) {
	store := conversation.NewStore()
	gen := synth.NewGenerator(nil, rand.New(rand.NewSource(1)))
	cfg := testConfig()
	cfg.TickInterval = 42 * time.Second
	controller := NewController(store, gen, cfg, rand.New(rand.NewSource(1)))

	assert.Equal(t, 42*time.Second, controller.TickInterval())
}
