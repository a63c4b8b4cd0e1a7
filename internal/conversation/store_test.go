package conversation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore() *Store {
	return NewStore(WithClock(fixedClock(1_000_000)), WithIDSource(sequentialIDs()))
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newTestStore()

	id := store.Create(Params{})
	record, ok := store.GetByID(id)
	require.True(t, ok)

	assert.Equal(t, "New Conversation", record.Title)
	assert.Equal(t, CategoryConversational, record.Category)
	assert.Equal(t, PriorityMedium, record.Priority)
	assert.Equal(t, StatusActive, record.Status)
	assert.True(t, record.IsLive)
	assert.Equal(t, 1, record.MessageCount)
	assert.Equal(t, 1, record.Participants)
	assert.Equal(t, 0, record.UnreadCount)
	assert.Equal(t, "just now", record.LastMessage)
	assert.Equal(t, int64(1_000_000), record.Timestamp)
	assert.Equal(t, record.Timestamp, record.LastActivity)
	assert.Equal(t, SentimentNeutral, record.Sentiment)
	assert.Empty(t, record.Responses)
}

func TestCreateInsertsAtFrontAndSetsActive(t *testing.T) {
	store := newTestStore()

	first := store.Create(Params{Title: "first"})
	second := store.Create(Params{Title: "second"})

	all := store.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)

	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, second, active)
}

func TestCreateIDsAreUnique(t *testing.T) {
	store := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := store.Create(Params{Title: "x"})
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestInsertAppendsAtBack(t *testing.T) {
	store := newTestStore()
	front := store.Create(Params{Title: "front"})

	store.Insert(Conversation{ID: "batch-1"}, Conversation{ID: "batch-2"})

	all := store.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, front, all[0].ID)
	assert.Equal(t, "batch-1", all[1].ID)
	assert.Equal(t, "batch-2", all[2].ID)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	store := newTestStore()
	id := store.Create(Params{Title: "original"})

	store.Update(id, Update{
		IsStarred:   Bool(true),
		UnreadCount: Int(3),
	})

	record, ok := store.GetByID(id)
	require.True(t, ok)
	assert.Equal(t, "original", record.Title)
	assert.True(t, record.IsStarred)
	assert.Equal(t, 3, record.UnreadCount)
	assert.Equal(t, StatusActive, record.Status)
}

func TestUpdateClampsNegativeUnread(t *testing.T) {
	store := newTestStore()
	id := store.Create(Params{})

	store.Update(id, Update{UnreadCount: Int(-5)})

	record, _ := store.GetByID(id)
	assert.Equal(t, 0, record.UnreadCount)
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	store := newTestStore()
	store.Create(Params{Title: "keep"})

	store.Update("nope", Update{Title: String("changed")})

	all := store.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].Title)
}

func TestDeleteRemovesAndClearsActive(t *testing.T) {
	store := newTestStore()
	keep := store.Create(Params{Title: "keep"})
	gone := store.Create(Params{Title: "gone"})

	store.Delete(gone)

	_, ok := store.GetByID(gone)
	assert.False(t, ok)
	_, ok = store.GetByID(keep)
	assert.True(t, ok)

	_, ok = store.Active()
	assert.False(t, ok, "active should clear when the active record is deleted")

	// Deleting a non-active record leaves the pointer alone.
	store.SetActive(keep)
	store.Delete("missing")
	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, keep, active)
}

func TestReplaceAllSwapsCollection(t *testing.T) {
	store := newTestStore()
	store.Create(Params{Title: "old"})

	store.ReplaceAll([]Conversation{{ID: "n1"}, {ID: "n2"}})

	all := store.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "n1", all[0].ID)
}

func TestSnapshotsAreDetached(t *testing.T) {
	store := newTestStore()
	id := store.Create(Params{Title: "snap"})
	store.Update(id, Update{Responses: []Response{{ID: "r1", Query: "q"}}})

	snapshot, ok := store.GetByID(id)
	require.True(t, ok)
	snapshot.Responses[0].Query = "mutated"
	snapshot.Title = "mutated"

	fresh, _ := store.GetByID(id)
	assert.Equal(t, "snap", fresh.Title)
	assert.Equal(t, "q", fresh.Responses[0].Query)
}

func TestSetActiveUnknownIDClears(t *testing.T) {
	store := newTestStore()
	store.Create(Params{})

	store.SetActive("unknown")

	_, ok := store.Active()
	assert.False(t, ok)
}
