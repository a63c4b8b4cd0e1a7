package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the single source of truth for the conversation collection. It
// keeps records most-recent-first plus the id of the "active" conversation.
// Every read hands out a consistent snapshot; all mutation happens under the
// lock so controllers on different goroutines never observe partial writes.
type Store struct {
	mu      sync.RWMutex
	records []Conversation
	active  string

	now   func() time.Time
	newID func() string
}

// Option tweaks store construction, mainly so tests can pin the clock and
// the id sequence.
type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore returns an empty store. Ids come from uuid; they are never reused
// within the store's lifetime, deletes included.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create builds a record from params plus defaults, inserts it at the front
// of the collection, marks it active, and returns its id. It cannot fail.
func (s *Store) Create(params Params) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	record := Conversation{
		ID:           s.newID(),
		Title:        params.Title,
		Category:     params.Category,
		Priority:     params.Priority,
		Status:       StatusActive,
		IsLive:       true,
		Timestamp:    now,
		LastActivity: now,
		LastMessage:  "just now",
		MessageCount: 1,
		Participants: 1,
		Sentiment:    SentimentNeutral,
	}
	if record.Title == "" {
		record.Title = "New Conversation"
	}
	if record.Category == "" {
		record.Category = CategoryConversational
	}
	if record.Priority == "" {
		record.Priority = PriorityMedium
	}

	s.records = append([]Conversation{record}, s.records...)
	s.active = record.ID
	return record.ID
}

// Insert appends already-built records at the back of the collection. Used
// for pagination batches, which extend history rather than push new activity.
func (s *Store) Insert(records ...Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Update shallow-merges the partial into the matching record. A missing id
// is a no-op, not an error, so a delete racing an update never throws.
func (s *Store) Update(id string, update Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			update.apply(&s.records[i])
			return
		}
	}
}

// Delete removes the matching record and clears the active pointer if it
// referenced that record. Missing ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			if s.active == id {
				s.active = ""
			}
			return
		}
	}
}

// ReplaceAll swaps in a whole new collection. Consumers holding pagination
// state must reset it themselves afterwards.
func (s *Store) ReplaceAll(records []Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Conversation(nil), records...)
}

// GetAll returns an ordered snapshot of the collection.
func (s *Store) GetAll() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Conversation, len(s.records))
	for i, record := range s.records {
		out[i] = record.clone()
	}
	return out
}

// GetByID returns a snapshot of one record, or false when absent.
func (s *Store) GetByID(id string) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.ID == id {
			return record.clone(), true
		}
	}
	return Conversation{}, false
}

// Active returns the active conversation id, or false when none is set.
func (s *Store) Active() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return "", false
	}
	return s.active, true
}

// SetActive points the active marker at id. Unknown ids clear it.
func (s *Store) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.ID == id {
			s.active = id
			return
		}
	}
	s.active = ""
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
