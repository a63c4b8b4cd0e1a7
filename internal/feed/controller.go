// Package feed derives the display-ready projection of the conversation
// collection (search, filter, sort, selection) and drives the pagination and
// simulated live activity that keep the collection moving.
package feed

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/synth"
)

type SortMode string

const (
	SortRecent       SortMode = "recent"
	SortAlphabetical SortMode = "alphabetical"
	SortPriority     SortMode = "priority"
	SortMessages     SortMode = "messages"
)

var sortModes = []SortMode{SortRecent, SortAlphabetical, SortPriority, SortMessages}

type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterStarred FilterMode = "starred"
	FilterShared  FilterMode = "shared"
	FilterLive    FilterMode = "live"
	FilterUnread  FilterMode = "unread"
)

var filterModes = []FilterMode{FilterAll, FilterStarred, FilterShared, FilterLive, FilterUnread}

type BulkAction string

const (
	BulkDelete  BulkAction = "delete"
	BulkArchive BulkAction = "archive"
	BulkStar    BulkAction = "star"
)

// Config tunes pagination and the live-activity simulation.
type Config struct {
	PageSize         int
	InitialBatch     int
	MaxConversations int
	MinLoadDelay     time.Duration
	MaxLoadDelay     time.Duration
	TickInterval     time.Duration
}

// Notification describes a ticker-injected conversation; the view shows it
// transiently and lets it expire.
type Notification struct {
	Title    string
	Category conversation.Category
}

// Controller holds one view's session state over the shared store: search
// text, sort and filter modes, the selection set, and the pagination cursor.
type Controller struct {
	store *conversation.Store
	gen   *synth.Generator
	cfg   Config

	rng      *rand.Rand
	collator *collate.Collator

	searchText string
	sortMode   SortMode
	filterMode FilterMode
	selected   map[string]struct{}
	hasMore    bool
	loading    bool
}

// NewController wires a feed controller. A nil rng falls back to a
// time-seeded source.
func NewController(store *conversation.Store, gen *synth.Generator, cfg Config, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		store:      store,
		gen:        gen,
		cfg:        cfg,
		rng:        rng,
		collator:   collate.New(language.English, collate.IgnoreCase),
		sortMode:   SortRecent,
		filterMode: FilterAll,
		selected:   map[string]struct{}{},
		hasMore:    true,
	}
}

func (c *Controller) SearchText() string     { return c.searchText }
func (c *Controller) SortMode() SortMode     { return c.sortMode }
func (c *Controller) FilterMode() FilterMode { return c.filterMode }
func (c *Controller) HasMore() bool          { return c.hasMore }
func (c *Controller) Loading() bool          { return c.loading }

func (c *Controller) SetSearchText(text string)     { c.searchText = text }
func (c *Controller) SetSortMode(mode SortMode)     { c.sortMode = mode }
func (c *Controller) SetFilterMode(mode FilterMode) { c.filterMode = mode }

// CycleSortMode advances to the next sort mode and returns it.
func (c *Controller) CycleSortMode() SortMode {
	c.sortMode = cycle(sortModes, c.sortMode)
	return c.sortMode
}

// CycleFilterMode advances to the next filter mode and returns it.
func (c *Controller) CycleFilterMode() FilterMode {
	c.filterMode = cycle(filterModes, c.filterMode)
	return c.filterMode
}

func cycle[T comparable](modes []T, current T) T {
	for i, mode := range modes {
		if mode == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Project returns the filtered, sorted view of the collection. It never
// truncates; pagination happens through the store's growth, not here.
func (c *Controller) Project() []conversation.Conversation {
	needle := strings.ToLower(strings.TrimSpace(c.searchText))

	var out []conversation.Conversation
	for _, record := range c.store.GetAll() {
		if needle != "" {
			title := strings.ToLower(record.Title)
			category := strings.ToLower(string(record.Category))
			if !strings.Contains(title, needle) && !strings.Contains(category, needle) {
				continue
			}
		}
		if !c.matchesFilter(record) {
			continue
		}
		out = append(out, record)
	}

	// Stable keeps insertion order for records tied on the active key.
	switch c.sortMode {
	case SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			return c.collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case SortMessages:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MessageCount > out[j].MessageCount
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastActivity > out[j].LastActivity
		})
	}
	return out
}

func (c *Controller) matchesFilter(record conversation.Conversation) bool {
	switch c.filterMode {
	case FilterStarred:
		return record.IsStarred
	case FilterShared:
		return record.IsShared
	case FilterLive:
		return record.IsLive
	case FilterUnread:
		return record.UnreadCount > 0
	default:
		return true
	}
}

// NeedsBootstrap reports whether the collection is empty and the initial
// batch should be loaded. An emptied collection counts even after the
// ceiling was reached; deleting everything restarts pagination.
func (c *Controller) NeedsBootstrap() bool {
	return c.store.Len() == 0 && !c.loading
}

// BeginLoadMore flips into the loading state. Returns false when a load is
// already running or the ceiling was reached, so repeat triggers are
// suppressed.
func (c *Controller) BeginLoadMore() bool {
	if c.loading {
		return false
	}
	if !c.hasMore {
		if c.store.Len() > 0 {
			return false
		}
		c.hasMore = true
	}
	c.loading = true
	return true
}

// CompleteLoadMore appends one batch to the store and settles hasMore
// against the ceiling. Call after the simulated latency elapses.
func (c *Controller) CompleteLoadMore(count int) {
	c.store.Insert(c.gen.Batch(count)...)
	c.loading = false
	c.hasMore = c.store.Len() < c.cfg.MaxConversations
}

// LoadDelay picks the simulated latency for one load.
func (c *Controller) LoadDelay() time.Duration {
	spread := c.cfg.MaxLoadDelay - c.cfg.MinLoadDelay
	if spread <= 0 {
		return c.cfg.MinLoadDelay
	}
	return c.cfg.MinLoadDelay + time.Duration(c.rng.Int63n(int64(spread)))
}

// BeginRefresh starts the destructive reload. Same suppression rules as
// BeginLoadMore, except a refresh also runs when hasMore is exhausted.
func (c *Controller) BeginRefresh() bool {
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

// CompleteRefresh discards the collection and replaces it with a fresh
// batch. Pagination and selection state are reset here, per the replaceAll
// contract; detail views pointed at removed ids will observe not-found.
func (c *Controller) CompleteRefresh() {
	c.store.ReplaceAll(c.gen.Batch(c.cfg.InitialBatch))
	c.loading = false
	c.hasMore = c.store.Len() < c.cfg.MaxConversations
	c.selected = map[string]struct{}{}
}

// NewChat creates a user-initiated conversation and returns its id.
func (c *Controller) NewChat() string {
	return c.store.Create(conversation.Params{
		Title:    "New Chat Session",
		Category: conversation.CategoryConversational,
		Priority: conversation.PriorityMedium,
	})
}

// ToggleSelection flips one record in or out of the selection set.
func (c *Controller) ToggleSelection(id string) {
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	c.selected[id] = struct{}{}
}

// SelectAll replaces the selection with every id in the current projection.
// Ids selected earlier but excluded by the active filter do not survive.
func (c *Controller) SelectAll() {
	selected := make(map[string]struct{})
	for _, record := range c.Project() {
		selected[record.ID] = struct{}{}
	}
	c.selected = selected
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.selected = map[string]struct{}{}
}

func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

func (c *Controller) SelectedCount() int { return len(c.selected) }

// Bulk applies one action to every selected record, then clears the
// selection. Star toggles, archive overwrites status, delete removes.
func (c *Controller) Bulk(action BulkAction) {
	for id := range c.selected {
		switch action {
		case BulkDelete:
			c.store.Delete(id)
		case BulkArchive:
			c.store.Update(id, conversation.Update{Status: conversation.Stat(conversation.StatusArchived)})
		case BulkStar:
			if record, ok := c.store.GetByID(id); ok {
				c.store.Update(id, conversation.Update{IsStarred: conversation.Bool(!record.IsStarred)})
			}
		}
	}
	c.ClearSelection()
}
