// Package thread materializes and grows the response thread of a single
// conversation. One controller instance backs one detail view.
package thread

import (
	"math/rand"
	"strings"
	"time"

	"github.com/csheth/threadscout/internal/conversation"
	"github.com/csheth/threadscout/internal/synth"
)

// State is the controller's lifecycle position. NotFound is terminal; the
// consuming view redirects back to the feed and disposes the controller.
type State int

const (
	StateInit State = iota
	StateNotFound
	StateReady
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateNotFound:
		return "not-found"
	case StateReady:
		return "ready"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Stages are the named thinking phases shown while a follow-up is
// processed, in display order.
var Stages = []string{
	"Analyzing your question…",
	"Searching for relevant information…",
	"Processing data sources…",
	"Generating comprehensive response…",
	"Finalizing analysis…",
}

const (
	stageBaseDelay   = 800 * time.Millisecond
	stageDelayJitter = 400 * time.Millisecond
)

// Controller owns the per-view thread state. Not safe for concurrent use;
// the event loop drives it from a single goroutine and the store carries its
// own lock for the writebacks.
type Controller struct {
	store *conversation.Store
	gen   *synth.Generator
	now   func() time.Time
	rng   *rand.Rand

	id       string
	state    State
	thread   []conversation.Response
	current  int
	stageIdx int
	pending  string

	// generation invalidates in-flight timer callbacks after Close, so a
	// disposed view never mutates state.
	generation int
}

// Option tweaks controller construction for tests.
type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// NewController binds a controller to one conversation id. Call Open to run
// the Init transition.
func NewController(store *conversation.Store, gen *synth.Generator, id string, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		gen:   gen,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		id:    id,
		state: StateInit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open looks the record up and settles the initial state: NotFound for an
// absent id, otherwise Ready. An empty thread gets exactly one response
// synthesized from the conversation's title and persisted back.
func (c *Controller) Open() State {
	record, ok := c.store.GetByID(c.id)
	if !ok {
		c.state = StateNotFound
		return c.state
	}
	if len(record.Responses) == 0 {
		first := c.gen.Response(record.Title, record.Category)
		c.thread = []conversation.Response{first}
		c.store.Update(c.id, conversation.Update{Responses: c.thread})
	} else {
		c.thread = record.Responses
	}
	c.current = len(c.thread) - 1
	c.state = StateReady
	return c.state
}

func (c *Controller) ID() string      { return c.id }
func (c *Controller) State() State    { return c.state }
func (c *Controller) Current() int    { return c.current }
func (c *Controller) Generation() int { return c.generation }

// CurrentThread returns the response thread in chronological order.
func (c *Controller) CurrentThread() []conversation.Response {
	return c.thread
}

// CurrentStage returns the display name of the active thinking phase.
func (c *Controller) CurrentStage() string {
	if c.state != StateProcessing || c.stageIdx >= len(Stages) {
		return ""
	}
	return Stages[c.stageIdx]
}

// SubmitFollowUp starts processing a follow-up query. Blank input and
// submissions while already processing are silently rejected; the returned
// bool only tells the view whether to start the stage timers.
func (c *Controller) SubmitFollowUp(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || c.state != StateReady {
		return false
	}
	c.state = StateProcessing
	c.stageIdx = 0
	c.pending = text
	return true
}

// AdvanceStage moves to the next thinking phase. It returns false once the
// final stage has been shown, at which point the view calls Finish.
func (c *Controller) AdvanceStage() bool {
	if c.state != StateProcessing {
		return false
	}
	c.stageIdx++
	return c.stageIdx < len(Stages)
}

// StageDelay picks how long the current phase is held on screen.
func (c *Controller) StageDelay() time.Duration {
	return stageBaseDelay + time.Duration(c.rng.Int63n(int64(stageDelayJitter)))
}

// Finish synthesizes the response for the pending query, appends it to the
// thread, and writes the thread plus refreshed counters back to the store.
// Existing responses are never mutated or reordered.
func (c *Controller) Finish() {
	if c.state != StateProcessing {
		return
	}
	record, ok := c.store.GetByID(c.id)
	if !ok {
		// Deleted out from under us (e.g. by a refresh); the next read
		// path reports not-found and the view navigates away.
		c.state = StateNotFound
		return
	}
	response := c.gen.Response(c.pending, record.Category)
	c.thread = append(c.thread, response)
	c.store.Update(c.id, conversation.Update{
		Responses:    c.thread,
		MessageCount: conversation.Int(len(c.thread)),
		LastMessage:  conversation.String("just now"),
		LastActivity: conversation.Int64(c.now().UnixMilli()),
		UnreadCount:  conversation.Int(0),
	})
	c.current = len(c.thread) - 1
	c.pending = ""
	c.stageIdx = 0
	c.state = StateReady
}

// Close invalidates outstanding timer callbacks. The view compares the
// generation captured when a timer was armed against Generation and drops
// stale firings.
func (c *Controller) Close() {
	c.generation++
	c.pending = ""
	if c.state == StateProcessing {
		c.state = StateReady
	}
}
