package conversation

// Category labels the template family a conversation belongs to. Unknown
// labels are tolerated everywhere; generators fall back to the
// conversational template.
type Category string

const (
	CategoryAnalysis       Category = "analysis"
	CategoryTechnical      Category = "technical"
	CategoryConversational Category = "conversational"
	CategoryMarketData     Category = "market-data"
	CategoryDocumentation  Category = "documentation"
	CategoryResearch       Category = "research"
)

// Priority drives sort order and badge color.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the numeric weight used by the priority sort. Unknown
// priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type Status string

const (
	StatusActive        Status = "active"
	StatusArchived      Status = "archived"
	StatusShared        Status = "shared"
	StatusPrivate       Status = "private"
	StatusCollaborative Status = "collaborative"
)

// Statuses lists every status in badge order.
var Statuses = []Status{StatusActive, StatusArchived, StatusShared, StatusPrivate, StatusCollaborative}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// Source is one citation attached to a response. Read-only after creation.
type Source struct {
	ID          string
	Title       string
	URL         string
	Domain      string
	Description string
	Selected    bool
	Reviewed    bool
}

// ProcessingStep is one entry of the simulated research trace.
type ProcessingStep struct {
	ID      int
	Title   string
	Status  string
	Details []string
}

// Chart describes a placeholder visualization slot.
type Chart struct {
	ID          int
	Kind        string
	Title       string
	Description string
	Data        string
}

// Response is one turn in a conversation thread: the query plus everything
// generated for it. Owned by exactly one conversation.
type Response struct {
	ID               string
	Query            string
	Timestamp        int64
	Category         Category
	Answer           string
	Sources          []Source
	Steps            []ProcessingStep
	Charts           []Chart
	RelatedQuestions []string
}

// Conversation is one record of the feed: summary fields plus the lazily
// populated response thread. Timestamps are epoch milliseconds;
// LastActivity is the recency sort key, Timestamp is creation time.
type Conversation struct {
	ID           string
	Title        string
	Category     Category
	Priority     Priority
	Status       Status
	IsStarred    bool
	IsShared     bool
	IsLive       bool
	IsTyping     bool
	Timestamp    int64
	LastActivity int64
	LastMessage  string
	MessageCount int
	Participants int
	UnreadCount  int
	Sentiment    Sentiment
	Responses    []Response
}

// clone returns a copy whose Responses slice is detached from the store's
// backing array, so snapshot readers never observe later appends.
func (c Conversation) clone() Conversation {
	if len(c.Responses) > 0 {
		c.Responses = append([]Response(nil), c.Responses...)
	}
	return c
}

// Params selects the caller-supplied fields for a new conversation.
// Zero values fall back to the defaults applied by the store.
type Params struct {
	Title    string
	Category Category
	Priority Priority
}

// Update is a typed partial: nil fields leave the record untouched.
// Responses replaces the whole thread when non-nil (threads only ever grow,
// so callers pass the full appended slice).
type Update struct {
	Title        *string
	Category     *Category
	Priority     *Priority
	Status       *Status
	IsStarred    *bool
	IsShared     *bool
	IsLive       *bool
	IsTyping     *bool
	LastActivity *int64
	LastMessage  *string
	MessageCount *int
	Participants *int
	UnreadCount  *int
	Sentiment    *Sentiment
	Responses    []Response
}

func (u Update) apply(c *Conversation) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.IsStarred != nil {
		c.IsStarred = *u.IsStarred
	}
	if u.IsShared != nil {
		c.IsShared = *u.IsShared
	}
	if u.IsLive != nil {
		c.IsLive = *u.IsLive
	}
	if u.IsTyping != nil {
		c.IsTyping = *u.IsTyping
	}
	if u.LastActivity != nil {
		c.LastActivity = *u.LastActivity
	}
	if u.LastMessage != nil {
		c.LastMessage = *u.LastMessage
	}
	if u.MessageCount != nil {
		c.MessageCount = *u.MessageCount
	}
	if u.Participants != nil {
		c.Participants = *u.Participants
	}
	if u.UnreadCount != nil {
		count := *u.UnreadCount
		if count < 0 {
			count = 0
		}
		c.UnreadCount = count
	}
	if u.Sentiment != nil {
		c.Sentiment = *u.Sentiment
	}
	if u.Responses != nil {
		c.Responses = u.Responses
	}
}

// Pointer-builder helpers so call sites stay readable.

func String(v string) *string     { return &v }
func Int(v int) *int              { return &v }
func Int64(v int64) *int64        { return &v }
func Bool(v bool) *bool           { return &v }
func Cat(v Category) *Category    { return &v }
func Prio(v Priority) *Priority   { return &v }
func Stat(v Status) *Status       { return &v }
func Sent(v Sentiment) *Sentiment { return &v }
