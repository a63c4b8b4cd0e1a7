package synth

import (
	"github.com/google/uuid"

	"github.com/csheth/threadscout/internal/conversation"
)

// Archetype is one entry of the fixed table synthetic conversations are
// stamped from.
type Archetype struct {
	Title    string
	Category conversation.Category
	Priority conversation.Priority
	Live     bool
}

var archetypes = []Archetype{
	{"Data Analysis Deep Dive", conversation.CategoryAnalysis, conversation.PriorityHigh, true},
	{"Real-time PDF Processing", conversation.CategoryTechnical, conversation.PriorityMedium, false},
	{"AI Chat App Frontend Design", conversation.CategoryConversational, conversation.PriorityHigh, true},
	{"Live Market Data Scripts", conversation.CategoryMarketData, conversation.PriorityUrgent, true},
	{"Dynamic CV Enhancement", conversation.CategoryResearch, conversation.PriorityLow, false},
	{"Code Review Session", conversation.CategoryTechnical, conversation.PriorityMedium, true},
	{"Monthly Analytics Report", conversation.CategoryAnalysis, conversation.PriorityMedium, false},
	{"QA Validation Pipeline", conversation.CategoryDocumentation, conversation.PriorityHigh, true},
	{"Team Standup Notes", conversation.CategoryConversational, conversation.PriorityLow, false},
	{"Project Clarification", conversation.CategoryConversational, conversation.PriorityMedium, true},
	{"Machine Learning Model Training", conversation.CategoryAnalysis, conversation.PriorityUrgent, true},
	{"Database Optimization Strategy", conversation.CategoryTechnical, conversation.PriorityHigh, false},
	{"User Experience Research", conversation.CategoryResearch, conversation.PriorityMedium, true},
	{"API Integration Guide", conversation.CategoryDocumentation, conversation.PriorityLow, false},
	{"Performance Monitoring Setup", conversation.CategoryTechnical, conversation.PriorityUrgent, true},
}

type timeRange struct {
	label string
	min   int64
	max   int64
}

var timeRanges = []timeRange{
	{"just now", 0, 60_000},
	{"2 minutes ago", 60_000, 300_000},
	{"15 minutes ago", 300_000, 900_000},
	{"1 hour ago", 900_000, 3_600_000},
	{"3 hours ago", 3_600_000, 10_800_000},
	{"1 day ago", 86_400_000, 172_800_000},
	{"3 days ago", 172_800_000, 259_200_000},
}

// Archetype picks one random archetype, used when the live ticker injects a
// brand-new conversation.
func (g *Generator) Archetype() Archetype {
	return archetypes[g.rng.Intn(len(archetypes))]
}

// Batch fabricates count feed-ready records with randomized ages, flags, and
// counters. Ids are fresh uuids so batches never collide with existing
// records.
func (g *Generator) Batch(count int) []conversation.Conversation {
	now := g.now().UnixMilli()
	records := make([]conversation.Conversation, 0, count)
	for i := 0; i < count; i++ {
		arch := archetypes[g.rng.Intn(len(archetypes))]
		span := timeRanges[g.rng.Intn(len(timeRanges))]
		age := span.min
		if span.max > span.min {
			age += g.rng.Int63n(span.max - span.min)
		}

		unread := 0
		if g.rng.Float64() > 0.7 {
			unread = g.rng.Intn(5) + 1
		}
		records = append(records, conversation.Conversation{
			ID:           uuid.NewString(),
			Title:        arch.Title,
			Category:     arch.Category,
			Priority:     arch.Priority,
			Status:       conversation.Statuses[g.rng.Intn(len(conversation.Statuses))],
			IsStarred:    g.rng.Float64() > 0.7,
			IsShared:     g.rng.Float64() > 0.8,
			IsLive:       arch.Live && g.rng.Float64() > 0.6,
			IsTyping:     g.rng.Float64() > 0.9,
			Timestamp:    now - age,
			LastActivity: now - age,
			LastMessage:  span.label,
			MessageCount: g.rng.Intn(50) + 1,
			Participants: g.rng.Intn(5) + 1,
			UnreadCount:  unread,
			Sentiment:    conversation.Sentiments[g.rng.Intn(len(conversation.Sentiments))],
		})
	}
	return records
}
