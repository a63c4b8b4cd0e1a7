package feed

import (
	"log/slog"
	"time"

	"github.com/csheth/threadscout/internal/conversation"
)

// Live-activity probabilities, matching the reference behavior: a new
// conversation lands roughly every couple of minutes of 30s ticks, cosmetic
// passes run on about a third of ticks.
const (
	newChatProbability  = 0.02
	cosmeticProbability = 0.30
	typingProbability   = 0.02
	unreadDecayChance   = 0.10
	maxActivityNudgeMs  = 30_000
)

// Tick runs one round of simulated background activity. It may inject a
// brand-new conversation (returned as a notification for the view to flash)
// and may apply cosmetic mutations to existing records. Mutations only ever
// narrow toward "read": unreadCount is decremented, never raised, and
// creation timestamps are never touched.
func (c *Controller) Tick() *Notification {
	var note *Notification

	if c.rng.Float64() < newChatProbability {
		arch := c.gen.Archetype()
		id := c.store.Create(conversation.Params{
			Title:    arch.Title,
			Category: arch.Category,
			Priority: arch.Priority,
		})
		note = &Notification{Title: arch.Title, Category: arch.Category}
		slog.Debug("live tick injected conversation", "id", id, "title", arch.Title)
	}

	if c.rng.Float64() < cosmeticProbability {
		for _, record := range c.store.GetAll() {
			update := conversation.Update{
				IsTyping:     conversation.Bool(c.rng.Float64() < typingProbability),
				LastActivity: conversation.Int64(record.LastActivity + c.rng.Int63n(maxActivityNudgeMs)),
			}
			if record.UnreadCount > 0 && c.rng.Float64() < unreadDecayChance {
				update.UnreadCount = conversation.Int(record.UnreadCount - 1)
			}
			c.store.Update(record.ID, update)
		}
	}
	return note
}

// TickInterval exposes the configured period so the view can schedule the
// next timer.
func (c *Controller) TickInterval() time.Duration {
	return c.cfg.TickInterval
}
