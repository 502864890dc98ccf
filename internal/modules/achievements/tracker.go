// Package achievements tracks one-shot player milestones by listening to
// game events.
package achievements

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/events"
)

// Achievement ids. Each unlocks at most once per game.
const (
	FirstTrade       = "first_trade"
	DoubledPortfolio = "doubled_portfolio"
	FullyDiversified = "fully_diversified"
)

// categoryCount is how many asset categories exist in the trading universe.
const categoryCount = 3

// Achievement is an unlocked milestone.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

var definitions = map[string]Achievement{
	FirstTrade: {
		ID:          FirstTrade,
		Title:       "First Trade",
		Description: "Execute your first trade",
	},
	DoubledPortfolio: {
		ID:          DoubledPortfolio,
		Title:       "Double or Nothing",
		Description: "Grow your portfolio to twice its starting value",
	},
	FullyDiversified: {
		ID:          FullyDiversified,
		Title:       "Fully Diversified",
		Description: "Hold assets in every category at once",
	},
}

// Tracker listens on the event bus and unlocks achievements as they are
// earned. A new game clears the set. Bus handlers run synchronously inside
// the session's lock, so the tracker works purely off event payloads and
// never calls back into the session.
type Tracker struct {
	mu       sync.RWMutex
	unlocked map[string]Achievement

	startingCash float64
	log          zerolog.Logger
}

// NewTracker creates a tracker and subscribes it to the bus.
func NewTracker(bus *events.Bus, startingCash float64, log zerolog.Logger) *Tracker {
	t := &Tracker{
		unlocked:     make(map[string]Achievement),
		startingCash: startingCash,
		log:          log.With().Str("component", "achievements").Logger(),
	}

	bus.Subscribe(events.GameStarted, t.onGameStarted)
	bus.Subscribe(events.TradeExecuted, t.onTradeExecuted)
	bus.Subscribe(events.NetWorthRecorded, t.onNetWorthRecorded)

	return t
}

func (t *Tracker) onGameStarted(event *events.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unlocked = make(map[string]Achievement)

	if data, ok := event.Data.(*events.GameStartedData); ok && data.StartingCash > 0 {
		t.startingCash = data.StartingCash
	}
}

func (t *Tracker) onTradeExecuted(event *events.Event) {
	t.unlock(FirstTrade, event.Timestamp)

	data, ok := event.Data.(*events.TradeExecutedData)
	if !ok {
		return
	}
	if data.HeldCategories >= categoryCount {
		t.unlock(FullyDiversified, event.Timestamp)
	}
}

func (t *Tracker) onNetWorthRecorded(event *events.Event) {
	data, ok := event.Data.(*events.NetWorthRecordedData)
	if !ok {
		return
	}
	if t.startingCash > 0 && data.Value >= 2*t.startingCash {
		t.unlock(DoubledPortfolio, event.Timestamp)
	}
}

func (t *Tracker) unlock(id string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, done := t.unlocked[id]; done {
		return
	}
	achievement, known := definitions[id]
	if !known {
		return
	}
	achievement.UnlockedAt = at
	t.unlocked[id] = achievement
	t.log.Info().Str("achievement", id).Msg("achievement unlocked")
}

// Unlocked returns the earned achievements ordered by unlock time.
func (t *Tracker) Unlocked() []Achievement {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Achievement, 0, len(t.unlocked))
	for _, achievement := range t.unlocked {
		out = append(out, achievement)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnlockedAt.Before(out[j].UnlockedAt) })
	return out
}

// Has reports whether the achievement is unlocked.
func (t *Tracker) Has(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, done := t.unlocked[id]
	return done
}
