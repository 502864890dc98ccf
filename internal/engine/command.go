// Package engine drives the game: a pure reducer over a closed command
// set, and a session that owns the clock, the random generators and the
// event bus around it.
package engine

import (
	"time"

	"github.com/traderoyale/engine/internal/domain"
)

// Command is the closed set of state transitions. Every mutation of the
// game state flows through Reduce with one of these; nothing else writes
// state.
type Command interface {
	isCommand()
}

// StartGame resets everything to a fresh round 1.
type StartGame struct {
	Now time.Time
}

// EndGame freezes the session: paused and game over.
type EndGame struct{}

// NextRound advances to the next round, failing missions left active and
// activating the next round's batch. Past the final round it ends the game.
type NextRound struct {
	Now time.Time
}

// Tick consumes round time. At zero the round pauses until NextRound.
type Tick struct {
	Delta time.Duration
}

// UpdatePrices applies externally computed next prices. Updates arriving
// less than a second after the previous one are ignored.
type UpdatePrices struct {
	Now    time.Time
	Prices map[string]float64
}

// AddNews publishes a news item into the feed and the active set.
type AddNews struct {
	Item domain.NewsItem
}

// AdvanceNews moves every active item's applied impact one tick and drops
// items that have gone inactive and fully decayed.
type AdvanceNews struct{}

// ExpireNews deactivates active items older than MaxAge.
type ExpireNews struct {
	Now    time.Time
	MaxAge time.Duration
}

// ExecuteTrade settles a player order at the given price.
type ExecuteTrade struct {
	AssetID string
	Side    domain.TradeSide
	Units   float64
	Price   float64
	Now     time.Time
}

// SetMarketHealth replaces the market health scalar, clamped to [0,100].
type SetMarketHealth struct {
	Health float64
}

// RecordNetWorth appends the current portfolio value to the history.
type RecordNetWorth struct {
	Now time.Time
}

// EvaluateMissions recomputes progress for the round's active missions.
type EvaluateMissions struct{}

// CompleteMission marks a mission completed and applies its reward.
type CompleteMission struct {
	MissionID string
}

// FailMission marks a mission failed.
type FailMission struct {
	MissionID string
}

func (StartGame) isCommand()       {}
func (EndGame) isCommand()         {}
func (NextRound) isCommand()       {}
func (Tick) isCommand()            {}
func (UpdatePrices) isCommand()    {}
func (AddNews) isCommand()         {}
func (AdvanceNews) isCommand()     {}
func (ExpireNews) isCommand()      {}
func (ExecuteTrade) isCommand()    {}
func (SetMarketHealth) isCommand() {}
func (RecordNetWorth) isCommand()  {}
func (EvaluateMissions) isCommand() {}
func (CompleteMission) isCommand() {}
func (FailMission) isCommand()     {}
