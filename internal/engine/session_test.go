package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/events"
	"github.com/traderoyale/engine/internal/modules/history"
)

func newTestSession(seed int64) (*Session, *events.Bus) {
	bus := events.NewBus(zerolog.Nop())
	store := history.NewStore(zerolog.Nop())
	session := NewSession(testGameConfig(), rand.New(rand.NewSource(seed)), bus, store, zerolog.Nop())
	return session, bus
}

// runTicks drives the session heartbeat with strictly increasing time.
func runTicks(session *Session, start time.Time, n int) time.Time {
	now := start
	for i := 0; i < n; i++ {
		now = now.Add(time.Second)
		session.OnTick(now)
	}
	return now
}

func TestStartResetsSessionState(t *testing.T) {
	session, bus := newTestSession(1)

	var started *events.GameStartedData
	bus.Subscribe(events.GameStarted, func(e *events.Event) {
		started = e.Data.(*events.GameStartedData)
	})

	session.Start(time.Now())
	state := session.Snapshot()

	assert.Equal(t, 1, state.Round)
	assert.Equal(t, 10000.0, state.Cash)
	assert.False(t, state.Paused)
	assert.Equal(t, 100.0, state.MarketHealth)
	assert.Len(t, state.Missions, 10)
	assert.NotEmpty(t, state.ActiveMissions)

	require.NotNil(t, started)
	assert.Equal(t, 10000.0, started.StartingCash)
	assert.Equal(t, len(state.Assets), started.Assets)
}

func TestOnTickMovesTimeAndPrices(t *testing.T) {
	session, _ := newTestSession(2)
	start := time.Now()
	session.Start(start)

	before := session.Snapshot()
	runTicks(session, start, 10)
	after := session.Snapshot()

	assert.Equal(t, before.TimeRemaining-10*time.Second, after.TimeRemaining)

	moved := false
	for i := range after.Assets {
		if after.Assets[i].Price != before.Assets[i].Price {
			moved = true
		}
		assert.GreaterOrEqual(t, after.Assets[i].Price, 0.1)
	}
	assert.True(t, moved, "ten ticks should move at least one price")
}

func TestOnTickPublishesNewsOnCadence(t *testing.T) {
	session, bus := newTestSession(3)

	published := 0
	bus.Subscribe(events.NewsPublished, func(*events.Event) { published++ })

	start := time.Now()
	session.Start(start)
	runTicks(session, start, 30)

	// 30 seconds of game time at a 5-second news interval.
	assert.GreaterOrEqual(t, published, 5)

	state := session.Snapshot()
	assert.NotEmpty(t, state.News)
}

func TestRoundAutoAdvancesWhenTimeRunsOut(t *testing.T) {
	session, bus := newTestSession(4)

	advanced := 0
	bus.Subscribe(events.RoundAdvanced, func(*events.Event) { advanced++ })

	start := time.Now()
	session.Start(start)

	// 60 ticks drain the round; the next heartbeat advances it.
	now := runTicks(session, start, 60)
	assert.True(t, session.Snapshot().Paused)

	runTicks(session, now, 1)
	state := session.Snapshot()
	assert.Equal(t, 2, state.Round)
	assert.False(t, state.Paused)
	assert.Equal(t, 60*time.Second, state.TimeRemaining)
	assert.Equal(t, 1, advanced)
}

func TestGameEndsAfterFinalRound(t *testing.T) {
	session, bus := newTestSession(5)

	ended := false
	bus.Subscribe(events.GameEnded, func(*events.Event) { ended = true })

	start := time.Now()
	session.Start(start)

	// Each round needs 60 ticks plus the advancing heartbeat.
	now := start
	for round := 0; round < 10; round++ {
		now = runTicks(session, now, 61)
	}

	state := session.Snapshot()
	assert.True(t, state.GameOver)
	assert.Equal(t, 10, state.Round)
	assert.True(t, ended)

	// Heartbeats after the end are ignored.
	runTicks(session, now, 5)
	assert.Equal(t, state.Round, session.Snapshot().Round)
}

func TestSubmitTradeExecutesAtMarketPrice(t *testing.T) {
	session, bus := newTestSession(6)

	var executed *events.TradeExecutedData
	bus.Subscribe(events.TradeExecuted, func(e *events.Event) {
		executed = e.Data.(*events.TradeExecutedData)
	})

	now := time.Now()
	session.Start(now)

	snapshot := session.Snapshot()
	price := snapshot.Asset("stock-tech").Price
	state, err := session.SubmitTrade("stock-tech", domain.SideBuy, 10, now)
	require.NoError(t, err)

	assert.InDelta(t, 10000-10*price, state.Cash, 1e-9)
	assert.Equal(t, 10.0, state.Holdings["stock-tech"].Quantity)

	require.NotNil(t, executed)
	assert.Equal(t, "stock-tech", executed.AssetID)
	assert.Equal(t, price, executed.Price)
}

func TestSubmitTradeRejectionsDoNotMutate(t *testing.T) {
	session, _ := newTestSession(7)
	now := time.Now()
	session.Start(now)

	_, err := session.SubmitTrade("stock-ghost", domain.SideBuy, 1, now)
	require.ErrorIs(t, err, domain.ErrAssetNotFound)

	_, err = session.SubmitTrade("stock-tech", domain.SideSell, 5, now)
	require.ErrorIs(t, err, domain.ErrInsufficientUnits)

	state := session.Snapshot()
	assert.Equal(t, 10000.0, state.Cash)
	assert.Empty(t, state.Holdings)
}

func TestNewsExpiresAfterLifetime(t *testing.T) {
	session, bus := newTestSession(8)

	expired := 0
	bus.Subscribe(events.NewsExpired, func(*events.Event) { expired++ })

	start := time.Now()
	session.Start(start)

	// Expiry runs every heartbeat, so no item may stay active beyond its
	// lifetime plus one tick, no matter when it was published.
	now := start
	for i := 0; i < 45; i++ {
		now = now.Add(time.Second)
		session.OnTick(now)

		state := session.Snapshot()
		for _, item := range state.ActiveNews {
			if item.Active {
				assert.LessOrEqual(t, item.Age(now), 16*time.Second)
			}
		}
	}

	assert.Greater(t, expired, 0)
}

func TestMarketHealthStaysInRange(t *testing.T) {
	session, _ := newTestSession(9)
	start := time.Now()
	session.Start(start)

	now := start
	for round := 0; round < 3; round++ {
		now = runTicks(session, now, 61)
		health := session.Snapshot().MarketHealth
		assert.GreaterOrEqual(t, health, 0.0)
		assert.LessOrEqual(t, health, 100.0)
	}
}

// Releasing a due aftershock can queue a chained one; the pending list
// must keep it rather than truncate it away.
func TestChainedAftershockStaysQueued(t *testing.T) {
	session, _ := newTestSession(11)
	now := time.Now()
	session.Start(now)

	original := domain.NewsItem{
		ID:             "shock-1",
		Title:          "Global Market Crash",
		Sentiment:      domain.SentimentNegative,
		Magnitude:      0.9,
		ImpactedAssets: []string{"stock-tech", "commodity-gold", "crypto-btc"},
		Timestamp:      now,
		Active:         true,
		IsBlackSwan:    true,
		// Above 2.0 the halved chain probability is still 1, so the
		// released aftershock always queues a follow-up.
		AftershockProbability: 2.0,
		AftershockDelay:       20 * time.Second,
	}

	session.mu.Lock()
	session.aftershocks = []pendingAftershock{{item: original, due: now}}
	session.releaseAftershocks(now)
	queued := len(session.aftershocks)
	session.mu.Unlock()

	require.Equal(t, 1, queued, "chained aftershock must stay queued")

	state := session.Snapshot()
	found := false
	for _, item := range state.News {
		if item.Title == "Aftershock: Global Market Crash Continues" {
			found = true
		}
	}
	assert.True(t, found, "released aftershock must be published")
}

func TestSeededSessionsReplayIdentically(t *testing.T) {
	run := func() domain.GameState {
		session, _ := newTestSession(42)
		start := time.Unix(1700000000, 0)
		session.Start(start)
		runTicks(session, start, 90)
		return session.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Cash, b.Cash)
	assert.Equal(t, a.MarketHealth, b.MarketHealth)
	require.Equal(t, len(a.Assets), len(b.Assets))
	for i := range a.Assets {
		assert.Equal(t, a.Assets[i].Price, b.Assets[i].Price)
	}
	require.Equal(t, len(a.News), len(b.News))
	for i := range a.News {
		assert.Equal(t, a.News[i].TemplateID, b.News[i].TemplateID)
	}
}
