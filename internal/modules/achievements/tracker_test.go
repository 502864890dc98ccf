package achievements

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderoyale/engine/internal/config"
	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/engine"
	"github.com/traderoyale/engine/internal/events"
	"github.com/traderoyale/engine/internal/modules/history"
)

func TestFirstTradeUnlocksOnce(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	tracker := NewTracker(bus, 10000, zerolog.Nop())

	bus.Publish(&events.TradeExecutedData{AssetID: "stock-tech", Side: "buy", Units: 1, Price: 100, HeldCategories: 1})
	bus.Publish(&events.TradeExecutedData{AssetID: "stock-tech", Side: "sell", Units: 1, Price: 110, HeldCategories: 0})

	require.True(t, tracker.Has(FirstTrade))
	unlocked := tracker.Unlocked()
	require.Len(t, unlocked, 1)
	assert.Equal(t, FirstTrade, unlocked[0].ID)
	assert.False(t, unlocked[0].UnlockedAt.IsZero())
}

func TestFullyDiversifiedNeedsAllCategories(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	tracker := NewTracker(bus, 10000, zerolog.Nop())

	bus.Publish(&events.TradeExecutedData{AssetID: "stock-tech", Side: "buy", Units: 1, Price: 100, HeldCategories: 2})
	assert.False(t, tracker.Has(FullyDiversified))

	bus.Publish(&events.TradeExecutedData{AssetID: "crypto-btc", Side: "buy", Units: 1, Price: 40000, HeldCategories: 3})
	assert.True(t, tracker.Has(FullyDiversified))
}

func TestDoubledPortfolioUsesStartingCash(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	tracker := NewTracker(bus, 10000, zerolog.Nop())

	bus.Publish(&events.NetWorthRecordedData{Round: 3, Value: 19999})
	assert.False(t, tracker.Has(DoubledPortfolio))

	bus.Publish(&events.NetWorthRecordedData{Round: 4, Value: 20000})
	assert.True(t, tracker.Has(DoubledPortfolio))
}

func TestGameStartClearsUnlocks(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	tracker := NewTracker(bus, 10000, zerolog.Nop())

	bus.Publish(&events.TradeExecutedData{AssetID: "stock-tech", Side: "buy", Units: 1, Price: 100, HeldCategories: 1})
	require.True(t, tracker.Has(FirstTrade))

	bus.Publish(&events.GameStartedData{StartingCash: 5000, Assets: 19})
	assert.False(t, tracker.Has(FirstTrade))
	assert.Empty(t, tracker.Unlocked())

	// The new game's cash baseline applies to the doubling check.
	bus.Publish(&events.NetWorthRecordedData{Round: 1, Value: 10000})
	assert.True(t, tracker.Has(DoubledPortfolio))
}

// Bus handlers fire while the session mutex is held; the tracker must not
// call back into the session, or the first trade never returns.
func TestLiveSessionTradeDoesNotStall(t *testing.T) {
	game := config.GameConfig{
		StartingCash:     10000,
		Rounds:           10,
		RoundLength:      60 * time.Second,
		PriceInterval:    time.Second,
		NewsInterval:     5 * time.Second,
		NewsLifetime:     15 * time.Second,
		HealthJitterProb: 0.02,
	}
	bus := events.NewBus(zerolog.Nop())
	session := engine.NewSession(game, rand.New(rand.NewSource(1)), bus, history.NewStore(zerolog.Nop()), zerolog.Nop())
	tracker := NewTracker(bus, game.StartingCash, zerolog.Nop())

	now := time.Now()
	session.Start(now)

	done := make(chan error, 1)
	go func() {
		_, err := session.SubmitTrade("stock-tech", domain.SideBuy, 5, now)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("SubmitTrade did not return while the tracker was subscribed")
	}

	assert.True(t, tracker.Has(FirstTrade))
}

func TestLiveSessionDiversifiedTrades(t *testing.T) {
	game := config.GameConfig{
		StartingCash:     100000,
		Rounds:           10,
		RoundLength:      60 * time.Second,
		PriceInterval:    time.Second,
		NewsInterval:     5 * time.Second,
		NewsLifetime:     15 * time.Second,
		HealthJitterProb: 0.02,
	}
	bus := events.NewBus(zerolog.Nop())
	session := engine.NewSession(game, rand.New(rand.NewSource(2)), bus, history.NewStore(zerolog.Nop()), zerolog.Nop())
	tracker := NewTracker(bus, game.StartingCash, zerolog.Nop())

	now := time.Now()
	session.Start(now)

	_, err := session.SubmitTrade("stock-tech", domain.SideBuy, 10, now)
	require.NoError(t, err)
	_, err = session.SubmitTrade("commodity-silver", domain.SideBuy, 10, now)
	require.NoError(t, err)
	assert.False(t, tracker.Has(FullyDiversified))

	_, err = session.SubmitTrade("crypto-sol", domain.SideBuy, 10, now)
	require.NoError(t, err)
	assert.True(t, tracker.Has(FullyDiversified))
}
