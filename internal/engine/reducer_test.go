package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderoyale/engine/internal/config"
	"github.com/traderoyale/engine/internal/domain"
)

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		StartingCash:     10000,
		Rounds:           10,
		RoundLength:      60 * time.Second,
		PriceInterval:    time.Second,
		NewsInterval:     5 * time.Second,
		NewsLifetime:     15 * time.Second,
		HealthJitterProb: 0.02,
	}
}

func baseState() domain.GameState {
	return domain.GameState{
		Assets:       domain.StartingAssets(),
		Cash:         10000,
		Holdings:     make(map[string]domain.Holding),
		MarketHealth: 100,
		Paused:       true,
	}
}

func TestStartGameResetsEverything(t *testing.T) {
	now := time.Now()
	state := baseState()
	state.Cash = 123
	state.Round = 7
	state.GameOver = true
	state.Holdings["stock-tech"] = domain.Holding{Quantity: 5}
	state.MarketHealth = 40
	state.Missions = map[int][]domain.Mission{
		1: {{ID: "m1", Type: domain.MissionDiversify, Status: domain.MissionActive}},
	}

	next, err := Reduce(state, StartGame{Now: now}, testGameConfig())
	require.NoError(t, err)

	assert.Equal(t, 10000.0, next.Cash)
	assert.Equal(t, 1, next.Round)
	assert.Equal(t, 60*time.Second, next.TimeRemaining)
	assert.False(t, next.Paused)
	assert.False(t, next.GameOver)
	assert.Empty(t, next.Holdings)
	assert.Equal(t, 100.0, next.MarketHealth)
	assert.Empty(t, next.ActiveNews)
	require.Len(t, next.NetWorthHistory, 1)
	assert.Equal(t, 0, next.NetWorthHistory[0].Round)
	assert.Equal(t, 10000.0, next.NetWorthHistory[0].Value)
	require.Len(t, next.ActiveMissions, 1)
	assert.Equal(t, "m1", next.ActiveMissions[0].ID)

	// The input state is untouched.
	assert.Equal(t, 123.0, state.Cash)
}

func TestNextRoundAdvancesAndFailsOpenMissions(t *testing.T) {
	now := time.Now()
	state := baseState()
	state.Round = 4
	state.ActiveNews = []domain.NewsItem{{ID: "n1", Active: true}}
	state.ActiveMissions = []domain.Mission{
		{ID: "done", Status: domain.MissionCompleted},
		{ID: "open", Status: domain.MissionActive},
	}
	state.Missions = map[int][]domain.Mission{
		5: {{ID: "m5", Status: domain.MissionActive}},
	}

	next, err := Reduce(state, NextRound{Now: now}, testGameConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, next.Round)
	assert.Equal(t, 60*time.Second, next.TimeRemaining)
	assert.False(t, next.Paused)
	assert.Empty(t, next.ActiveNews)
	require.Len(t, next.ActiveMissions, 1)
	assert.Equal(t, "m5", next.ActiveMissions[0].ID)

	require.Len(t, next.CompletedMissions, 2)
	assert.Equal(t, domain.MissionCompleted, next.CompletedMissions[0].Status)
	assert.Equal(t, domain.MissionFailed, next.CompletedMissions[1].Status)
}

func TestNextRoundAtFinalRoundEndsGame(t *testing.T) {
	state := baseState()
	state.Round = 10

	next, err := Reduce(state, NextRound{Now: time.Now()}, testGameConfig())
	require.NoError(t, err)

	assert.True(t, next.GameOver)
	assert.True(t, next.Paused)
	assert.Equal(t, 10, next.Round)
}

func TestTickPausesAtZero(t *testing.T) {
	state := baseState()
	state.Paused = false
	state.TimeRemaining = 2 * time.Second

	next, err := Reduce(state, Tick{Delta: time.Second}, testGameConfig())
	require.NoError(t, err)
	assert.Equal(t, time.Second, next.TimeRemaining)
	assert.False(t, next.Paused)

	next, err = Reduce(next, Tick{Delta: 3 * time.Second}, testGameConfig())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), next.TimeRemaining)
	assert.True(t, next.Paused)
}

func TestUpdatePricesThrottledToOneSecond(t *testing.T) {
	now := time.Now()
	state := baseState()
	state.LastPriceUpdate = now
	original := state.Assets[0].Price

	early, err := Reduce(state, UpdatePrices{
		Now:    now.Add(500 * time.Millisecond),
		Prices: map[string]float64{state.Assets[0].ID: original * 2},
	}, testGameConfig())
	require.NoError(t, err)
	assert.Equal(t, original, early.Assets[0].Price)

	later, err := Reduce(state, UpdatePrices{
		Now:    now.Add(1100 * time.Millisecond),
		Prices: map[string]float64{state.Assets[0].ID: original * 2},
	}, testGameConfig())
	require.NoError(t, err)
	assert.Equal(t, original*2, later.Assets[0].Price)
	assert.Equal(t, original, later.Assets[0].PreviousPrice)
}

func TestExecuteTradeRejectionLeavesStateUnchanged(t *testing.T) {
	state := baseState()
	state.Cash = 10
	state.NetWorthHistory = []domain.NetWorthPoint{{Round: 0, Value: 10}}

	next, err := Reduce(state, ExecuteTrade{
		AssetID: "stock-tech",
		Side:    domain.SideBuy,
		Units:   100,
		Price:   50,
		Now:     time.Now(),
	}, testGameConfig())

	require.ErrorIs(t, err, domain.ErrInsufficientCash)
	assert.Equal(t, 10.0, next.Cash)
	assert.Empty(t, next.Holdings)
	assert.Len(t, next.NetWorthHistory, 1)
}

func TestExecuteTradeOnFinishedGameRejected(t *testing.T) {
	state := baseState()
	state.GameOver = true

	_, err := Reduce(state, ExecuteTrade{
		AssetID: "stock-tech",
		Side:    domain.SideBuy,
		Units:   1,
		Price:   50,
	}, testGameConfig())
	require.ErrorIs(t, err, domain.ErrGameOver)
}

func TestExecuteTradeUnknownAssetRejected(t *testing.T) {
	_, err := Reduce(baseState(), ExecuteTrade{
		AssetID: "stock-ghost",
		Side:    domain.SideBuy,
		Units:   1,
		Price:   50,
	}, testGameConfig())
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestExecuteTradeSamplesNetWorthOnSignificantMove(t *testing.T) {
	now := time.Now()
	state := baseState()
	state.NetWorthHistory = []domain.NetWorthPoint{{Round: 0, Value: 10000, Timestamp: now}}

	price := state.Assets[0].Price
	next, err := Reduce(state, ExecuteTrade{
		AssetID: state.Assets[0].ID,
		Side:    domain.SideBuy,
		Units:   10,
		Price:   price,
		Now:     now,
	}, testGameConfig())
	require.NoError(t, err)

	// Buying at market swaps cash for equal position value, so net worth
	// is unchanged and no sample is added.
	assert.Len(t, next.NetWorthHistory, 1)

	// Selling above cost moves net worth and adds a sample.
	next, err = Reduce(next, ExecuteTrade{
		AssetID: state.Assets[0].ID,
		Side:    domain.SideSell,
		Units:   10,
		Price:   price * 1.5,
		Now:     now,
	}, testGameConfig())
	require.NoError(t, err)
	assert.Len(t, next.NetWorthHistory, 2)
}

func TestExecuteTradeCompletingDiversifyGrantsCashBonus(t *testing.T) {
	now := time.Now()
	state := baseState()
	state.MissionRewards = make(map[string]float64)
	state.ActiveMissions = []domain.Mission{{
		ID:               "m-div",
		Type:             domain.MissionDiversify,
		Status:           domain.MissionActive,
		Reward:           "+5% Cash Bonus",
		RewardValue:      0.05,
		ProgressRequired: 3,
	}}

	// Hold two categories already; buying a crypto completes the mission.
	state.Holdings["stock-tech"] = domain.Holding{Quantity: 1, AverageBuyPrice: 100}
	state.Holdings["commodity-gold"] = domain.Holding{Quantity: 1, AverageBuyPrice: 1000}

	btc := state.Asset("crypto-btc")
	require.NotNil(t, btc)

	next, err := Reduce(state, ExecuteTrade{
		AssetID: "crypto-btc",
		Side:    domain.SideBuy,
		Units:   0.01,
		Price:   btc.Price,
		Now:     now,
	}, testGameConfig())
	require.NoError(t, err)

	require.Equal(t, domain.MissionCompleted, next.ActiveMissions[0].Status)
	cashAfterBuy := state.Cash - 0.01*btc.Price
	assert.InDelta(t, cashAfterBuy*1.05, next.Cash, 1e-6)
	assert.Equal(t, 0.05, next.MissionRewards[string(domain.MissionDiversify)])

	// Re-evaluating must not grant the bonus again.
	again, err := Reduce(next, EvaluateMissions{}, testGameConfig())
	require.NoError(t, err)
	assert.Equal(t, next.Cash, again.Cash)
}

func TestSetMarketHealthClamps(t *testing.T) {
	cfg := testGameConfig()
	state := baseState()

	next, _ := Reduce(state, SetMarketHealth{Health: 140}, cfg)
	assert.Equal(t, 100.0, next.MarketHealth)

	next, _ = Reduce(state, SetMarketHealth{Health: -20}, cfg)
	assert.Equal(t, 0.0, next.MarketHealth)

	next, _ = Reduce(state, SetMarketHealth{Health: 55.5}, cfg)
	assert.Equal(t, 55.5, next.MarketHealth)
}

func TestExpireNewsDeactivatesOldItems(t *testing.T) {
	now := time.Now()
	item := domain.NewsItem{ID: "n1", Active: true, Timestamp: now.Add(-20 * time.Second)}
	fresh := domain.NewsItem{ID: "n2", Active: true, Timestamp: now.Add(-5 * time.Second)}

	state := baseState()
	state.News = []domain.NewsItem{item, fresh}
	state.ActiveNews = []domain.NewsItem{item, fresh}

	next, err := Reduce(state, ExpireNews{Now: now, MaxAge: 15 * time.Second}, testGameConfig())
	require.NoError(t, err)

	assert.False(t, next.ActiveNews[0].Active)
	assert.True(t, next.ActiveNews[1].Active)
	assert.False(t, next.News[0].Active)
	assert.True(t, next.News[1].Active)
}

func TestAdvanceNewsDropsFullyDecayedItems(t *testing.T) {
	state := baseState()
	state.ActiveNews = []domain.NewsItem{
		// Inactive with a sliver of impact left: decays to zero and drops.
		{ID: "fading", Active: false, TargetImpact: 2, AppliedImpact: 0.005, DecayRate: 0.3},
		// Active item still ramping: stays.
		{ID: "ramping", Active: true, TargetImpact: 2, AppliedImpact: 0.5, ImpactRate: 0.2},
	}

	next, err := Reduce(state, AdvanceNews{}, testGameConfig())
	require.NoError(t, err)

	require.Len(t, next.ActiveNews, 1)
	assert.Equal(t, "ramping", next.ActiveNews[0].ID)
	assert.InDelta(t, 0.7, next.ActiveNews[0].AppliedImpact, 1e-9)
}

func TestCompleteMissionAppliesRewardOnce(t *testing.T) {
	state := baseState()
	state.MissionRewards = make(map[string]float64)
	state.ActiveMissions = []domain.Mission{{
		ID:          "m1",
		Type:        domain.MissionDiversify,
		Status:      domain.MissionActive,
		Reward:      "+5% Cash Bonus",
		RewardValue: 0.05,
	}}

	next, _ := Reduce(state, CompleteMission{MissionID: "m1"}, testGameConfig())
	assert.Equal(t, domain.MissionCompleted, next.ActiveMissions[0].Status)
	assert.InDelta(t, 10500.0, next.Cash, 1e-9)

	// Completing again is a no-op.
	again, _ := Reduce(next, CompleteMission{MissionID: "m1"}, testGameConfig())
	assert.Equal(t, next.Cash, again.Cash)
}

func TestFailMissionIsTerminal(t *testing.T) {
	state := baseState()
	state.ActiveMissions = []domain.Mission{{ID: "m1", Status: domain.MissionActive}}

	next, _ := Reduce(state, FailMission{MissionID: "m1"}, testGameConfig())
	assert.Equal(t, domain.MissionFailed, next.ActiveMissions[0].Status)

	// A failed mission cannot be completed afterwards.
	after, _ := Reduce(next, CompleteMission{MissionID: "m1"}, testGameConfig())
	assert.Equal(t, domain.MissionFailed, after.ActiveMissions[0].Status)
}
