package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/traderoyale/engine/internal/domain"
)

func newTestModel(seed int64) *Model {
	return NewModel(rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func testAsset(price, volatility float64) domain.Asset {
	return domain.Asset{
		ID:         "tech-innovations",
		Name:       "Tech Innovations Inc.",
		Ticker:     "TECH",
		Category:   domain.CategoryStock,
		Price:      price,
		Volatility: volatility,
	}
}

func TestNextStaysWithinCircuitBreaker(t *testing.T) {
	model := newTestModel(1)
	now := time.Now()

	// Extreme volatility and dead market health: the circuit breaker must
	// still hold every tick.
	asset := testAsset(100, 10)
	for i := 0; i < 5000; i++ {
		model.Roll()
		next := model.Next(asset, nil, 0, now)
		require.GreaterOrEqual(t, next, 92.0, "tick %d broke the downside breaker", i)
		require.LessOrEqual(t, next, 108.0, "tick %d broke the upside breaker", i)
		asset.Price = 100
	}
}

func TestNextNeverBelowFloor(t *testing.T) {
	model := newTestModel(2)
	now := time.Now()

	asset := testAsset(0.11, 5)
	for i := 0; i < 2000; i++ {
		model.Roll()
		asset.Price = model.Next(asset, nil, 0, now)
		require.GreaterOrEqual(t, asset.Price, 0.1)
	}
}

func TestNextRoundsToCents(t *testing.T) {
	model := newTestModel(3)
	model.Roll()

	next := model.Next(testAsset(123.456, 0.3), nil, 100, time.Now())
	cents := next * 100
	assert.InDelta(t, cents, float64(int64(cents+0.5)), 1e-6)
}

func TestNewsPushesPriceDirectionally(t *testing.T) {
	now := time.Now()
	asset := testAsset(100, 0.3)

	positive := domain.NewsItem{
		Sentiment: domain.SentimentPositive,
		Magnitude: 0.9,
		Timestamp: now,
	}
	negative := domain.NewsItem{
		Sentiment: domain.SentimentNegative,
		Magnitude: 0.9,
		Timestamp: now,
	}

	var upSum, downSum float64
	const trials = 2000
	for i := 0; i < trials; i++ {
		// Same seed for both legs so the only delta is the news term.
		up := newTestModel(int64(i))
		up.Roll()
		upSum += up.Next(asset, []domain.NewsItem{positive}, 100, now)

		down := newTestModel(int64(i))
		down.Roll()
		downSum += down.Next(asset, []domain.NewsItem{negative}, 100, now)
	}

	assert.Greater(t, upSum/trials, 100.0)
	assert.Less(t, downSum/trials, 100.0)
	assert.Greater(t, upSum, downSum)
}

func TestNewsEffectDecaysWithAge(t *testing.T) {
	published := time.Now()
	asset := testAsset(100, 0.3)
	news := []domain.NewsItem{{
		Sentiment: domain.SentimentPositive,
		Magnitude: 1,
		Timestamp: published,
	}}

	fresh := newTestModel(7)
	fresh.Roll()
	freshPrice := fresh.Next(asset, news, 100, published)

	stale := newTestModel(7)
	stale.Roll()
	stalePrice := stale.Next(asset, news, 100, published.Add(60*time.Second))

	assert.Greater(t, freshPrice, stalePrice)
}

func TestLowHealthAmplifiesVolatility(t *testing.T) {
	asset := testAsset(100, 0.5)
	now := time.Now()

	moves := func(health float64) []float64 {
		model := newTestModel(11)
		out := make([]float64, 0, 3000)
		for i := 0; i < 3000; i++ {
			model.Roll()
			out = append(out, model.Next(asset, nil, health, now)-100)
		}
		return out
	}

	calm := stat.StdDev(moves(100), nil)
	panicked := stat.StdDev(moves(0), nil)
	assert.Greater(t, panicked, calm)
}

func TestRollProducesCorrelatedSectorShocks(t *testing.T) {
	model := newTestModel(13)

	const n = 20000
	stocks := make([]float64, n)
	crypto := make([]float64, n)
	commodities := make([]float64, n)
	for i := 0; i < n; i++ {
		model.Roll()
		stocks[i] = model.sectorShock(domain.CategoryStock)
		crypto[i] = model.sectorShock(domain.CategoryCrypto)
		commodities[i] = model.sectorShock(domain.CategoryCommodity)
	}

	stockCrypto := stat.Correlation(stocks, crypto, nil)
	stockCommodity := stat.Correlation(stocks, commodities, nil)

	assert.InDelta(t, 0.4, stockCrypto, 0.05)
	assert.InDelta(t, 0.1, stockCommodity, 0.05)
	assert.Greater(t, stockCrypto, stockCommodity)
}

func TestSameSeedSameTrajectory(t *testing.T) {
	now := time.Now()
	run := func() []float64 {
		model := newTestModel(42)
		asset := testAsset(100, 0.3)
		prices := make([]float64, 0, 100)
		for i := 0; i < 100; i++ {
			model.Roll()
			asset.Price = model.Next(asset, nil, 75, now)
			prices = append(prices, asset.Price)
		}
		return prices
	}

	require.Equal(t, run(), run())
}
