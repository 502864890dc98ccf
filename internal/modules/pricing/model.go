// Package pricing implements the stochastic price engine: a geometric
// Brownian motion step with news drift, mean reversion and a per-tick
// circuit breaker.
package pricing

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/traderoyale/engine/internal/domain"
)

const (
	// timeStep treats one tick as 1/60 of a simulated trading period.
	timeStep = 1.0 / 60.0

	// maxMovePerTick is the circuit breaker: no single tick moves a price
	// by more than 8% in either direction.
	maxMovePerTick = 0.08

	// priceFloor keeps the log-based mean-reversion term well-defined.
	priceFloor = 0.1

	// baselinePrice anchors mean reversion in log space.
	baselinePrice         = 100.0
	meanReversionStrength = 0.002

	// newsImpactScale converts sentiment*magnitude into log drift; the
	// effect fades exponentially with age.
	newsImpactScale = 0.1
	newsDecayRate   = 0.05
)

// Model computes next-tick prices. All randomness flows through the
// injected source, so tests can seed it and assert bounds.
type Model struct {
	rng          *rand.Rand
	chol         *mat.TriDense
	sectorShocks map[domain.AssetCategory]float64
	log          zerolog.Logger
}

// NewModel creates a price model using the given random source.
func NewModel(rng *rand.Rand, log zerolog.Logger) *Model {
	return &Model{
		rng:          rng,
		chol:         choleskyFactor(),
		sectorShocks: make(map[domain.AssetCategory]float64, len(categoryOrder)),
		log:          log.With().Str("component", "price_model").Logger(),
	}
}

// Next computes the asset's next price from its state, the active news
// touching it, and the current market health.
func (m *Model) Next(asset domain.Asset, activeNews []domain.NewsItem, marketHealth float64, now time.Time) float64 {
	baseVolatility := asset.Category.BaseVolatility()

	// Scale by the asset's own calibration factor, then amplify in
	// unhealthy markets: health 0 doubles volatility, health 100 leaves it.
	assetVolatility := baseVolatility * asset.Volatility * 2
	marketVolatilityFactor := 1 + (100-marketHealth)/100
	adjustedVolatility := assetVolatility * marketVolatilityFactor

	// Slight upward bias above 50 health, downward below.
	marketDrift := (marketHealth/100 - 0.5) * 0.001

	// dS = mu*S dt + sigma*S dW. The diffusion draw blends the category's
	// shared sector shock with an idiosyncratic draw; the weights keep the
	// combined variate standard normal.
	z := sectorBeta*m.sectorShock(asset.Category) + math.Sqrt(1-sectorBeta*sectorBeta)*m.normal()

	drift := (marketDrift - 0.5*adjustedVolatility*adjustedVolatility) * timeStep
	diffusion := adjustedVolatility * math.Sqrt(timeStep) * z

	newsEffect := 0.0
	for _, news := range activeNews {
		age := news.Age(now).Seconds()
		if age < 0 {
			age = 0
		}
		decay := math.Exp(-newsDecayRate * age)
		newsEffect += news.Sentiment.Direction() * news.Magnitude * newsImpactScale * decay
	}

	// Pull toward the baseline to prevent runaway prices.
	deviation := math.Log(asset.Price / baselinePrice)
	reversion := -meanReversionStrength * deviation * timeStep

	change := math.Exp(drift + diffusion + reversion + newsEffect)

	// Circuit breaker
	change = math.Min(change, 1+maxMovePerTick)
	change = math.Max(change, 1-maxMovePerTick)

	next := math.Max(asset.Price*change, priceFloor)

	return math.Round(next*100) / 100
}

// normal draws a standard normal variate via the Box-Muller transform.
func (m *Model) normal() float64 {
	u := m.rng.Float64()
	for u == 0 {
		u = m.rng.Float64()
	}
	v := m.rng.Float64()
	for v == 0 {
		v = m.rng.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}
