// Package history records price and net-worth series for charting. The
// store keeps bounded in-memory windows: 50 points per asset, 200 for the
// portfolio, sampled at most once per second.
package history

import (
	"math/rand"
	"sync"
	"time"

	talib "github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/domain"
)

const (
	assetWindow     = 50
	portfolioWindow = 200

	// sampleInterval throttles how often any series accepts a new point.
	sampleInterval = time.Second
)

// Point is one sample of a charted series.
type Point struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// AssetSeries is the bounded price window of one asset.
type AssetSeries struct {
	Points []Point `json:"points"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Event marks a notable moment on the portfolio chart, such as a trade or
// a round boundary.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Value       float64   `json:"value"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
}

// Annotation is a free-form chart label.
type Annotation struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Text      string    `json:"text"`
}

// PortfolioSeries is the bounded net-worth window with its chart metadata.
// Min and max carry 10% padding so charts have headroom.
type PortfolioSeries struct {
	Points      []Point      `json:"points"`
	Events      []Event      `json:"events"`
	Annotations []Annotation `json:"annotations"`
	Min         float64      `json:"min"`
	Max         float64      `json:"max"`
	StartValue  float64      `json:"startValue"`
}

// Store holds all chart series for one game session.
type Store struct {
	mu         sync.RWMutex
	assets     map[string]*AssetSeries
	portfolio  PortfolioSeries
	lastSample time.Time
	log        zerolog.Logger
}

// NewStore creates an empty history store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		assets: make(map[string]*AssetSeries),
		log:    log.With().Str("component", "history").Logger(),
	}
}

// Init seeds an asset series with its starting price. Already-initialized
// series are left alone.
func (s *Store) Init(assetID string, price float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[assetID]; ok {
		return
	}
	s.assets[assetID] = &AssetSeries{
		Points: []Point{{Value: price, Timestamp: now}},
		Min:    price,
		Max:    price,
	}
}

// sampleDue reports whether the throttle window has passed, and advances
// it if so. Callers must hold the lock.
func (s *Store) sampleDue(now time.Time) bool {
	if !s.lastSample.IsZero() && now.Sub(s.lastSample) < sampleInterval {
		return false
	}
	s.lastSample = now
	return true
}

// RecordPrice appends a price sample. Samples arriving faster than the
// throttle interval are dropped. Returns whether the point was kept.
func (s *Store) RecordPrice(assetID string, price float64, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sampleDue(now) {
		return false
	}

	series, ok := s.assets[assetID]
	if !ok {
		s.assets[assetID] = &AssetSeries{
			Points: []Point{{Value: price, Timestamp: now}},
			Min:    price,
			Max:    price,
		}
		return true
	}

	series.Points = append(series.Points, Point{Value: price, Timestamp: now})
	if price < series.Min {
		series.Min = price
	}
	if price > series.Max {
		series.Max = price
	}

	if len(series.Points) > assetWindow {
		series.Points = series.Points[1:]
		series.Min = series.Points[0].Value
		series.Max = series.Points[0].Value
		for _, p := range series.Points[1:] {
			if p.Value < series.Min {
				series.Min = p.Value
			}
			if p.Value > series.Max {
				series.Max = p.Value
			}
		}
	}
	return true
}

// RecordNetWorth appends a portfolio sample, optionally flagged with an
// event. The first sample fixes the chart's start value.
func (s *Store) RecordNetWorth(value float64, now time.Time, event *Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sampleDue(now) {
		return false
	}

	if len(s.portfolio.Points) == 0 {
		s.portfolio.StartValue = value
		s.portfolio.Min = value * 0.9
		s.portfolio.Max = value * 1.1
	}

	s.portfolio.Points = append(s.portfolio.Points, Point{Value: value, Timestamp: now})
	if padded := value * 0.9; padded < s.portfolio.Min {
		s.portfolio.Min = padded
	}
	if padded := value * 1.1; padded > s.portfolio.Max {
		s.portfolio.Max = padded
	}

	if event != nil {
		e := *event
		e.Timestamp = now
		e.Value = value
		s.portfolio.Events = append(s.portfolio.Events, e)
	}

	if len(s.portfolio.Points) > portfolioWindow {
		s.portfolio.Points = s.portfolio.Points[1:]
	}
	return true
}

// Annotate adds a chart label at the given point.
func (s *Store) Annotate(text string, value float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolio.Annotations = append(s.portfolio.Annotations, Annotation{
		Timestamp: now,
		Value:     value,
		Text:      text,
	})
}

// Asset returns a copy of an asset's series.
func (s *Store) Asset(assetID string) (AssetSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.assets[assetID]
	if !ok {
		return AssetSeries{}, false
	}
	out := AssetSeries{
		Points: append([]Point(nil), series.Points...),
		Min:    series.Min,
		Max:    series.Max,
	}
	return out, true
}

// Portfolio returns a copy of the net-worth series.
func (s *Store) Portfolio() PortfolioSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.portfolio
	out.Points = append([]Point(nil), s.portfolio.Points...)
	out.Events = append([]Event(nil), s.portfolio.Events...)
	out.Annotations = append([]Annotation(nil), s.portfolio.Annotations...)
	return out
}

// Reset drops all series, for a fresh game.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = make(map[string]*AssetSeries)
	s.portfolio = PortfolioSeries{}
	s.lastSample = time.Time{}
}

// Indicators are derived statistics over an asset's price window.
type Indicators struct {
	SMA []float64 `json:"sma"`
	RSI []float64 `json:"rsi"`
}

// AssetIndicators computes a simple moving average and RSI over the
// asset's recorded window. Series shorter than the period return zero-value
// indicators.
func (s *Store) AssetIndicators(assetID string, period int) (Indicators, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.assets[assetID]
	if !ok {
		return Indicators{}, false
	}
	if len(series.Points) <= period {
		return Indicators{}, true
	}

	closes := make([]float64, len(series.Points))
	for i, p := range series.Points {
		closes[i] = p.Value
	}

	return Indicators{
		SMA: talib.Sma(closes, period),
		RSI: talib.Rsi(closes, period),
	}, true
}

// Sparkline synthesizes a smooth intermediate series between an asset's
// previous and current price for compact chart rendering. The first and
// last points are exact; the middle is a volatility-scaled random walk that
// settles toward the current price.
func Sparkline(rng *rand.Rand, asset domain.Asset, length int, now time.Time) []Point {
	if length < 2 {
		length = 2
	}

	start := now.Add(-time.Duration(length) * 500 * time.Millisecond)
	points := []Point{{Value: asset.PreviousPrice, Timestamp: start}}

	for i := 1; i < length-1; i++ {
		position := float64(i) / float64(length-1)

		trend := 0.0
		if position > 0.5 {
			trend = (position - 0.5) * 2
		}

		base := asset.PreviousPrice*(1-position) + asset.Price*position
		deviation := (rng.Float64() - 0.5) * asset.Volatility * asset.Price * 0.6

		points = append(points, Point{
			Value:     base + deviation*(1-trend),
			Timestamp: start.Add(time.Duration(i) * 500 * time.Millisecond),
		})
	}

	return append(points, Point{Value: asset.Price, Timestamp: now})
}
