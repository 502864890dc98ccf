package domain

import "time"

// Holding is the per-asset position. Long and short sides are tracked
// independently; both quantities stay non-negative. Average price fields are
// meaningful only while the matching quantity is positive.
type Holding struct {
	Quantity          float64 `json:"quantity"`
	AverageBuyPrice   float64 `json:"averageBuyPrice"`
	ShortQuantity     float64 `json:"shortQuantity"`
	AverageShortPrice float64 `json:"averageShortPrice"`
}

// Empty reports whether the holding carries no position on either side.
func (h Holding) Empty() bool {
	return h.Quantity == 0 && h.ShortQuantity == 0
}

// TradeSide is the closed set of portfolio operations.
type TradeSide string

const (
	SideBuy   TradeSide = "buy"
	SideSell  TradeSide = "sell"
	SideShort TradeSide = "short"
	SideCover TradeSide = "cover"
)

// ParseTradeSide validates a trade side string.
func ParseTradeSide(s string) (TradeSide, error) {
	switch TradeSide(s) {
	case SideBuy, SideSell, SideShort, SideCover:
		return TradeSide(s), nil
	}
	return "", ErrUnknownTradeSide
}

// NetWorthPoint is one sample of the portfolio value series.
type NetWorthPoint struct {
	Round     int       `json:"round"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}
