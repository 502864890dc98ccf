// Package domain holds the shared types of the game engine: assets, news,
// holdings, missions and the game-state aggregate.
package domain

import "fmt"

// AssetCategory classifies a tradable instrument.
type AssetCategory string

const (
	CategoryStock     AssetCategory = "stock"
	CategoryCommodity AssetCategory = "commodity"
	CategoryCrypto    AssetCategory = "crypto"
)

// Categories lists every asset category. Order is stable and used wherever
// exhaustive iteration matters (correlation matrix, diversification counts).
func Categories() []AssetCategory {
	return []AssetCategory{CategoryStock, CategoryCommodity, CategoryCrypto}
}

// ParseCategory validates a category string.
func ParseCategory(s string) (AssetCategory, error) {
	switch AssetCategory(s) {
	case CategoryStock:
		return CategoryStock, nil
	case CategoryCommodity:
		return CategoryCommodity, nil
	case CategoryCrypto:
		return CategoryCrypto, nil
	}
	return "", fmt.Errorf("unknown asset category %q", s)
}

// BaseVolatility returns the calibrated daily volatility for the category.
// Values come from real market data: ~1.72% for stocks, ~1.54% for
// commodities, ~3.47% for cryptocurrencies.
func (c AssetCategory) BaseVolatility() float64 {
	switch c {
	case CategoryStock:
		return 0.0172
	case CategoryCommodity:
		return 0.0154
	case CategoryCrypto:
		return 0.0347
	}
	return 0.01
}

// Asset is one tradable instrument. Identity fields are immutable; price
// fields are mutated only by the pricing model.
type Asset struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Ticker      string        `json:"ticker"`
	Category    AssetCategory `json:"category"`
	Description string        `json:"description"`

	Price         float64 `json:"price"`
	PreviousPrice float64 `json:"previousPrice"`
	// Volatility is the per-asset calibration factor in [0,1] applied on top
	// of the category base volatility.
	Volatility float64 `json:"volatility"`
}

// Change returns the price move of the last tick as a fraction.
func (a Asset) Change() float64 {
	if a.PreviousPrice == 0 {
		return 0
	}
	return (a.Price - a.PreviousPrice) / a.PreviousPrice
}
