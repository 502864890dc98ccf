// Package portfolio implements trade settlement and valuation. All
// functions are pure: they take the current cash and holding, validate the
// order, and return the settled result without touching shared state.
package portfolio

import (
	"github.com/traderoyale/engine/internal/domain"
)

// Apply settles a trade of the given side against one holding. It returns
// the updated cash balance and holding, or an error that leaves both
// unchanged: orders the player cannot afford or cover are rejected, never
// partially filled.
func Apply(side domain.TradeSide, cash float64, holding domain.Holding, units, price float64) (float64, domain.Holding, error) {
	if units <= 0 {
		return cash, holding, domain.ErrInvalidUnits
	}

	switch side {
	case domain.SideBuy:
		return buy(cash, holding, units, price)
	case domain.SideSell:
		return sell(cash, holding, units, price)
	case domain.SideShort:
		return short(cash, holding, units, price)
	case domain.SideCover:
		return cover(cash, holding, units, price)
	}
	return cash, holding, domain.ErrUnknownTradeSide
}

// buy spends cash on units and folds the cost into the weighted average
// buy price.
func buy(cash float64, holding domain.Holding, units, price float64) (float64, domain.Holding, error) {
	cost := units * price
	if cost > cash {
		return cash, holding, domain.ErrInsufficientCash
	}

	quantity := holding.Quantity + units
	holding.AverageBuyPrice = (holding.AverageBuyPrice*holding.Quantity + cost) / quantity
	holding.Quantity = quantity
	return cash - cost, holding, nil
}

// sell liquidates units at the given price. The average buy price is left
// untouched so the remaining position keeps its cost basis.
func sell(cash float64, holding domain.Holding, units, price float64) (float64, domain.Holding, error) {
	if units > holding.Quantity {
		return cash, holding, domain.ErrInsufficientUnits
	}

	holding.Quantity -= units
	return cash + units*price, holding, nil
}

// short opens or extends a short position: proceeds are credited up front
// and folded into the weighted average short price.
func short(cash float64, holding domain.Holding, units, price float64) (float64, domain.Holding, error) {
	proceeds := units * price
	quantity := holding.ShortQuantity + units
	holding.AverageShortPrice = (holding.AverageShortPrice*holding.ShortQuantity + proceeds) / quantity
	holding.ShortQuantity = quantity
	return cash + proceeds, holding, nil
}

// cover buys back shorted units. Requires both an open short of at least
// that size and the cash to pay for the buyback.
func cover(cash float64, holding domain.Holding, units, price float64) (float64, domain.Holding, error) {
	if units > holding.ShortQuantity {
		return cash, holding, domain.ErrInsufficientShort
	}
	cost := units * price
	if cost > cash {
		return cash, holding, domain.ErrInsufficientCash
	}

	holding.ShortQuantity -= units
	return cash - cost, holding, nil
}

// NetWorth values the whole portfolio at current prices: cash, plus long
// positions at market, plus the unrealized profit of open shorts. Holdings
// whose asset is missing from the price list are skipped.
func NetWorth(cash float64, holdings map[string]domain.Holding, assets []domain.Asset) float64 {
	prices := make(map[string]float64, len(assets))
	for _, asset := range assets {
		prices[asset.ID] = asset.Price
	}

	netWorth := cash
	for assetID, holding := range holdings {
		price, ok := prices[assetID]
		if !ok {
			continue
		}
		netWorth += holding.Quantity * price
		if holding.ShortQuantity > 0 {
			netWorth += holding.ShortQuantity * (holding.AverageShortPrice - price)
		}
	}
	return netWorth
}

// PositionValue is the unrealized profit of a long position.
func PositionValue(quantity, averagePrice, currentPrice float64) float64 {
	return quantity * (currentPrice - averagePrice)
}

// Allocation returns the share of the portfolio an asset position
// represents, in percent.
func Allocation(assetValue, totalPortfolioValue float64) float64 {
	if totalPortfolioValue == 0 {
		return 0
	}
	return assetValue / totalPortfolioValue * 100
}

// HeldCategories counts the distinct asset categories with a positive long
// position, the measure used by diversification missions.
func HeldCategories(holdings map[string]domain.Holding, assets []domain.Asset) int {
	byID := make(map[string]domain.AssetCategory, len(assets))
	for _, asset := range assets {
		byID[asset.ID] = asset.Category
	}

	seen := make(map[domain.AssetCategory]bool)
	for assetID, holding := range holdings {
		if holding.Quantity <= 0 {
			continue
		}
		if category, ok := byID[assetID]; ok {
			seen[category] = true
		}
	}
	return len(seen)
}
