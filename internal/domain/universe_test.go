package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerForMatchesUniverse(t *testing.T) {
	assets := StartingAssets()
	require.Len(t, assets, 19)

	for _, asset := range assets {
		assert.Equal(t, asset.Ticker, TickerFor(asset.ID), asset.ID)
	}
}

func TestTickerForUnknownAssetIsEmpty(t *testing.T) {
	assert.Empty(t, TickerFor("stock-ghost"))
}
