package news

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderoyale/engine/internal/domain"
)

func newTestGenerator(seed int64) *Generator {
	rng := rand.New(rand.NewSource(seed))
	return NewGenerator(rng, NewResolver(rng, zerolog.Nop()), zerolog.Nop())
}

func TestGenerateProducesActiveItemFromCatalog(t *testing.T) {
	gen := newTestGenerator(1)
	assets := domain.StartingAssets()
	now := time.Now()

	for i := 0; i < 200; i++ {
		item := gen.Generate(assets, 1, now)
		require.NotEmpty(t, item.ID)
		require.True(t, item.Active)
		assert.NotEmpty(t, item.Title)
		assert.Contains(t, []string{"Asset", "Market"}, item.Source)
		if item.TemplateID != "" {
			require.NotNil(t, TemplateByID(item.TemplateID))
		}
	}
}

func TestGenerateAssetNewsListsPrimaryAssetFirst(t *testing.T) {
	gen := newTestGenerator(2)
	assets := domain.StartingAssets()
	now := time.Now()

	sawAssetNews := false
	for i := 0; i < 100; i++ {
		item := gen.Generate(assets, 1, now)
		if item.Source != "Asset" {
			continue
		}
		sawAssetNews = true
		require.NotEmpty(t, item.ImpactedAssets)
		// Every listed asset is a real instrument.
		for _, id := range item.ImpactedAssets {
			require.NotNil(t, findAsset(t, assets, id))
		}
	}
	assert.True(t, sawAssetNews)
}

func findAsset(t *testing.T, assets []domain.Asset, id string) *domain.Asset {
	t.Helper()
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i]
		}
	}
	return nil
}

func TestGenerateUniqueIDs(t *testing.T) {
	gen := newTestGenerator(3)
	assets := domain.StartingAssets()
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		item := gen.Generate(assets, 1, now)
		require.False(t, seen[item.ID], "duplicate news id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestGenerateFillerWithoutAssets(t *testing.T) {
	gen := newTestGenerator(4)
	item := gen.Generate(nil, 2, time.Now())

	assert.Equal(t, "Market Update", item.Title)
	assert.Equal(t, domain.SentimentNeutral, item.Sentiment)
	assert.InDelta(t, 0.1, item.Magnitude, 1e-9)
	assert.Empty(t, item.ImpactedAssets)
	assert.True(t, item.Active)
}

func TestGenerateBlackSwanNeverFiresInEarlyRounds(t *testing.T) {
	gen := newTestGenerator(5)
	assets := domain.StartingAssets()
	now := time.Now()

	for round := 0; round < blackSwanMinRound; round++ {
		for i := 0; i < 1000; i++ {
			require.Nil(t, gen.GenerateBlackSwan(assets, round, now))
		}
	}
}

func TestGenerateBlackSwanIsRareAndMarketWide(t *testing.T) {
	gen := newTestGenerator(6)
	assets := domain.StartingAssets()
	now := time.Now()

	fired := 0
	for i := 0; i < 20000; i++ {
		swan := gen.GenerateBlackSwan(assets, 5, now)
		if swan == nil {
			continue
		}
		fired++
		assert.True(t, swan.IsBlackSwan)
		assert.Equal(t, "BREAKING", swan.Source)
		assert.Len(t, swan.ImpactedAssets, len(assets))
		assert.Greater(t, swan.AftershockProbability, 0.0)
		assert.Greater(t, swan.AftershockDelay, time.Duration(0))
	}

	// 0.5% of 20000 rolls is ~100 events; allow generous slack.
	assert.Greater(t, fired, 40)
	assert.Less(t, fired, 220)
}

func TestGenerateAftershockDerivesFromOriginal(t *testing.T) {
	gen := newTestGenerator(7)
	now := time.Now()

	original := &domain.NewsItem{
		ID:                    "orig",
		TemplateID:            "global-financial-crisis",
		Title:                 "BREAKING: Global Financial Crisis Unfolds",
		Sentiment:             domain.SentimentNegative,
		Magnitude:             1.0,
		ImpactedAssets:        []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		AftershockProbability: 0.8,
		AftershockDelay:       20 * time.Second,
	}

	shock := gen.GenerateAftershock(original, 5, now)

	assert.Contains(t, shock.Title, "Aftershock")
	assert.NotContains(t, shock.Title, "BREAKING")
	assert.Equal(t, domain.SentimentNegative, shock.Sentiment)
	assert.InDelta(t, 0.7, shock.Magnitude, 1e-9)
	assert.Len(t, shock.ImpactedAssets, 7)
	assert.InDelta(t, 0.4, shock.AftershockProbability, 1e-9)
	assert.Equal(t, 20*time.Second, shock.AftershockDelay)

	for _, id := range shock.ImpactedAssets {
		assert.Contains(t, original.ImpactedAssets, id)
	}
}

func TestGenerateAftershockPositiveUsesAftermathTitle(t *testing.T) {
	gen := newTestGenerator(8)
	original := &domain.NewsItem{
		Title:          "HISTORIC: World Peace Agreement Signed",
		Sentiment:      domain.SentimentPositive,
		Magnitude:      0.9,
		ImpactedAssets: []string{"a", "b"},
	}

	shock := gen.GenerateAftershock(original, 6, time.Now())
	assert.Contains(t, shock.Title, "Aftermath")
	assert.NotContains(t, shock.Title, "HISTORIC")
}

func TestImplicitlyImpactedExpandsBySubtype(t *testing.T) {
	gen := newTestGenerator(9)
	assets := []domain.Asset{
		{ID: "stock-tech"},
		{ID: "crypto-tech"},
		{ID: "commodity-gold"},
	}

	item := &domain.NewsItem{
		Magnitude:      0.7,
		ImpactedAssets: []string{"stock-tech"},
	}

	expanded := gen.ImplicitlyImpacted(item, assets)
	assert.Contains(t, expanded, "stock-tech")
	assert.Contains(t, expanded, "crypto-tech")
	assert.NotContains(t, expanded, "commodity-gold")
}

func TestImplicitlyImpactedLowMagnitudeUnchanged(t *testing.T) {
	gen := newTestGenerator(10)
	assets := domain.StartingAssets()

	item := &domain.NewsItem{
		Magnitude:      0.3,
		ImpactedAssets: []string{"stock-tech"},
	}

	assert.Equal(t, []string{"stock-tech"}, gen.ImplicitlyImpacted(item, assets))
}
