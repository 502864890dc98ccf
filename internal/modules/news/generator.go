package news

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/domain"
)

const (
	// assetNewsProbability is the share of generated items targeted at a
	// single asset; the rest is broad market news.
	assetNewsProbability = 0.6

	// spilloverThreshold: secondary assets whose resolved impact exceeds
	// this are listed as impacted alongside the primary target.
	spilloverThreshold = 0.5

	// Black swans never fire before this round, and only this often.
	blackSwanMinRound    = 3
	blackSwanProbability = 0.005

	aftershockAssetShare     = 0.7
	aftershockMagnitudeShare = 0.7
)

// Generator produces news items from the template catalog.
type Generator struct {
	rng      *rand.Rand
	resolver *Resolver
	log      zerolog.Logger
}

// NewGenerator creates a news generator sharing the resolver's random
// source so a seeded run is fully reproducible.
func NewGenerator(rng *rand.Rand, resolver *Resolver, log zerolog.Logger) *Generator {
	return &Generator{
		rng:      rng,
		resolver: resolver,
		log:      log.With().Str("component", "news_generator").Logger(),
	}
}

// TemplateByID finds a template in any catalog. Returns nil for ids it does
// not know, which includes synthetic items like fillers and aftershocks.
func TemplateByID(id string) *Template {
	for i := range categoryTemplates {
		if categoryTemplates[i].ID == id {
			return &categoryTemplates[i]
		}
	}
	for i := range tickerTemplates {
		if tickerTemplates[i].ID == id {
			return &tickerTemplates[i]
		}
	}
	for i := range blackSwanTemplates {
		if blackSwanTemplates[i].ID == id {
			return &blackSwanTemplates[i].Template
		}
	}
	return nil
}

// assetTemplates returns the templates that can target the given asset, in
// narrowing order of specificity: templates naming the asset directly,
// then templates keyed by its ticker, then any template whose category
// effect meaningfully moves the asset's category.
func assetTemplates(assetID string) []*Template {
	var out []*Template
	for i := range categoryTemplates {
		if _, ok := categoryTemplates[i].SpecificAssets[assetID]; ok {
			out = append(out, &categoryTemplates[i])
		}
	}
	if len(out) > 0 {
		return out
	}

	if ticker := domain.TickerFor(assetID); ticker != "" {
		for i := range tickerTemplates {
			if _, ok := tickerTemplates[i].TickerEffects[ticker]; ok {
				out = append(out, &tickerTemplates[i])
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	category, valid := categoryFromID(assetID)
	if !valid {
		return nil
	}
	for i := range categoryTemplates {
		if categoryTemplates[i].CategoryEffects[category].Applicable() {
			out = append(out, &categoryTemplates[i])
		}
	}
	return out
}

// generalTemplates returns templates broad enough to count as market-wide
// news: category templates that move at least two categories, and ticker
// templates that touch at least three tickers.
func generalTemplates() []*Template {
	var out []*Template
	for i := range categoryTemplates {
		applicable := 0
		for _, category := range domain.Categories() {
			if categoryTemplates[i].CategoryEffects[category].Applicable() {
				applicable++
			}
		}
		if applicable >= 2 {
			out = append(out, &categoryTemplates[i])
		}
	}
	for i := range tickerTemplates {
		if len(tickerTemplates[i].TickerEffects) >= 3 {
			out = append(out, &tickerTemplates[i])
		}
	}
	return out
}

// Generate produces the next news item. Most items target a single asset;
// the rest are market-wide. When no template fits, a neutral filler item is
// published instead so the news feed never stalls.
func (g *Generator) Generate(assets []domain.Asset, round int, now time.Time) domain.NewsItem {
	if len(assets) == 0 {
		g.log.Error().Int("round", round).Msg("no assets available for news generation")
		return g.filler(round, now)
	}

	var (
		tpl            *Template
		primaryAssetID string
		source         string
	)

	if g.rng.Float64() < assetNewsProbability {
		primaryAssetID = assets[g.rng.Intn(len(assets))].ID
		templates := assetTemplates(primaryAssetID)
		if len(templates) == 0 {
			g.log.Warn().Str("asset_id", primaryAssetID).Msg("no news templates for asset")
			return g.filler(round, now)
		}
		tpl = templates[g.rng.Intn(len(templates))]
		source = "Asset"
	} else {
		templates := generalTemplates()
		if len(templates) == 0 {
			return g.filler(round, now)
		}
		tpl = templates[g.rng.Intn(len(templates))]
		primaryAssetID = g.pickPrimaryAsset(tpl, assets)
		source = "Market"
	}

	impacted := []string{primaryAssetID}
	for _, asset := range assets {
		if asset.ID == primaryAssetID {
			continue
		}
		// Regime-neutral resolution: spillover membership should not depend
		// on the current market health.
		if effect := g.resolver.Resolve(asset.ID, tpl, nil, 50); absFloat(effect) > spilloverThreshold {
			impacted = append(impacted, asset.ID)
		}
	}

	item := domain.NewsItem{
		ID:             uuid.New().String(),
		TemplateID:     tpl.ID,
		Title:          tpl.Title,
		Content:        tpl.Content,
		Source:         source,
		Sentiment:      tpl.Sentiment,
		Magnitude:      tpl.Magnitude,
		ImpactedAssets: impacted,
		Timestamp:      now,
		Active:         true,
	}

	g.log.Debug().
		Str("template_id", tpl.ID).
		Str("primary_asset", primaryAssetID).
		Int("impacted", len(impacted)).
		Msg("news generated")

	return item
}

// pickPrimaryAsset chooses the headline asset of a market-wide item: the
// one the template hits hardest, or a random asset when nothing stands out.
func (g *Generator) pickPrimaryAsset(tpl *Template, assets []domain.Asset) string {
	if len(tpl.CategoryEffects) > 0 {
		var candidates []string
		for _, asset := range assets {
			category, valid := categoryFromID(asset.ID)
			if !valid {
				continue
			}
			effect, found := tpl.CategoryEffects[category]
			if found && absFloat(effect.Change.First()) > 1.0 {
				candidates = append(candidates, asset.ID)
			}
		}
		if len(candidates) > 0 {
			return candidates[g.rng.Intn(len(candidates))]
		}
		return assets[g.rng.Intn(len(assets))].ID
	}

	byTicker := make(map[string]string, len(assets))
	for _, asset := range assets {
		if ticker := domain.TickerFor(asset.ID); ticker != "" {
			byTicker[ticker] = asset.ID
		}
	}

	var highImpact []string
	for ticker, effect := range tpl.TickerEffects {
		if absFloat(effect.Change.First()) > 3.0 {
			if id, ok := byTicker[ticker]; ok {
				highImpact = append(highImpact, id)
			}
		}
	}
	if len(highImpact) > 0 {
		return highImpact[g.rng.Intn(len(highImpact))]
	}
	return assets[g.rng.Intn(len(assets))].ID
}

// filler is the quiet-market fallback item.
func (g *Generator) filler(round int, now time.Time) domain.NewsItem {
	return domain.NewsItem{
		ID:        uuid.New().String(),
		Title:     "Market Update",
		Content:   "Markets are trading normally with no significant events to report.",
		Source:    "Market",
		Sentiment: domain.SentimentNeutral,
		Magnitude: 0.1,
		Timestamp: now,
		Active:    true,
	}
}

// GenerateBlackSwan rolls for a market-wide shock. Returns nil almost
// always: black swans never fire before round 3 and carry a 0.5% chance per
// roll after that. When one fires it impacts every asset.
func (g *Generator) GenerateBlackSwan(assets []domain.Asset, round int, now time.Time) *domain.NewsItem {
	if round < blackSwanMinRound || g.rng.Float64() > blackSwanProbability {
		return nil
	}

	tpl := blackSwanTemplates[g.rng.Intn(len(blackSwanTemplates))]

	impacted := make([]string, len(assets))
	for i, asset := range assets {
		impacted[i] = asset.ID
	}

	item := &domain.NewsItem{
		ID:                    uuid.New().String(),
		TemplateID:            tpl.ID,
		Title:                 tpl.Title,
		Content:               tpl.Content,
		Source:                "BREAKING",
		Sentiment:             tpl.Sentiment,
		Magnitude:             tpl.Magnitude,
		ImpactedAssets:        impacted,
		Timestamp:             now,
		Active:                true,
		IsBlackSwan:           true,
		CircuitBreaker:        tpl.CircuitBreaker,
		AftershockProbability: tpl.AftershockProbability,
		AftershockDelay:       tpl.AftershockDelay,
	}

	g.log.Warn().
		Str("template_id", tpl.ID).
		Int("round", round).
		Msg("black swan event triggered")

	return item
}

// GenerateAftershock derives a follow-up event from an earlier shock: a
// random 70% subset of the original's assets, 70% of its magnitude, the
// same sentiment, and half the original's chance of chaining further.
func (g *Generator) GenerateAftershock(original *domain.NewsItem, round int, now time.Time) domain.NewsItem {
	count := len(original.ImpactedAssets) * 7 / 10
	if count < 1 {
		count = 1
	}

	shuffled := make([]string, len(original.ImpactedAssets))
	copy(shuffled, original.ImpactedAssets)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	base := stripHeadlinePrefix(original.Title)
	var title, content string
	if original.Sentiment == domain.SentimentPositive {
		title = fmt.Sprintf("Aftermath: Markets Adjust to %s", base)
		content = fmt.Sprintf("Continued effects from recent %s lead to further market adjustments.", strings.ToLower(original.Title))
	} else {
		title = fmt.Sprintf("Aftershock: %s Continues", base)
		content = fmt.Sprintf("Markets continue to react as the full impact of the %s unfolds.", strings.ToLower(original.Title))
	}

	chainProbability := original.AftershockProbability
	if chainProbability == 0 {
		chainProbability = 0.5
	}

	return domain.NewsItem{
		ID:                    uuid.New().String(),
		TemplateID:            original.TemplateID,
		Title:                 title,
		Content:               content,
		Source:                "Market",
		Sentiment:             original.Sentiment,
		Magnitude:             original.Magnitude * aftershockMagnitudeShare,
		ImpactedAssets:        shuffled[:count],
		Timestamp:             now,
		Active:                true,
		AftershockProbability: chainProbability * 0.5,
		AftershockDelay:       original.AftershockDelay,
	}
}

// ImplicitlyImpacted expands an item's impact list with assets that share a
// subtype with an impacted asset (for items above 0.6 magnitude), and with
// same-category assets with 30% probability for items above 0.8.
func (g *Generator) ImplicitlyImpacted(item *domain.NewsItem, assets []domain.Asset) []string {
	if item == nil || len(assets) == 0 || len(item.ImpactedAssets) == 0 {
		return nil
	}

	impacted := make([]string, len(item.ImpactedAssets))
	copy(impacted, item.ImpactedAssets)

	seen := make(map[string]bool, len(impacted))
	categories := make(map[string]bool)
	subtypes := make(map[string]bool)
	for _, id := range impacted {
		seen[id] = true
		if category, subtype, ok := splitAssetID(id); ok {
			categories[category] = true
			subtypes[subtype] = true
		}
	}

	for _, asset := range assets {
		if seen[asset.ID] {
			continue
		}
		category, subtype, ok := splitAssetID(asset.ID)
		if !ok {
			continue
		}
		if subtypes[subtype] && item.Magnitude > 0.6 {
			impacted = append(impacted, asset.ID)
		} else if categories[category] && item.Magnitude > 0.8 && g.rng.Float64() < 0.3 {
			impacted = append(impacted, asset.ID)
		}
	}

	return impacted
}

// stripHeadlinePrefix removes the alarm prefix from a black-swan headline.
func stripHeadlinePrefix(title string) string {
	for _, prefix := range []string{"BREAKING: ", "HISTORIC: ", "CRISIS: ", "ALERT: ", "BREAKTHROUGH: "} {
		title = strings.ReplaceAll(title, prefix, "")
	}
	return title
}

func splitAssetID(assetID string) (category, subtype string, ok bool) {
	category, subtype, ok = strings.Cut(assetID, "-")
	if !ok || category == "" || subtype == "" {
		return "", "", false
	}
	return category, subtype, true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
