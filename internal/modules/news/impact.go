package news

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/domain"
)

const (
	// defaultDuration is used when a template defines no effect for an asset.
	defaultDuration = 30 * time.Second

	// fallbackImpactRange bounds the uniform noise applied when a template
	// has no effect entry at all for an asset.
	fallbackImpactRange = 0.2

	// snapThreshold: once the applied impact is this close to its target (or
	// to zero while decaying) it snaps the rest of the way.
	snapThreshold = 0.01

	bearMarketMultiplier = 1.5
	bullMarketMultiplier = 1.3
)

// Resolver turns a news template into a concrete per-asset impact and
// manages the gradual ramp-up and decay of that impact over ticks.
type Resolver struct {
	rng *rand.Rand
	log zerolog.Logger
}

// NewResolver creates an impact resolver with the given random source.
func NewResolver(rng *rand.Rand, log zerolog.Logger) *Resolver {
	return &Resolver{
		rng: rng,
		log: log.With().Str("component", "news_resolver").Logger(),
	}
}

// categoryFromID extracts the category prefix of an asset id such as
// "stock-tech" or "commodity-gold".
func categoryFromID(assetID string) (domain.AssetCategory, bool) {
	prefix, _, found := strings.Cut(assetID, "-")
	if !found {
		return "", false
	}
	category, err := domain.ParseCategory(prefix)
	if err != nil {
		return "", false
	}
	return category, true
}

// Resolve computes the percentage impact a template has on an asset.
// Resolution order: a specific-asset override, then the asset's ticker,
// then its category. Assets the template never mentions get small uniform
// noise so no instrument is ever perfectly insulated.
//
// The base impact is then scaled by the asset's volatility factor and by
// the market regime: negative news bites harder below 50 health, positive
// news runs further above it.
func (r *Resolver) Resolve(assetID string, tpl *Template, asset *domain.Asset, marketHealth float64) float64 {
	if tpl == nil || assetID == "" {
		return 0
	}

	base, ok := tpl.SpecificAssets[assetID]
	if !ok {
		if effect, found := tpl.TickerEffects[domain.TickerFor(assetID)]; found {
			base = effect.Change.Pick(r.rng)
		} else if category, valid := categoryFromID(assetID); valid {
			if effect, found := tpl.CategoryEffects[category]; found {
				base = effect.Change.Pick(r.rng)
			} else {
				base = (r.rng.Float64() - 0.5) * fallbackImpactRange
			}
		} else {
			base = (r.rng.Float64() - 0.5) * fallbackImpactRange
		}
	}

	impact := base
	if asset != nil && asset.Volatility != 0 {
		impact = base * (1 + asset.Volatility)
	}

	switch {
	case impact < 0 && marketHealth < 50:
		impact *= bearMarketMultiplier
	case impact > 0 && marketHealth > 50:
		impact *= bullMarketMultiplier
	}

	return impact
}

// Duration returns how long a template's effect on an asset lasts.
func (r *Resolver) Duration(assetID string, tpl *Template) time.Duration {
	if tpl == nil || assetID == "" {
		return defaultDuration
	}

	if effect, found := tpl.TickerEffects[domain.TickerFor(assetID)]; found {
		return time.Duration(effect.Duration.Pick(r.rng) * float64(time.Second))
	}

	if category, valid := categoryFromID(assetID); valid {
		if effect, found := tpl.CategoryEffects[category]; found {
			return time.Duration(effect.Duration.Pick(r.rng) * float64(time.Second))
		}
	}

	return defaultDuration
}

// PrepareGradualImpact initializes the ramp state on a freshly published
// item: the impact starts at zero and builds toward baseImpact tick by
// tick. Black swans ramp fastest, then high-magnitude items, then the rest;
// black-swan effects also linger longest once the item goes inactive.
func PrepareGradualImpact(item *domain.NewsItem, baseImpact float64) {
	item.TargetImpact = baseImpact
	item.AppliedImpact = 0

	scale := math.Abs(baseImpact)
	switch {
	case item.IsBlackSwan:
		item.ImpactRate = scale * 0.3
	case item.Magnitude > 0.7:
		item.ImpactRate = scale * 0.2
	default:
		item.ImpactRate = scale * 0.1
	}

	if item.IsBlackSwan {
		item.DecayRate = scale * 0.05
	} else {
		item.DecayRate = scale * 0.15
	}
}

// AdvanceImpact moves the item's applied impact one tick: toward the target
// while the item is active, back toward zero once it expires. Within the
// snap threshold the value jumps straight to its endpoint so impacts never
// asymptote forever. Returns the impact now in effect.
func AdvanceImpact(item *domain.NewsItem) float64 {
	if item.TargetImpact == 0 && item.AppliedImpact == 0 {
		return 0
	}

	current := item.AppliedImpact

	if item.Active {
		rate := item.ImpactRate
		if rate == 0 {
			rate = math.Abs(item.TargetImpact) * 0.1
		}
		remaining := item.TargetImpact - current
		if math.Abs(remaining) < snapThreshold {
			current = item.TargetImpact
		} else {
			step := math.Min(rate, math.Abs(remaining))
			current += math.Copysign(step, remaining)
		}
	} else {
		rate := item.DecayRate
		if rate == 0 {
			rate = math.Abs(current) * 0.15
		}
		if math.Abs(current) < snapThreshold {
			current = 0
		} else {
			step := math.Min(rate, math.Abs(current))
			current -= math.Copysign(step, current)
		}
	}

	item.AppliedImpact = current
	return current
}
