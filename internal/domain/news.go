package domain

import "time"

// Sentiment describes the tone of a news item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
	SentimentHumorous Sentiment = "humorous"
)

// Direction returns the signed drift factor of the sentiment: +1 for
// positive, -1 for negative, 0 otherwise (neutral, mixed and humorous news
// move prices only through their resolved per-asset impact).
func (s Sentiment) Direction() float64 {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	}
	return 0
}

// NewsItem is a published market event. Generated by the news generator,
// its gradual-impact fields are advanced in place every tick until the item
// has fully decayed.
type NewsItem struct {
	ID             string    `json:"id"`
	TemplateID     string    `json:"templateId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Source         string    `json:"source"`
	Sentiment      Sentiment `json:"sentiment"`
	Magnitude      float64   `json:"magnitude"` // 0..1 severity
	ImpactedAssets []string  `json:"impactedAssets"`
	Timestamp      time.Time `json:"timestamp"`
	Active         bool      `json:"isActive"`

	// Black-swan metadata
	IsBlackSwan           bool          `json:"isBlackSwan,omitempty"`
	CircuitBreaker        bool          `json:"circuitBreaker,omitempty"`
	AftershockProbability float64       `json:"aftershockProbability,omitempty"`
	AftershockDelay       time.Duration `json:"aftershockDelay,omitempty"`

	// Gradual-impact state: AppliedImpact ramps toward TargetImpact at
	// ImpactRate per tick while active, then decays to zero at DecayRate.
	TargetImpact  float64 `json:"targetImpact,omitempty"`
	AppliedImpact float64 `json:"appliedImpact,omitempty"`
	ImpactRate    float64 `json:"impactRate,omitempty"`
	DecayRate     float64 `json:"decayRate,omitempty"`
}

// Impacts reports whether the news item touches the given asset.
func (n *NewsItem) Impacts(assetID string) bool {
	for _, id := range n.ImpactedAssets {
		if id == assetID {
			return true
		}
	}
	return false
}

// Age returns the time elapsed since publication.
func (n *NewsItem) Age(now time.Time) time.Duration {
	return now.Sub(n.Timestamp)
}

// Decayed reports whether an inactive item's applied impact has faded away
// and the item is eligible for removal from the active set.
func (n *NewsItem) Decayed() bool {
	return !n.Active && n.AppliedImpact == 0
}
