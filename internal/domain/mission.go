package domain

// MissionType is the closed set of per-round objective archetypes.
type MissionType string

const (
	MissionDiversify          MissionType = "diversify"
	MissionSurviveCrash       MissionType = "survive-crash"
	MissionReactToNews        MissionType = "react-to-news"
	MissionFlightToSafety     MissionType = "flight-to-safety"
	MissionGovernmentStimulus MissionType = "government-stimulus"
	MissionMarketTiming       MissionType = "market-timing"
	MissionValueInvesting     MissionType = "value-investing"
	MissionShortSelling       MissionType = "short-selling"
	MissionSectorRotation     MissionType = "sector-rotation"
	MissionRiskManagement     MissionType = "risk-management"
)

// MissionTypes lists every mission archetype.
func MissionTypes() []MissionType {
	return []MissionType{
		MissionDiversify,
		MissionSurviveCrash,
		MissionReactToNews,
		MissionFlightToSafety,
		MissionGovernmentStimulus,
		MissionMarketTiming,
		MissionValueInvesting,
		MissionShortSelling,
		MissionSectorRotation,
		MissionRiskManagement,
	}
}

// MissionStatus tracks mission lifecycle. Transitions are one-directional:
// active missions either complete or fail, and terminal states are final.
type MissionStatus string

const (
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionFailed    MissionStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s MissionStatus) Terminal() bool {
	return s == MissionCompleted || s == MissionFailed
}

// Mission is a per-round optional objective with a reward applied once on
// completion.
type Mission struct {
	ID          string        `json:"id"`
	Type        MissionType   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Round       int           `json:"round"`
	Status      MissionStatus `json:"status"`
	Reward      string        `json:"reward,omitempty"`
	RewardValue float64       `json:"rewardValue,omitempty"`
	Icon        string        `json:"icon,omitempty"`

	ProgressRequired int `json:"progressRequired,omitempty"`
	CurrentProgress  int `json:"currentProgress,omitempty"`
}
