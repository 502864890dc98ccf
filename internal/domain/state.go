package domain

import "time"

// GameState is the single mutable aggregate of a session. All engine
// operations are pure transitions over it; the orchestrator is the only
// writer, everything else reads snapshots.
type GameState struct {
	Assets   []Asset            `json:"assets"`
	Cash     float64            `json:"cash"`
	Holdings map[string]Holding `json:"holdings"`

	Round         int           `json:"round"`
	TimeRemaining time.Duration `json:"timeRemaining"`
	Paused        bool          `json:"isPaused"`
	GameOver      bool          `json:"isGameOver"`

	News       []NewsItem `json:"news"`       // full log, retained for history
	ActiveNews []NewsItem `json:"activeNews"` // subset still contributing to drift

	NetWorthHistory []NetWorthPoint `json:"netWorthHistory"`

	// MarketHealth is a 0..100 regime scalar: below 50 bear, above 50 bull.
	MarketHealth float64 `json:"marketHealth"`

	Missions          map[int][]Mission  `json:"missions"` // round -> batch, built at game start
	ActiveMissions    []Mission          `json:"activeMissions"`
	CompletedMissions []Mission          `json:"completedMissions"`
	MissionRewards    map[string]float64 `json:"missionRewards"` // mission type -> reward value

	LastPriceUpdate time.Time `json:"-"`
}

// Asset returns the asset with the given id, nil when unknown.
func (s *GameState) Asset(id string) *Asset {
	for i := range s.Assets {
		if s.Assets[i].ID == id {
			return &s.Assets[i]
		}
	}
	return nil
}

// Holding returns the position for the asset, zero-valued when absent.
func (s *GameState) Holding(assetID string) Holding {
	return s.Holdings[assetID]
}

// ActiveNewsFor returns the active news items impacting the asset.
func (s *GameState) ActiveNewsFor(assetID string) []NewsItem {
	var out []NewsItem
	for _, n := range s.ActiveNews {
		if n.Impacts(assetID) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy of the state. Snapshots handed to readers must
// not alias the orchestrator's maps and slices.
func (s *GameState) Clone() GameState {
	out := *s
	out.Assets = append([]Asset(nil), s.Assets...)
	out.News = append([]NewsItem(nil), s.News...)
	out.ActiveNews = append([]NewsItem(nil), s.ActiveNews...)
	out.NetWorthHistory = append([]NetWorthPoint(nil), s.NetWorthHistory...)
	out.ActiveMissions = append([]Mission(nil), s.ActiveMissions...)
	out.CompletedMissions = append([]Mission(nil), s.CompletedMissions...)

	out.Holdings = make(map[string]Holding, len(s.Holdings))
	for k, v := range s.Holdings {
		out.Holdings[k] = v
	}
	out.MissionRewards = make(map[string]float64, len(s.MissionRewards))
	for k, v := range s.MissionRewards {
		out.MissionRewards[k] = v
	}
	out.Missions = make(map[int][]Mission, len(s.Missions))
	for round, batch := range s.Missions {
		out.Missions[round] = append([]Mission(nil), batch...)
	}
	return out
}
