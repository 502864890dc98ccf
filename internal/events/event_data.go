package events

// GameStartedData contains data for GameStarted events
type GameStartedData struct {
	StartingCash float64 `json:"starting_cash"`
	Assets       int     `json:"assets"`
}

// EventType returns the event type for GameStartedData
func (d *GameStartedData) EventType() EventType { return GameStarted }

// GameEndedData contains data for GameEnded events
type GameEndedData struct {
	FinalNetWorth float64 `json:"final_net_worth"`
	Rounds        int     `json:"rounds"`
}

// EventType returns the event type for GameEndedData
func (d *GameEndedData) EventType() EventType { return GameEnded }

// RoundAdvancedData contains data for RoundAdvanced events
type RoundAdvancedData struct {
	Round int `json:"round"`
}

// EventType returns the event type for RoundAdvancedData
func (d *RoundAdvancedData) EventType() EventType { return RoundAdvanced }

// TradeExecutedData contains data for TradeExecuted events. Handlers run
// synchronously while the session holds its lock, so the payload carries
// everything subscribers need instead of them snapshotting the session.
type TradeExecutedData struct {
	AssetID        string  `json:"asset_id"`
	Side           string  `json:"side"`
	Units          float64 `json:"units"`
	Price          float64 `json:"price"`
	NetWorth       float64 `json:"net_worth"`
	HeldCategories int     `json:"held_categories"`
}

// EventType returns the event type for TradeExecutedData
func (d *TradeExecutedData) EventType() EventType { return TradeExecuted }

// PricesUpdatedData contains data for PricesUpdated events
type PricesUpdatedData struct {
	Round  int `json:"round"`
	Assets int `json:"assets"`
}

// EventType returns the event type for PricesUpdatedData
func (d *PricesUpdatedData) EventType() EventType { return PricesUpdated }

// NewsPublishedData contains data for NewsPublished events
type NewsPublishedData struct {
	NewsID    string  `json:"news_id"`
	Title     string  `json:"title"`
	Sentiment string  `json:"sentiment"`
	Magnitude float64 `json:"magnitude"`
	BlackSwan bool    `json:"black_swan,omitempty"`
}

// EventType returns the event type for NewsPublishedData
func (d *NewsPublishedData) EventType() EventType { return NewsPublished }

// NewsExpiredData contains data for NewsExpired events
type NewsExpiredData struct {
	NewsID string `json:"news_id"`
}

// EventType returns the event type for NewsExpiredData
func (d *NewsExpiredData) EventType() EventType { return NewsExpired }

// NetWorthRecordedData contains data for NetWorthRecorded events
type NetWorthRecordedData struct {
	Round int     `json:"round"`
	Value float64 `json:"value"`
}

// EventType returns the event type for NetWorthRecordedData
func (d *NetWorthRecordedData) EventType() EventType { return NetWorthRecorded }

// MissionCompletedData contains data for MissionCompleted events
type MissionCompletedData struct {
	MissionID   string  `json:"mission_id"`
	MissionType string  `json:"mission_type"`
	Reward      string  `json:"reward,omitempty"`
	RewardValue float64 `json:"reward_value,omitempty"`
}

// EventType returns the event type for MissionCompletedData
func (d *MissionCompletedData) EventType() EventType { return MissionCompleted }

// MissionFailedData contains data for MissionFailed events
type MissionFailedData struct {
	MissionID   string `json:"mission_id"`
	MissionType string `json:"mission_type"`
}

// EventType returns the event type for MissionFailedData
func (d *MissionFailedData) EventType() EventType { return MissionFailed }

// HealthChangedData contains data for HealthChanged events
type HealthChangedData struct {
	Health float64 `json:"health"`
}

// EventType returns the event type for HealthChangedData
func (d *HealthChangedData) EventType() EventType { return HealthChanged }
