// Package events provides the in-process event bus of the engine.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	GameStarted      EventType = "GAME_STARTED"
	GameEnded        EventType = "GAME_ENDED"
	RoundAdvanced    EventType = "ROUND_ADVANCED"
	PricesUpdated    EventType = "PRICES_UPDATED"
	NewsPublished    EventType = "NEWS_PUBLISHED"
	NewsExpired      EventType = "NEWS_EXPIRED"
	TradeExecuted    EventType = "TRADE_EXECUTED"
	NetWorthRecorded EventType = "NET_WORTH_RECORDED"
	MissionCompleted EventType = "MISSION_COMPLETED"
	MissionFailed    EventType = "MISSION_FAILED"
	HealthChanged    EventType = "MARKET_HEALTH_CHANGED"
)

// Event represents a system event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data,omitempty"`
}

// EventData is the interface all typed event payloads implement.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}
