package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler is called synchronously for every published event of the
// subscribed type. Handlers must not block.
type Handler func(event *Event)

// Bus is a minimal synchronous pub/sub bus. There is exactly one publisher
// (the game session); subscribers are wired once at startup, so the lock is
// mostly uncontended.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	log      zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		log:      log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for an event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish emits an event to all subscribed handlers
func (b *Bus) Publish(data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Timestamp: time.Now(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	b.log.Debug().
		Str("event_type", string(event.Type)).
		Int("handlers", len(handlers)).
		Msg("Event published")

	for _, h := range handlers {
		h(event)
	}
}
