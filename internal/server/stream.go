package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/traderoyale/engine/internal/events"
)

// streamWriteTimeout bounds one frame write; a client that cannot keep up
// gets dropped instead of stalling the bus handler.
const streamWriteTimeout = 5 * time.Second

// streamedEvents are the bus events pushed to connected browsers.
var streamedEvents = []events.EventType{
	events.GameStarted,
	events.GameEnded,
	events.RoundAdvanced,
	events.PricesUpdated,
	events.NewsPublished,
	events.NewsExpired,
	events.TradeExecuted,
	events.NetWorthRecorded,
	events.MissionCompleted,
	events.MissionFailed,
	events.HealthChanged,
}

// streamHub fans bus events out to every open WebSocket connection.
type streamHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

func newStreamHub(log zerolog.Logger) *streamHub {
	return &streamHub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   log.With().Str("component", "stream").Logger(),
	}
}

// subscribe wires the hub to the bus. Handlers are registered once at
// startup; connections come and go underneath them.
func (h *streamHub) subscribe(bus *events.Bus) {
	for _, eventType := range streamedEvents {
		bus.Subscribe(eventType, h.broadcast)
	}
}

func (h *streamHub) broadcast(event *events.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("event_type", string(event.Type)).Msg("Failed to encode event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		ctx, cancel := context.WithTimeout(context.Background(), streamWriteTimeout)
		err := conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			delete(h.conns, conn)
			conn.Close(websocket.StatusPolicyViolation, "write timeout")
		}
	}
}

func (h *streamHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *streamHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *streamHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	h.conns = make(map[*websocket.Conn]struct{})
}

// handleStream upgrades the request and streams game events until the
// client disconnects. The first frame is a full state snapshot.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}

	snapshot, err := json.Marshal(s.session.Snapshot())
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), streamWriteTimeout)
		err = conn.Write(ctx, websocket.MessageText, snapshot)
		cancel()
	}
	if err != nil {
		conn.Close(websocket.StatusInternalError, "failed to send snapshot")
		return
	}

	s.stream.add(conn)
	defer s.stream.remove(conn)

	// The stream is one-way; the read loop only notices disconnects.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}
