// Package session saves and restores paused games so a browser session can
// pick up where it left off.
package session

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/traderoyale/engine/internal/domain"
)

// Encode serializes a game state snapshot for storage.
func Encode(state domain.GameState) ([]byte, error) {
	data, err := msgpack.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	return data, nil
}

// Decode restores a game state from its stored form.
func Decode(data []byte) (domain.GameState, error) {
	var state domain.GameState
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return domain.GameState{}, fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	if state.Holdings == nil {
		state.Holdings = make(map[string]domain.Holding)
	}
	return state, nil
}
