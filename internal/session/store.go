package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/domain"
)

// SessionsSchema holds saved game snapshots keyed by session id.
const SessionsSchema = `
CREATE TABLE IF NOT EXISTS saved_sessions (
    id TEXT PRIMARY KEY,
    snapshot BLOB NOT NULL,
    round INTEGER NOT NULL,
    net_worth REAL NOT NULL,
    saved_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_saved_sessions_saved_at ON saved_sessions(saved_at);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SessionsSchema)
	return err
}

// ErrNotFound is returned when no saved session exists for an id.
var ErrNotFound = errors.New("saved session not found")

// Saved describes a stored snapshot without its payload.
type Saved struct {
	ID       string    `json:"id"`
	Round    int       `json:"round"`
	NetWorth float64   `json:"net_worth"`
	SavedAt  time.Time `json:"saved_at"`
}

// Store persists session snapshots in sqlite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a session store.
func NewStore(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("repo", "sessions").Logger(),
	}
}

// Save writes the snapshot for a session, replacing any earlier save.
func (s *Store) Save(id string, state domain.GameState, now time.Time) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	netWorth := state.Cash
	if n := len(state.NetWorthHistory); n > 0 {
		netWorth = state.NetWorthHistory[n-1].Value
	}

	query := `
		INSERT INTO saved_sessions (id, snapshot, round, net_worth, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			snapshot = excluded.snapshot,
			round = excluded.round,
			net_worth = excluded.net_worth,
			saved_at = excluded.saved_at
	`

	_, err = s.db.Exec(query, id, data, state.Round, netWorth, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}

	s.log.Info().Str("session_id", id).Int("round", state.Round).Msg("Session saved")
	return nil
}

// Load restores the snapshot for a session id.
func (s *Store) Load(id string) (domain.GameState, error) {
	var data []byte
	err := s.db.QueryRow("SELECT snapshot FROM saved_sessions WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GameState{}, ErrNotFound
	}
	if err != nil {
		return domain.GameState{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	return Decode(data)
}

// List returns saved-session metadata, newest first.
func (s *Store) List() ([]Saved, error) {
	rows, err := s.db.Query(`
		SELECT id, round, net_worth, saved_at
		FROM saved_sessions
		ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var saved []Saved
	for rows.Next() {
		var item Saved
		var savedAt string
		if err := rows.Scan(&item.ID, &item.Round, &item.NetWorth, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		item.SavedAt, err = time.Parse(time.RFC3339, savedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		saved = append(saved, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return saved, nil
}

// Delete removes a saved session.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM saved_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// Prune drops sessions saved before the cutoff and returns how many went.
func (s *Store) Prune(maxAge time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-maxAge).Format(time.RFC3339)

	result, err := s.db.Exec("DELETE FROM saved_sessions WHERE saved_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned sessions: %w", err)
	}
	if pruned > 0 {
		s.log.Info().Int64("pruned", pruned).Msg("Stale sessions pruned")
	}
	return pruned, nil
}
