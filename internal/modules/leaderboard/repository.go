// Package leaderboard persists final scores of finished games.
package leaderboard

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Score is one leaderboard row.
type Score struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	FinalValue   float64   `json:"final_value"`
	RoundsPlayed int       `json:"rounds_played"`
	AchievedAt   time.Time `json:"achieved_at"`
}

// Repository handles leaderboard database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new leaderboard repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "leaderboard").Logger(),
	}
}

// SaveScore records a finished game's outcome.
func (r *Repository) SaveScore(userID string, finalValue float64, roundsPlayed int, achievedAt time.Time) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "anonymous"
	}

	query := `
		INSERT INTO high_scores (user_id, final_value, rounds_played, achieved_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, userID, finalValue, roundsPlayed, achievedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	r.log.Info().
		Str("user_id", userID).
		Float64("final_value", finalValue).
		Int("rounds", roundsPlayed).
		Msg("Score saved")

	return nil
}

// Top returns the highest final values, best first.
func (r *Repository) Top(limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, user_id, final_value, rounds_played, achieved_at
		FROM high_scores
		ORDER BY final_value DESC, achieved_at ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top scores: %w", err)
	}

	return scores, nil
}

// Best returns a user's highest score, or nil when they have none.
func (r *Repository) Best(userID string) (*Score, error) {
	query := `
		SELECT id, user_id, final_value, rounds_played, achieved_at
		FROM high_scores
		WHERE user_id = ?
		ORDER BY final_value DESC
		LIMIT 1
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query best score: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	score, err := scanScore(rows)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func scanScore(rows *sql.Rows) (Score, error) {
	var score Score
	var achievedAt string

	if err := rows.Scan(&score.ID, &score.UserID, &score.FinalValue, &score.RoundsPlayed, &achievedAt); err != nil {
		return Score{}, fmt.Errorf("failed to scan score: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339, achievedAt)
	if err != nil {
		return Score{}, fmt.Errorf("failed to parse achieved_at: %w", err)
	}
	score.AchievedAt = parsed

	return score, nil
}
