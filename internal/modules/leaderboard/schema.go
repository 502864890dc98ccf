package leaderboard

import "database/sql"

// HighScoresSchema holds the leaderboard table for finished games.
const HighScoresSchema = `
CREATE TABLE IF NOT EXISTS high_scores (
    id INTEGER PRIMARY KEY,
    user_id TEXT NOT NULL,
    final_value REAL NOT NULL,
    rounds_played INTEGER NOT NULL,
    achieved_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_high_scores_value ON high_scores(final_value DESC);
CREATE INDEX IF NOT EXISTS idx_high_scores_user ON high_scores(user_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(HighScoresSchema)
	return err
}
