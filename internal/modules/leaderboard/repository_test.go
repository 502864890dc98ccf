package leaderboard

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewRepository(db, zerolog.Nop())
}

func TestSaveScoreAndTop(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveScore("alice", 14250.50, 10, now))
	require.NoError(t, repo.SaveScore("bob", 9800, 10, now.Add(time.Minute)))
	require.NoError(t, repo.SaveScore("carol", 21000, 7, now.Add(2*time.Minute)))

	scores, err := repo.Top(10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, "carol", scores[0].UserID)
	assert.Equal(t, 21000.0, scores[0].FinalValue)
	assert.Equal(t, 7, scores[0].RoundsPlayed)
	assert.Equal(t, "alice", scores[1].UserID)
	assert.Equal(t, "bob", scores[2].UserID)
	assert.True(t, scores[0].AchievedAt.Equal(now.Add(2*time.Minute)))
}

func TestTopRespectsLimit(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveScore("player", float64(10000+i*100), 10, now))
	}

	scores, err := repo.Top(3)
	require.NoError(t, err)
	assert.Len(t, scores, 3)
	assert.Equal(t, 10400.0, scores[0].FinalValue)
}

func TestSaveScoreDefaultsAnonymous(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveScore("  ", 12000, 10, time.Now().UTC()))

	scores, err := repo.Top(1)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "anonymous", scores[0].UserID)
}

func TestBestReturnsHighestForUser(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.SaveScore("alice", 11000, 10, now))
	require.NoError(t, repo.SaveScore("alice", 15000, 10, now))
	require.NoError(t, repo.SaveScore("bob", 20000, 10, now))

	best, err := repo.Best("alice")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 15000.0, best.FinalValue)

	missing, err := repo.Best("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
