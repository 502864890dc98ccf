package session

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderoyale/engine/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewStore(db, zerolog.Nop())
}

func sampleState() domain.GameState {
	return domain.GameState{
		Assets: []domain.Asset{
			{ID: "stock-tech", Name: "Tech Innovations", Category: domain.CategoryStock, Price: 104.25, PreviousPrice: 103.10, Volatility: 0.4},
		},
		Cash: 8200.50,
		Holdings: map[string]domain.Holding{
			"stock-tech": {Quantity: 17, AverageBuyPrice: 98.40},
		},
		Round:         4,
		TimeRemaining: 23 * time.Second,
		Paused:        true,
		MarketHealth:  62.5,
		NetWorthHistory: []domain.NetWorthPoint{
			{Round: 0, Value: 10000, Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
			{Round: 4, Value: 9972.75, Timestamp: time.Date(2026, 3, 1, 12, 4, 0, 0, time.UTC)},
		},
		MissionRewards: map[string]float64{"diversify": 0.05},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	state := sampleState()

	data, err := Encode(state)
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, state.Cash, restored.Cash)
	assert.Equal(t, state.Round, restored.Round)
	assert.Equal(t, state.TimeRemaining, restored.TimeRemaining)
	assert.True(t, restored.Paused)
	assert.Equal(t, state.Holdings["stock-tech"], restored.Holdings["stock-tech"])
	require.Len(t, restored.NetWorthHistory, 2)
	assert.Equal(t, 9972.75, restored.NetWorthHistory[1].Value)
	assert.Equal(t, 0.05, restored.MissionRewards["diversify"])
}

func TestDecodeEmptySnapshotGetsHoldingsMap(t *testing.T) {
	data, err := Encode(domain.GameState{})
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, restored.Holdings)
}

func TestSaveLoadDelete(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)

	require.NoError(t, store.Save("s1", sampleState(), now))

	restored, err := store.Load("s1")
	require.NoError(t, err)
	assert.Equal(t, 4, restored.Round)
	assert.Equal(t, 8200.50, restored.Cash)

	require.NoError(t, store.Delete("s1"))
	_, err = store.Load("s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReplacesEarlierSnapshot(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	first := sampleState()
	require.NoError(t, store.Save("s1", first, now))

	second := sampleState()
	second.Round = 7
	second.Cash = 11000
	require.NoError(t, store.Save("s1", second, now.Add(time.Minute)))

	restored, err := store.Load("s1")
	require.NoError(t, err)
	assert.Equal(t, 7, restored.Round)
	assert.Equal(t, 11000.0, restored.Cash)

	saved, err := store.List()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 7, saved[0].Round)
}

func TestPruneDropsOnlyStaleSessions(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save("old", sampleState(), now.Add(-48*time.Hour)))
	require.NoError(t, store.Save("fresh", sampleState(), now.Add(-time.Hour)))

	pruned, err := store.Prune(24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	_, err = store.Load("old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Load("fresh")
	assert.NoError(t, err)
}
