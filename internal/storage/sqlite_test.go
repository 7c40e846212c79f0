package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func match(id, p1, p2 string, s1, s2 int, winner core.PlayerIndex) MatchRecord {
	return MatchRecord{
		GameID:     id,
		Category:   "science",
		Player1:    p1,
		Player2:    p2,
		Score1:     s1,
		Score2:     s2,
		WinnerSeat: winner,
		EndReason:  "completed",
		Rounds:     5,
	}
}

func TestSaveAndRecent(t *testing.T) {
	store := openStore(t)

	for i, m := range []MatchRecord{
		match("g1", "Alice", "Bob", 40, 20, core.Player1),
		match("g2", "Bob", "Alice", 33, 33, engine.NoPlayer),
		match("g3", "Carol", "Bob", 10, 45, core.Player2),
	} {
		id, err := store.SaveMatch(m)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	recent, err := store.RecentMatches(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "g3", recent[0].GameID, "newest first")
	assert.Equal(t, "g2", recent[1].GameID)
	assert.Equal(t, "Bob", recent[0].Winner())
	assert.Equal(t, "", recent[1].Winner())
	assert.Equal(t, engine.NoPlayer, recent[1].WinnerSeat)
	assert.False(t, recent[0].CreatedAt.IsZero())

	n, err := store.MatchCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDuplicateGameRejected(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveMatch(match("same", "A", "B", 1, 0, core.Player1))
	require.NoError(t, err)
	_, err = store.SaveMatch(match("same", "A", "B", 1, 0, core.Player1))
	assert.Error(t, err)
}

func TestStandings(t *testing.T) {
	store := openStore(t)
	for _, m := range []MatchRecord{
		match("g1", "Alice", "Bob", 40, 20, core.Player1),
		match("g2", "Bob", "Alice", 33, 33, engine.NoPlayer),
		match("g3", "Carol", "Bob", 10, 45, core.Player2),
		match("g4", "Alice", "Carol", 25, 5, core.Player1),
	} {
		_, err := store.SaveMatch(m)
		require.NoError(t, err)
	}

	got, err := store.Standings()
	require.NoError(t, err)
	assert.Equal(t, []Standing{
		{Name: "Alice", Played: 3, Wins: 2, Draws: 1, Losses: 0, Points: 98},
		{Name: "Bob", Played: 3, Wins: 1, Draws: 1, Losses: 1, Points: 98},
		{Name: "Carol", Played: 2, Wins: 0, Draws: 0, Losses: 2, Points: 15},
	}, got)
}

func TestStoresAreIndependent(t *testing.T) {
	a := openStore(t)
	b := openStore(t)
	_, err := a.SaveMatch(match("g1", "A", "B", 1, 0, core.Player1))
	require.NoError(t, err)

	n, err := b.MatchCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClosedStore(t *testing.T) {
	store, err := Open()
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.SaveMatch(match("g1", "A", "B", 1, 0, core.Player1))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = store.RecentMatches(5)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewMatchRecord(t *testing.T) {
	st := engine.GameState{
		ID:           "abc",
		Phase:        engine.PhaseForfeited,
		CurrentRound: 2,
		ForfeitedBy:  core.Player1,
		IsGameOver:   true,
	}
	st.Players[0] = engine.Player{Name: "Alice", Score: 30, RoundsWon: 1}
	st.Players[1] = engine.Player{Name: "Bob", Score: 10}

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMatchRecord("geography", st, start, start.Add(95*time.Second))

	assert.Equal(t, "abc", m.GameID)
	assert.Equal(t, "geography", m.Category)
	assert.Equal(t, "forfeit", m.EndReason)
	assert.Equal(t, core.Player2, m.WinnerSeat)
	assert.Equal(t, "Bob", m.Winner())
	assert.Equal(t, 30, m.Score1)
	assert.Equal(t, 1, m.RoundsWon1)
	assert.Equal(t, 2, m.Rounds)
	assert.Equal(t, 95, m.DurationSecs)
}
