// Package storage keeps the match log of one play session in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk; the log disappears with the Store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("storage: store is closed")

// Store manages the in-memory database connection.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished game.
type MatchRecord struct {
	ID           int64
	GameID       string // engine.GameState.ID
	Category     string
	Player1      string
	Player2      string
	Score1       int
	Score2       int
	RoundsWon1   int
	RoundsWon2   int
	WinnerSeat   core.PlayerIndex // engine.NoPlayer on a draw
	EndReason    string           // "completed" or "forfeit"
	Rounds       int              // Rounds actually reached
	DurationSecs int
	CreatedAt    time.Time
}

// Winner returns the winner's name, or "" on a draw.
func (m MatchRecord) Winner() string {
	switch m.WinnerSeat {
	case core.Player1:
		return m.Player1
	case core.Player2:
		return m.Player2
	default:
		return ""
	}
}

// Standing aggregates the session results of one player name.
type Standing struct {
	Name   string
	Played int
	Wins   int
	Draws  int
	Losses int
	Points int
}

// Open creates an empty in-memory store and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			rounds_won1 INTEGER NOT NULL DEFAULT 0,
			rounds_won2 INTEGER NOT NULL DEFAULT 0,
			winner_seat INTEGER NOT NULL DEFAULT -1,
			end_reason TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_category ON matches(category);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the log.
func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// SaveMatch records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	result, err := s.db.Exec(
		`INSERT INTO matches
		 (game_id, category, player1, player2, score1, score2, rounds_won1, rounds_won2,
		  winner_seat, end_reason, rounds, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.GameID, m.Category, m.Player1, m.Player2, m.Score1, m.Score2,
		m.RoundsWon1, m.RoundsWon2, int(m.WinnerSeat), m.EndReason, m.Rounds, m.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, category, player1, player2, score1, score2, rounds_won1, rounds_won2,
		        winner_seat, end_reason, rounds, duration_secs, created_at
		 FROM matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var winner int
		var createdAt any
		if err := rows.Scan(
			&m.ID, &m.GameID, &m.Category, &m.Player1, &m.Player2, &m.Score1, &m.Score2,
			&m.RoundsWon1, &m.RoundsWon2, &winner, &m.EndReason, &m.Rounds, &m.DurationSecs, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.WinnerSeat = core.PlayerIndex(winner)
		m.CreatedAt = parseTime(createdAt)
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Standings aggregates wins, draws and points per player name, best first.
func (s *Store) Standings() ([]Standing, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(
		`SELECT name, COUNT(*), SUM(won), SUM(drawn), SUM(points)
		 FROM (
			SELECT player1 AS name, score1 AS points,
			       CASE WHEN winner_seat = 0 THEN 1 ELSE 0 END AS won,
			       CASE WHEN winner_seat = -1 THEN 1 ELSE 0 END AS drawn
			FROM matches
			UNION ALL
			SELECT player2, score2,
			       CASE WHEN winner_seat = 1 THEN 1 ELSE 0 END,
			       CASE WHEN winner_seat = -1 THEN 1 ELSE 0 END
			FROM matches
		 )
		 GROUP BY name
		 ORDER BY SUM(won) DESC, SUM(points) DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query standings: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.Name, &st.Played, &st.Wins, &st.Draws, &st.Points); err != nil {
			return nil, fmt.Errorf("storage: cannot scan standings row: %w", err)
		}
		st.Losses = st.Played - st.Wins - st.Draws
		standings = append(standings, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return standings, nil
}

// MatchCount returns the number of recorded matches.
func (s *Store) MatchCount() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count matches: %w", err)
	}
	return n, nil
}

// NewMatchRecord builds the record for a finished game.
func NewMatchRecord(category string, st engine.GameState, started, ended time.Time) MatchRecord {
	res := engine.ResultOf(st)
	reason := "completed"
	if res.Reason == engine.EndReasonForfeit {
		reason = "forfeit"
	}
	return MatchRecord{
		GameID:       st.ID,
		Category:     category,
		Player1:      st.Players[0].Name,
		Player2:      st.Players[1].Name,
		Score1:       res.Scores[0],
		Score2:       res.Scores[1],
		RoundsWon1:   res.RoundsWon[0],
		RoundsWon2:   res.RoundsWon[1],
		WinnerSeat:   res.Winner,
		EndReason:    reason,
		Rounds:       st.CurrentRound,
		DurationSecs: int(ended.Sub(started).Round(time.Second) / time.Second),
	}
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
