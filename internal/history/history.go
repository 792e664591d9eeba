// internal/history/history.go
//
// Durable record of every game, kept next to the in-memory session store.
// Responsibilities:
//   - Insert a "playing" row when a game starts, owned by a user or an
//     anonymous cookie ID.
//   - Update counters as guesses land and close the row when the game ends.
//   - Move anonymous games to an account after signup/login.
//   - Maintain per-user games_played / wins / streak.
//
// The live engine state never touches the database; only the outcome does.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Record is one row of the games table.
type Record struct {
	ID         string `json:"id"`
	UserID     string `json:"-"`
	AnonID     string `json:"-"`
	Mode       string `json:"mode"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
	Status     string `json:"status"`
	Guesses    int    `json:"guesses"`
	Wrong      int    `json:"wrong"`
	Answer     string `json:"answer,omitempty"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Stats are a user's lifetime counters.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Streak      int `json:"streak"`
}

// ErrNoOwner is returned by Start when a record has neither a user nor an
// anonymous owner.
var ErrNoOwner = errors.New("history: record has no owner")

// Store reads and writes the games table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) timestamp() string { return s.now().Format(time.RFC3339) }

// nullable maps "" to SQL NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// Start inserts a new game row in the playing state.
func (s *Store) Start(ctx context.Context, r Record) error {
	if r.UserID == "" && r.AnonID == "" {
		return ErrNoOwner
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, mode, length, max_guesses, status, started_at)
		 VALUES (?,?,?,?,?,?,'playing',?)`,
		r.ID, nullable(r.UserID), nullable(r.AnonID), r.Mode, r.Length, r.MaxGuesses, s.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", r.ID, err)
	}
	return nil
}

// Progress stores the running guess counters of a game.
func (s *Store) Progress(ctx context.Context, id string, guesses, wrong int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE games SET guesses=?, wrong=? WHERE id=?`, guesses, wrong, id)
	return err
}

// Finish closes a game. When the game belongs to a user, their stats are
// bumped in the same transaction. Finishing an already finished game is a
// no-op.
func (s *Store) Finish(ctx context.Context, id, status string, guesses, wrong int, answer string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM games WHERE id=? AND status='playing'`, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, guesses=?, wrong=?, answer=?, finished_at=? WHERE id=?`,
		status, guesses, wrong, answer, s.timestamp(), id); err != nil {
		return fmt.Errorf("finish game %s: %w", id, err)
	}
	if userID.Valid {
		if err := bumpStats(ctx, tx, userID.String, status == "won"); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	if won {
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET games_played=games_played+1, wins=wins+1, streak=streak+1 WHERE id=?`, userID)
		return err
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET games_played=games_played+1, streak=0 WHERE id=?`, userID)
	return err
}

// Get loads one game row.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectGame+` WHERE id=?`, id)
	return scanRecord(row)
}

// ForUser lists a user's most recent games.
func (s *Store) ForUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		selectGame+` WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Claim moves every game of anonID to userID.
func (s *Store) Claim(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StatsFor returns a user's counters.
func (s *Store) StatsFor(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM users WHERE id=?`, userID,
	).Scan(&st.GamesPlayed, &st.Wins, &st.Streak)
	return st, err
}

const selectGame = `SELECT id, COALESCE(user_id,''), COALESCE(anonymous_id,''), mode, length, max_guesses,
       status, guesses, wrong, answer, started_at, COALESCE(finished_at,'')
FROM games`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	err := sc.Scan(&r.ID, &r.UserID, &r.AnonID, &r.Mode, &r.Length, &r.MaxGuesses,
		&r.Status, &r.Guesses, &r.Wrong, &r.Answer, &r.StartedAt, &r.FinishedAt)
	return r, err
}
