package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily game.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Length    int    `json:"length"`
	Guesses   int    `json:"guesses"`
	Wrong     int    `json:"wrong"`
	ElapsedMs int    `json:"elapsedMs"`
	Won       bool   `json:"won"`
}

// LBRow is a leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	Wrong     int    `json:"wrong"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a result. A second result for the same user and date
// is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, length, guesses, wrong, elapsed_ms, won)
		 VALUES (?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.Length, r.Guesses, r.Wrong, r.ElapsedMs, won,
	)
	return err
}

// Leaderboard returns the winners for date: fewest wrong guesses first,
// then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, wrong, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY wrong ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.Wrong, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
