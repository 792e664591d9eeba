// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → guess a letter in today's game
//   - GET  /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same word length on a given day (HMAC of date + salt).
// Each player can finish the daily game once; the result is persisted when
// the game ends, won or lost. A game belongs to the day it was started on,
// even if the last guess lands after midnight.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
)

// dailyMinLength keeps the daily word long enough to be a real game.
const dailyMinLength = 4

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	mu       sync.Mutex               // guards sessions and byGame
	sessions map[string]*dailySession // keyed by userID|date
	byGame   map[string]*dailySession // keyed by game ID
}

// dailySession links a player's day to a live game session.
type dailySession struct {
	GameID string
	UserID string
	Date   string
	Length int
	Start  time.Time
}

func (ds *dailySession) key() string { return ds.UserID + "|" + ds.Date }

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		sessions: make(map[string]*dailySession),
		byGame:   make(map[string]*dailySession),
	}
	s.dailies = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and word length.
func (d *dailyServer) today() (date string, length int) {
	now := d.srv.now().UTC()
	return daily.DateKey(now), daily.LengthFor(now, d.srv.cfg.DailySalt, d.srv.dict.Lengths(), dailyMinLength)
}

// playerID returns the authenticated user ID, or the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Game   *game.Snapshot `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
//   - If the player already has a result for today → Played=true.
//   - Otherwise create/reuse the live session and return its snapshot.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date, length := d.today()
	if length == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}

	played, err := d.srv.daily.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if ds, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), ds.GameID); err == nil {
			snap := sess.Snapshot(false)
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &snap})
			return
		}
		d.forgetLocked(ds)
	}

	sess, err := d.srv.startSession(w, r, length, d.srv.cfg.DailyMaxGuesses, game.ModeDaily)
	if err != nil {
		status, code := gameErrorStatus(err)
		writeError(w, status, code)
		return
	}
	ds := &dailySession{
		GameID: sess.ID,
		UserID: uid,
		Date:   date,
		Length: length,
		Start:  d.srv.now(),
	}
	d.sessions[key] = ds
	d.byGame[ds.GameID] = ds
	snap := sess.Snapshot(false)
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &snap})
}

// handleGuess applies a guess to today's session and persists the result
// once the game is over.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	d.mu.Lock()
	ds, ok := d.byGame[req.GameID]
	d.mu.Unlock()
	if !ok || ds.UserID != uid {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	sess, err := d.srv.store.Get(r.Context(), ds.GameID)
	if err != nil {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	turn, snap, err := d.srv.applyGuess(r, sess, req.Letter)
	if err != nil {
		status, code := gameErrorStatus(err)
		writeError(w, status, code)
		return
	}

	if snap.State.Finished() {
		res := daily.Result{
			UserID:    uid,
			Date:      ds.Date,
			Length:    ds.Length,
			Guesses:   len(snap.History),
			Wrong:     snap.Wrong,
			ElapsedMs: int(d.srv.now().Sub(ds.Start).Milliseconds()),
			Won:       snap.State == game.StateWon,
		}
		if err := d.srv.daily.InsertResult(r.Context(), res); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("insert daily result")
		}
		d.mu.Lock()
		d.forgetLocked(ds)
		d.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, guessRes{Occurrences: turn.Occurrences, Game: snap})
}

// forgetLocked drops ds from both indexes. d.mu must be held.
func (d *dailyServer) forgetLocked(ds *dailySession) {
	if cur, ok := d.sessions[ds.key()]; ok && cur == ds {
		delete(d.sessions, ds.key())
	}
	delete(d.byGame, ds.GameID)
}

// prune drops entries whose game is no longer in the session store and
// returns how many were dropped.
func (d *dailyServer) prune(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, ds := range d.byGame {
		if _, err := d.srv.store.Get(ctx, ds.GameID); err != nil {
			d.forgetLocked(ds)
			n++
		}
	}
	return n
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.srv.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
