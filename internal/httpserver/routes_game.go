// internal/httpserver/routes_game.go
//
// HTTP routes for free-play adversarial hangman:
//   - POST /game/new   → start a game ({length?, maxGuesses?})
//   - POST /game/guess → guess one letter ({gameId, letter})
//   - GET  /game/{id}  → current snapshot (?debug=1 adds candidates when enabled)
//
// Live state lives in the session store; the games table only tracks
// counters and the outcome.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/store"
)

// maxGuessLimit bounds maxGuesses: there are only so many letters to miss.
const maxGuessLimit = 26

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
}

// newGameReq is the payload for POST /game/new. Both fields are optional.
type newGameReq struct {
	Length     *int `json:"length"`
	MaxGuesses *int `json:"maxGuesses"`
}

// guessReq is the payload for POST /game/guess and POST /daily/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Letter string `json:"letter"`
}

// guessRes is returned for every accepted guess.
type guessRes struct {
	Occurrences int           `json:"occurrences"`
	Game        game.Snapshot `json:"game"`
}

// handleNewGame creates a session and records an owner row for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	length, maxGuesses := s.cfg.DefaultLength, s.cfg.DefaultMaxGuesses
	if req.Length != nil {
		length = *req.Length
	}
	if req.MaxGuesses != nil {
		maxGuesses = *req.MaxGuesses
	}
	if maxGuesses < 1 || maxGuesses > maxGuessLimit {
		writeError(w, http.StatusBadRequest, "invalid_max_guesses")
		return
	}
	if !s.dict.Has(length) {
		writeError(w, http.StatusBadRequest, "no_words_of_length")
		return
	}

	sess, err := s.startSession(w, r, length, maxGuesses, game.ModeNormal)
	if err != nil {
		status, code := gameErrorStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot(false))
}

// startSession creates, stores and records a new session.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, length, maxGuesses int, mode game.Mode) (*game.Session, error) {
	sess, err := game.NewSession(s.dict.Words(), length, maxGuesses, mode)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		return nil, err
	}

	rec := history.Record{ID: sess.ID, Mode: string(mode), Length: length, MaxGuesses: maxGuesses}
	if me := currentUser(r); me != nil {
		rec.UserID = me.ID
	} else {
		rec.AnonID = s.ensureAnonID(w, r)
	}
	if err := s.history.Start(r.Context(), rec); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}

	metrics.GamesStarted.WithLabelValues(string(mode)).Inc()
	metrics.LiveSessions.Set(float64(s.store.Len()))
	hlog.FromRequest(r).Info().
		Str("gameId", sess.ID).
		Str("mode", string(mode)).
		Int("length", length).
		Int("maxGuesses", maxGuesses).
		Msg("game started")
	return sess, nil
}

// handleGuess applies a guess to a free-play session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if sess.Mode != game.ModeNormal {
		writeError(w, http.StatusBadRequest, "wrong_mode")
		return
	}
	turn, snap, err := s.applyGuess(r, sess, req.Letter)
	if err != nil {
		status, code := gameErrorStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Occurrences: turn.Occurrences, Game: snap})
}

// applyGuess parses the letter, runs it through the session and persists
// counters. History writes are best effort.
func (s *Server) applyGuess(r *http.Request, sess *game.Session, input string) (game.Turn, game.Snapshot, error) {
	letter, err := game.ParseLetter(input)
	if err != nil {
		metrics.GuessErrors.WithLabelValues("invalid_letter").Inc()
		return game.Turn{}, game.Snapshot{}, err
	}
	turn, state, err := sess.Guess(letter)
	if err != nil {
		_, code := gameErrorStatus(err)
		metrics.GuessErrors.WithLabelValues(code).Inc()
		return game.Turn{}, game.Snapshot{}, err
	}

	snap := sess.Snapshot(false)
	metrics.RecordGuess(turn.Occurrences, snap.CandidateCount)

	ctx := context.WithoutCancel(r.Context())
	logger := hlog.FromRequest(r)
	if err := s.history.Progress(ctx, sess.ID, len(snap.History), snap.Wrong); err != nil {
		logger.Warn().Err(err).Msg("update guesses")
	}
	if state.Finished() {
		if err := s.history.Finish(ctx, sess.ID, string(state), len(snap.History), snap.Wrong, snap.Answer); err != nil {
			logger.Warn().Err(err).Str("gameId", sess.ID).Msg("finish game")
		}
		metrics.GamesFinished.WithLabelValues(string(sess.Mode), string(state)).Inc()
		logger.Info().
			Str("gameId", sess.ID).
			Str("state", string(state)).
			Str("answer", snap.Answer).
			Int("wrong", snap.Wrong).
			Msg("game finished")
	}
	return turn, snap, nil
}

// handleGetGame returns a snapshot of any session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	debug := s.cfg.ShowCandidates && r.URL.Query().Get("debug") == "1"
	writeJSON(w, http.StatusOK, sess.Snapshot(debug))
}

// gameErrorStatus maps game errors to an HTTP status and error code.
func gameErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidLetter):
		return http.StatusBadRequest, "invalid_letter"
	case errors.Is(err, game.ErrInvalidLength), errors.Is(err, game.ErrInvalidMaxGuesses),
		errors.Is(err, game.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, game.ErrDuplicateGuess):
		return http.StatusConflict, "duplicate_guess"
	case errors.Is(err, game.ErrNoGuessesLeft):
		return http.StatusConflict, "no_guesses_left"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrEmptyCandidateSet):
		return http.StatusUnprocessableEntity, "empty_candidate_set"
	}
	return http.StatusInternalServerError, "internal"
}
