// internal/game/session.go
//
// Session wraps one Engine for one player.
// Responsibilities:
//   - Serialise access to the engine (it has no locking of its own).
//   - Keep the guess history and derive playing/won/lost.
//   - Produce JSON-ready snapshots for the HTTP layer and the console.

package game

import (
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Turn is one accepted guess.
type Turn struct {
	Letter      string `json:"letter"`
	Occurrences int    `json:"occurrences"`
}

// Session holds the state of a single in-progress or finished game.
type Session struct {
	ID         string
	Mode       Mode
	Length     int
	MaxGuesses int
	CreatedAt  time.Time

	mu      sync.Mutex // guards engine and history
	engine  *Engine
	history []Turn
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID             string    `json:"gameId"`
	Mode           Mode      `json:"mode"`
	Length         int       `json:"length"`
	MaxGuesses     int       `json:"maxGuesses"`
	Pattern        Pattern   `json:"pattern"`
	Display        string    `json:"display"`
	Guessed        []string  `json:"guessed"`
	History        []Turn    `json:"history"`
	Remaining      int       `json:"remainingGuesses"`
	Wrong          int       `json:"wrongGuesses"`
	CandidateCount int       `json:"candidateCount"`
	State          State     `json:"state"`
	Answer         string    `json:"answer,omitempty"`
	Candidates     []string  `json:"candidates,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewSession starts a game over dictionary. Unlike a bare Engine, a session
// refuses to start with no candidate words.
func NewSession(dictionary []string, length, maxGuesses int, mode Mode) (*Session, error) {
	e, err := NewEngine(dictionary, length, maxGuesses)
	if err != nil {
		return nil, err
	}
	if e.CandidateCount() == 0 {
		return nil, ErrEmptyCandidateSet
	}
	if mode == "" {
		mode = ModeNormal
	}
	return &Session{
		ID:         uuid.NewString(),
		Mode:       mode,
		Length:     length,
		MaxGuesses: maxGuesses,
		CreatedAt:  time.Now().UTC(),
		engine:     e,
		history:    []Turn{},
	}, nil
}

// Guess applies letter and returns the accepted turn plus the new state.
func (s *Session) Guess(letter rune) (Turn, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.state(); st.Finished() {
		return Turn{}, st, ErrGameOver
	}
	n, err := s.engine.RecordGuess(letter)
	if err != nil {
		return Turn{}, s.state(), err
	}
	t := Turn{Letter: string(unicode.ToLower(letter)), Occurrences: n}
	s.history = append(s.history, t)
	return t, s.state(), nil
}

// State reports playing, won or lost.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	p, err := s.engine.Pattern()
	switch {
	case err == nil && p.Solved():
		return StateWon
	case s.engine.RemainingGuesses() < 1:
		return StateLost
	}
	return StatePlaying
}

// Answer is the word the game settles on once it is over: the first
// remaining candidate. It is empty while the game is still being played.
func (s *Session) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer()
}

func (s *Session) answer() string {
	if !s.state().Finished() || s.engine.CandidateCount() == 0 {
		return ""
	}
	return s.engine.candidates[0]
}

// Snapshot returns a copy of everything a client may see. Candidates are
// only included when withCandidates is set.
func (s *Session) Snapshot(withCandidates bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _ := s.engine.Pattern()
	guessed := s.engine.GuessedLetters()
	letters := make([]string, len(guessed))
	for i, r := range guessed {
		letters[i] = string(r)
	}
	snap := Snapshot{
		ID:             s.ID,
		Mode:           s.Mode,
		Length:         s.Length,
		MaxGuesses:     s.MaxGuesses,
		Pattern:        p,
		Display:        p.String(),
		Guessed:        letters,
		History:        slices.Clone(s.history),
		Remaining:      s.engine.RemainingGuesses(),
		Wrong:          s.MaxGuesses - s.engine.RemainingGuesses(),
		CandidateCount: s.engine.CandidateCount(),
		State:          s.state(),
		Answer:         s.answer(),
		CreatedAt:      s.CreatedAt,
	}
	if withCandidates {
		snap.Candidates = s.engine.Candidates()
	}
	return snap
}
