// internal/game/types.go
//
// Core type definitions for the adversarial hangman engine.
// Defines:
//   - Pattern: the partially revealed word, an immutable row of cells.
//   - Cell:    one slot of a Pattern (blank or a revealed letter).
//   - State:   coarse lifecycle of a session (playing/won/lost).
//   - Mode:    how a session was started (normal/daily).

package game

import (
	"encoding/json"
	"strings"
)

// blank is the in-memory marker for an unrevealed cell. It sorts before
// every letter, which makes an all-blank pattern key the smallest key.
const blank rune = 0

// BlankGlyph is how a blank cell is drawn by String.
const BlankGlyph = '-'

// Cell is a single slot of a Pattern.
type Cell struct {
	Letter   rune // revealed letter; zero when blank
	Revealed bool
}

// Pattern is the word as the guesser currently sees it.
//
// A Pattern is a value: it is never changed in place. Revealing a letter
// produces a new Pattern, so a Pattern handed out by the engine stays valid
// no matter what the engine does afterwards.
type Pattern struct {
	cells []rune
}

// blankPattern returns a pattern of n unrevealed cells.
func blankPattern(n int) Pattern {
	return Pattern{cells: make([]rune, n)}
}

// reveal returns a copy of p with every position where word holds letter
// uncovered. Positions already showing another letter are left untouched.
func (p Pattern) reveal(word []rune, letter rune) Pattern {
	out := make([]rune, len(p.cells))
	copy(out, p.cells)
	for i, r := range word {
		if r == letter {
			out[i] = letter
		}
	}
	return Pattern{cells: out}
}

// Len is the fixed word length.
func (p Pattern) Len() int { return len(p.cells) }

// At returns the letter at position i and whether it has been revealed.
func (p Pattern) At(i int) (rune, bool) {
	r := p.cells[i]
	return r, r != blank
}

// Cells returns a copy of the pattern as a slice of cells.
func (p Pattern) Cells() []Cell {
	out := make([]Cell, len(p.cells))
	for i, r := range p.cells {
		out[i] = Cell{Letter: r, Revealed: r != blank}
	}
	return out
}

// Count returns how many cells show letter.
func (p Pattern) Count(letter rune) int {
	n := 0
	for _, r := range p.cells {
		if r == letter && r != blank {
			n++
		}
	}
	return n
}

// Blanks returns the number of unrevealed cells.
func (p Pattern) Blanks() int {
	n := 0
	for _, r := range p.cells {
		if r == blank {
			n++
		}
	}
	return n
}

// Solved reports whether every cell is revealed.
func (p Pattern) Solved() bool { return len(p.cells) > 0 && p.Blanks() == 0 }

// Key is a compact, comparable form of the pattern. Keys order the same way
// the patterns do cell by cell, with blank lowest.
func (p Pattern) Key() string { return string(p.cells) }

// Equal reports whether two patterns have identical cells.
func (p Pattern) Equal(o Pattern) bool { return p.Key() == o.Key() }

// String renders the pattern the way a console shows it, e.g. "a - - e".
func (p Pattern) String() string {
	var b strings.Builder
	for i, r := range p.cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if r == blank {
			b.WriteRune(BlankGlyph)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MarshalJSON encodes the pattern as an array of one-letter strings, with
// "" for blanks.
func (p Pattern) MarshalJSON() ([]byte, error) {
	out := make([]string, len(p.cells))
	for i, r := range p.cells {
		if r != blank {
			out[i] = string(r)
		}
	}
	return json.Marshal(out)
}

// State is the coarse lifecycle of a session.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Finished reports whether the state is terminal.
func (s State) Finished() bool { return s == StateWon || s == StateLost }

// Mode records how a session was started.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeDaily  Mode = "daily"
)
