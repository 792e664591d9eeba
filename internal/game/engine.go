// internal/game/engine.go
//
// Adversarial candidate-set engine for a single hangman game.
// Responsibilities:
//   - Hold the live candidate words, the revealed pattern, the guessed
//     letters and the remaining wrong-guess budget.
//   - On every guess, split the candidates into families by the pattern the
//     guess would produce and keep the largest family.
//   - Charge the budget only when the kept family reveals nothing.
//
// Notes:
//   - The engine never picks a secret word. The "answer" is whichever word
//     is still most convenient.
//   - Letters are normalised to lowercase on the way in; dictionary words are
//     lowercased at construction so both sides compare in the same case.
//   - Engine is not safe for concurrent use. Session serialises access.
package game

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"
)

// Engine is the candidate-set state machine behind one game.
type Engine struct {
	length     int
	remaining  int
	pattern    Pattern
	candidates []string // sorted, deduplicated, all len(length) runes
	guessed    map[rune]struct{}
}

// family is one equivalence class of candidates sharing a resulting pattern.
type family struct {
	pattern Pattern
	key     string
	words   []string
}

// NewEngine builds an engine over the words of dictionary that are exactly
// length letters long. maxGuesses is the number of guesses that may reveal
// nothing before the game is lost.
func NewEngine(dictionary []string, length, maxGuesses int) (*Engine, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %w (got %d)", ErrInvalidArgument, ErrInvalidLength, length)
	}
	if maxGuesses < 0 {
		return nil, fmt.Errorf("%w: %w (got %d)", ErrInvalidArgument, ErrInvalidMaxGuesses, maxGuesses)
	}

	seen := make(map[string]struct{}, len(dictionary))
	candidates := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		w = NormalizeWord(w)
		if utf8.RuneCountInString(w) != length {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		candidates = append(candidates, w)
	}
	slices.Sort(candidates)

	return &Engine{
		length:     length,
		remaining:  maxGuesses,
		pattern:    blankPattern(length),
		candidates: candidates,
		guessed:    make(map[rune]struct{}),
	}, nil
}

// Length is the fixed word length.
func (e *Engine) Length() int { return e.length }

// Candidates returns the live candidate words in lexicographic order.
func (e *Engine) Candidates() []string {
	return slices.Clone(e.candidates)
}

// CandidateCount is len(Candidates()) without the copy.
func (e *Engine) CandidateCount() int { return len(e.candidates) }

// RemainingGuesses returns how many guesses may still reveal nothing.
func (e *Engine) RemainingGuesses() int { return e.remaining }

// GuessedLetters returns the letters guessed so far, lowercase, ascending.
func (e *Engine) GuessedLetters() []rune {
	out := make([]rune, 0, len(e.guessed))
	for r := range e.guessed {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// HasGuessed reports whether letter (in any case) was already guessed.
func (e *Engine) HasGuessed(letter rune) bool {
	_, ok := e.guessed[unicode.ToLower(letter)]
	return ok
}

// Pattern returns the current pattern. It fails with ErrEmptyCandidateSet
// when no candidate words are left, since no pattern is meaningful then.
func (e *Engine) Pattern() (Pattern, error) {
	if len(e.candidates) == 0 {
		return Pattern{}, ErrEmptyCandidateSet
	}
	return e.pattern, nil
}

// RecordGuess applies a letter guess.
//
// It returns the number of cells the guess revealed, or 0 when the kept
// family shows nothing new (in which case one guess is charged). On error
// the engine is left exactly as it was.
func (e *Engine) RecordGuess(letter rune) (int, error) {
	switch {
	case e.remaining < 1:
		return 0, ErrNoGuessesLeft
	case len(e.candidates) == 0:
		return 0, ErrEmptyCandidateSet
	}
	letter = unicode.ToLower(letter)
	if _, ok := e.guessed[letter]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateGuess, letter)
	}

	best := e.largestFamily(e.partition(letter))

	prev := e.pattern
	e.candidates = best.words
	e.pattern = best.pattern
	e.guessed[letter] = struct{}{}

	if best.pattern.Equal(prev) {
		e.remaining--
		return 0, nil
	}
	return best.pattern.Count(letter), nil
}

// partition groups the candidates by the pattern letter would produce.
// Candidates are sorted, so every family's words come out sorted too.
func (e *Engine) partition(letter rune) map[string]*family {
	families := make(map[string]*family)
	for _, w := range e.candidates {
		p := e.pattern.reveal([]rune(w), letter)
		k := p.Key()
		f, ok := families[k]
		if !ok {
			f = &family{pattern: p, key: k}
			families[k] = f
		}
		f.words = append(f.words, w)
	}
	return families
}

// largestFamily picks the family with the most words. Ties go to the
// lexicographically smallest pattern key so the choice never depends on map
// iteration order.
func (e *Engine) largestFamily(families map[string]*family) *family {
	var best *family
	for _, f := range families {
		switch {
		case best == nil,
			len(f.words) > len(best.words),
			len(f.words) == len(best.words) && f.key < best.key:
			best = f
		}
	}
	return best
}
