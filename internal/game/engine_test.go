package game

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fourLetter = []string{"ally", "beta", "cool", "deal", "else", "flew", "good", "hope", "ibex"}

var mixed = []string{
	"able", "acid", "aged", "also", "area", "army", "away", "baby", "back", "ball",
	"band", "bank", "base", "bath", "bear", "beat", "been", "beer", "bell", "belt",
	"best", "bill", "bird", "blow", "blue", "boat", "body", "bomb", "bond", "bone",
	"apple", "brave", "crane", "dance", "eagle", "fable", "grape", "house", "irony",
	"a", "to", "cat", "elephant", "ñandú",
}

func TestNewEngine_InvalidArguments(t *testing.T) {
	_, err := NewEngine(fourLetter, 0, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(err, ErrInvalidLength))
	assert.False(t, errors.Is(err, ErrInvalidMaxGuesses))

	_, err = NewEngine(fourLetter, 4, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(err, ErrInvalidMaxGuesses))
	assert.False(t, errors.Is(err, ErrInvalidLength))
}

func TestNewEngine_LengthFilter(t *testing.T) {
	for _, length := range []int{1, 2, 3, 4, 5, 8, 12} {
		e, err := NewEngine(mixed, length, 3)
		require.NoError(t, err)
		for _, w := range e.Candidates() {
			assert.Equal(t, length, utf8.RuneCountInString(w), "word %q", w)
		}
	}

	e, err := NewEngine(mixed, 5, 3)
	require.NoError(t, err)
	assert.Contains(t, e.Candidates(), "ñandú")
}

func TestNewEngine_InitialState(t *testing.T) {
	e, err := NewEngine([]string{"dog", "Cat", "cat", "ant", "bee", "cat"}, 3, 4)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"ant", "bee", "cat", "dog"}, e.Candidates()); diff != "" {
		t.Errorf("candidates (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, e.RemainingGuesses())
	assert.Empty(t, e.GuessedLetters())

	p, err := e.Pattern()
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 3, p.Blanks())
	assert.Equal(t, "- - -", p.String())
}

// The three-word dictionary where every family has one word: the tie goes
// to the all-blank key, so the guess reveals nothing and costs a guess.
func TestRecordGuess_TieBreakSmallestKey(t *testing.T) {
	e, err := NewEngine([]string{"aa", "ab", "bb"}, 2, 3)
	require.NoError(t, err)

	n, err := e.RecordGuess('a')
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"bb"}, e.Candidates())
	assert.Equal(t, 2, e.RemainingGuesses())
	assert.Equal(t, []rune{'a'}, e.GuessedLetters())

	p, err := e.Pattern()
	require.NoError(t, err)
	assert.Equal(t, "- -", p.String())

	n, err = e.RecordGuess('b')
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, e.RemainingGuesses())
	p, _ = e.Pattern()
	assert.Equal(t, "b b", p.String())
	assert.True(t, p.Solved())
}

func TestRecordGuess_TieBreakBetweenRevealingFamilies(t *testing.T) {
	e, err := NewEngine([]string{"ab", "ba"}, 2, 3)
	require.NoError(t, err)

	// "a -" and "- a" tie; blank sorts first so "- a" is kept.
	n, err := e.RecordGuess('a')
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"ba"}, e.Candidates())
	assert.Equal(t, 3, e.RemainingGuesses())
	p, _ := e.Pattern()
	assert.Equal(t, "- a", p.String())
}

func TestRecordGuess_LargestFamilyWins(t *testing.T) {
	e, err := NewEngine(fourLetter, 4, 5)
	require.NoError(t, err)

	// no-e family {ally, cool, good} beats {beta, deal} and {flew, ibex}.
	n, err := e.RecordGuess('e')
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 4, e.RemainingGuesses())
	assert.Equal(t, []string{"ally", "cool", "good"}, e.Candidates())

	n, err = e.RecordGuess('o')
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, e.RemainingGuesses())
	assert.Equal(t, []string{"cool", "good"}, e.Candidates())
	p, _ := e.Pattern()
	assert.Equal(t, "- o o -", p.String())
	assert.Equal(t, 2, p.Count('o'))
}

func TestRecordGuess_Preconditions(t *testing.T) {
	t.Run("no guesses left takes priority", func(t *testing.T) {
		e, err := NewEngine(nil, 3, 0)
		require.NoError(t, err)
		_, err = e.RecordGuess('a')
		assert.ErrorIs(t, err, ErrNoGuessesLeft)
	})

	t.Run("zero budget with words", func(t *testing.T) {
		e, err := NewEngine(fourLetter, 4, 0)
		require.NoError(t, err)
		_, err = e.RecordGuess('a')
		assert.ErrorIs(t, err, ErrNoGuessesLeft)
		assert.Empty(t, e.GuessedLetters())
	})

	t.Run("empty candidate set", func(t *testing.T) {
		e, err := NewEngine(fourLetter, 7, 3)
		require.NoError(t, err)
		assert.Empty(t, e.Candidates())
		_, err = e.Pattern()
		assert.ErrorIs(t, err, ErrEmptyCandidateSet)
		_, err = e.RecordGuess('a')
		assert.ErrorIs(t, err, ErrEmptyCandidateSet)
		assert.Equal(t, 3, e.RemainingGuesses())
	})

	t.Run("duplicate guess is case-insensitive", func(t *testing.T) {
		e, err := NewEngine(fourLetter, 4, 3)
		require.NoError(t, err)
		_, err = e.RecordGuess('E')
		require.NoError(t, err)
		assert.Equal(t, []rune{'e'}, e.GuessedLetters())
		assert.True(t, e.HasGuessed('e'))

		before := capture(t, e)
		_, err = e.RecordGuess('e')
		assert.ErrorIs(t, err, ErrDuplicateGuess)
		if diff := cmp.Diff(before, capture(t, e)); diff != "" {
			t.Errorf("failed guess mutated engine (-before +after):\n%s", diff)
		}
	})
}

func TestRecordGuess_Properties(t *testing.T) {
	const letters = "etaoinshrdlucmfwypvbgkjqxz"

	for _, length := range []int{4, 5} {
		e, err := NewEngine(mixed, length, 8)
		require.NoError(t, err)

		for _, r := range letters {
			before := capture(t, e)
			n, err := e.RecordGuess(r)
			if errors.Is(err, ErrNoGuessesLeft) {
				break
			}
			require.NoError(t, err)
			after := capture(t, e)

			assert.LessOrEqual(t, len(after.Candidates), len(before.Candidates))
			if n == 0 {
				assert.Equal(t, before.Remaining-1, after.Remaining)
				assert.Equal(t, before.Pattern, after.Pattern)
			} else {
				assert.Equal(t, before.Remaining, after.Remaining)
				assert.NotEqual(t, before.Pattern, after.Pattern)
			}
			assertConsistent(t, e)

			// queries are idempotent
			if diff := cmp.Diff(after, capture(t, e)); diff != "" {
				t.Errorf("repeated query differs:\n%s", diff)
			}
		}
	}
}

func TestRecordGuess_Deterministic(t *testing.T) {
	a, err := NewEngine(mixed, 4, 6)
	require.NoError(t, err)
	b, err := NewEngine(mixed, 4, 6)
	require.NoError(t, err)

	for _, r := range "aeioubrstl" {
		na, erra := a.RecordGuess(r)
		nb, errb := b.RecordGuess(r)
		assert.Equal(t, na, nb)
		assert.Equal(t, erra, errb)
		if diff := cmp.Diff(capture(t, a), capture(t, b)); diff != "" {
			t.Fatalf("trajectories diverged after %q:\n%s", r, diff)
		}
	}
}

func TestEngine_CandidatesAreCopies(t *testing.T) {
	e, err := NewEngine(fourLetter, 4, 3)
	require.NoError(t, err)
	c := e.Candidates()
	c[0] = "zzzz"
	assert.Equal(t, "ally", e.Candidates()[0])
}

type engineView struct {
	Candidates []string
	Pattern    string
	Guessed    string
	Remaining  int
}

func capture(t *testing.T, e *Engine) engineView {
	t.Helper()
	p, err := e.Pattern()
	require.NoError(t, err)
	return engineView{
		Candidates: e.Candidates(),
		Pattern:    p.String(),
		Guessed:    string(e.GuessedLetters()),
		Remaining:  e.RemainingGuesses(),
	}
}

// assertConsistent checks every candidate against the pattern and the
// guessed letters: revealed cells must match, blank cells must not hold a
// guessed letter.
func assertConsistent(t *testing.T, e *Engine) {
	t.Helper()
	p, err := e.Pattern()
	require.NoError(t, err)
	for _, w := range e.Candidates() {
		for i, r := range []rune(w) {
			if letter, ok := p.At(i); ok {
				assert.Equal(t, letter, r, "word %q position %d", w, i)
				continue
			}
			assert.False(t, e.HasGuessed(r), "word %q hides guessed %q at %d", w, r, i)
		}
	}
}

func TestNewEngine_LowercasesRuneByRune(t *testing.T) {
	// strings.ToLower would turn 'İ' into two runes and drop the word
	e, err := NewEngine([]string{"İKİ", "ONE"}, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"iki", "one"}, e.Candidates())

	e, err = NewEngine([]string{"İKİ"}, 3, 2)
	require.NoError(t, err)
	n, err := e.RecordGuess('İ')
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, e.HasGuessed('i'))
}
