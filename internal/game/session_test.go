package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RejectsEmptyDictionary(t *testing.T) {
	_, err := NewSession([]string{"aa", "bb"}, 3, 5, ModeNormal)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)

	_, err = NewSession([]string{"aa"}, 0, 5, ModeNormal)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestSession_Won(t *testing.T) {
	s, err := NewSession([]string{"aa", "ab", "bb"}, 2, 3, "")
	require.NoError(t, err)
	assert.Equal(t, ModeNormal, s.Mode)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StatePlaying, s.State())
	assert.Empty(t, s.Answer())

	turn, st, err := s.Guess('A')
	require.NoError(t, err)
	assert.Equal(t, Turn{Letter: "a", Occurrences: 0}, turn)
	assert.Equal(t, StatePlaying, st)

	turn, st, err = s.Guess('b')
	require.NoError(t, err)
	assert.Equal(t, 2, turn.Occurrences)
	assert.Equal(t, StateWon, st)
	assert.Equal(t, "bb", s.Answer())

	_, _, err = s.Guess('c')
	assert.ErrorIs(t, err, ErrGameOver)

	snap := s.Snapshot(false)
	assert.Equal(t, StateWon, snap.State)
	assert.Equal(t, "b b", snap.Display)
	assert.Equal(t, []string{"a", "b"}, snap.Guessed)
	assert.Equal(t, 2, snap.Remaining)
	assert.Equal(t, 1, snap.Wrong)
	assert.Equal(t, "bb", snap.Answer)
	assert.Len(t, snap.History, 2)
	assert.Nil(t, snap.Candidates)
}

func TestSession_Lost(t *testing.T) {
	s, err := NewSession(fourLetter, 4, 1, ModeDaily)
	require.NoError(t, err)

	_, st, err := s.Guess('e')
	require.NoError(t, err)
	assert.Equal(t, StateLost, st)
	assert.Equal(t, "ally", s.Answer())

	_, _, err = s.Guess('o')
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSession_DuplicateGuessKeepsHistory(t *testing.T) {
	s, err := NewSession(fourLetter, 4, 3, ModeNormal)
	require.NoError(t, err)

	_, _, err = s.Guess('o')
	require.NoError(t, err)
	_, st, err := s.Guess('O')
	assert.ErrorIs(t, err, ErrDuplicateGuess)
	assert.Equal(t, StatePlaying, st)
	assert.Len(t, s.Snapshot(false).History, 1)
}

func TestSnapshot_JSON(t *testing.T) {
	s, err := NewSession(fourLetter, 4, 5, ModeNormal)
	require.NoError(t, err)
	_, _, err = s.Guess('e')
	require.NoError(t, err)
	_, _, err = s.Guess('o')
	require.NoError(t, err)

	raw, err := json.Marshal(s.Snapshot(true))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, []any{"", "o", "o", ""}, got["pattern"])
	assert.Equal(t, "- o o -", got["display"])
	assert.Equal(t, float64(2), got["candidateCount"])
	assert.Equal(t, []any{"cool", "good"}, got["candidates"])
	assert.Equal(t, "playing", got["state"])
	assert.NotContains(t, got, "answer")
}
