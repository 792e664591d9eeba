package game

import "errors"

// Sentinel errors returned by the engine and sessions. None of them are
// transient; callers should report them rather than retry.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidLength     = errors.New("word length must be at least 1")
	ErrInvalidMaxGuesses = errors.New("max incorrect guesses cannot be negative")
	ErrInvalidLetter     = errors.New("guess must be a single letter")

	ErrEmptyCandidateSet = errors.New("the set of words is empty")
	ErrNoGuessesLeft     = errors.New("no guesses left")
	ErrDuplicateGuess    = errors.New("letter already guessed")

	ErrGameOver = errors.New("game finished")
)
