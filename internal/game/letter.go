package game

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseLetter turns user input into a guessable letter. The input must be a
// single letter after trimming; the result is lowercase.
func ParseLetter(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrInvalidLetter)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrInvalidLetter)
	}
	return unicode.ToLower(r), nil
}

// NormalizeWord lowercases w one rune at a time, the same way guesses are
// lowercased, so a word never changes length on the way in.
func NormalizeWord(w string) string {
	return strings.Map(unicode.ToLower, w)
}
