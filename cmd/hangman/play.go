package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

type playOptions struct {
	Length     int
	MaxGuesses int
	Debug      bool
}

// runPlay runs one console game, reading guesses line by line from in.
// Running out of input ends the game early without an error.
func runPlay(in io.Reader, out io.Writer, dict *words.Dictionary, opts playOptions) error {
	if opts.MaxGuesses < 1 {
		return fmt.Errorf("guesses must be at least 1 (got %d)", opts.MaxGuesses)
	}
	if !dict.Has(opts.Length) {
		return fmt.Errorf("no words of length %d in the dictionary", opts.Length)
	}
	sess, err := game.NewSession(dict.Words(), opts.Length, opts.MaxGuesses, game.ModeNormal)
	if err != nil {
		return err
	}
	log.Debug().Str("gameId", sess.ID).Int("candidates", dict.Count(opts.Length)).Msg("game started")

	fmt.Fprintln(out, "Welcome to hangman. I'm thinking of a word.")
	sc := bufio.NewScanner(in)
	for {
		snap := sess.Snapshot(false)
		if snap.State.Finished() {
			break
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "guesses left: %d\n", snap.Remaining)
		if opts.Debug {
			fmt.Fprintf(out, "DEBUG: %d possible words\n", snap.CandidateCount)
		}
		fmt.Fprintf(out, "guessed: [%s]\n", strings.Join(snap.Guessed, ", "))
		fmt.Fprintf(out, "current: %s\n", snap.Display)
		fmt.Fprint(out, "Your guess? ")

		if !sc.Scan() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "bye")
			return sc.Err()
		}
		letter, err := game.ParseLetter(sc.Text())
		if err != nil {
			fmt.Fprintln(out, "Please enter a single letter.")
			continue
		}
		turn, _, err := sess.Guess(letter)
		switch {
		case errors.Is(err, game.ErrDuplicateGuess):
			fmt.Fprintln(out, "You already guessed that.")
			continue
		case err != nil:
			return err
		}
		switch turn.Occurrences {
		case 0:
			fmt.Fprintf(out, "Sorry, there are no %s's\n", turn.Letter)
		case 1:
			fmt.Fprintf(out, "Yes, there is one %s\n", turn.Letter)
		default:
			fmt.Fprintf(out, "Yes, there are %d %s's\n", turn.Occurrences, turn.Letter)
		}
	}

	snap := sess.Snapshot(false)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "answer = %s\n", snap.Answer)
	if snap.State == game.StateWon {
		fmt.Fprintln(out, "You beat me")
	} else {
		fmt.Fprintln(out, "Sorry, you lose")
	}
	return nil
}
