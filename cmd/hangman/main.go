// cmd/hangman
//
// Console driver for the adversarial hangman engine.
//   hangman play    - play a game in the terminal
//   hangman lengths - show how many words the dictionary has per length

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
