package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/words"
)

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	var (
		dictPath string
		verbose  bool
	)

	root := &cobra.Command{
		Use:          "hangman",
		Short:        "Hangman against a computer that never commits to a word",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&dictPath, "dict", "", "dictionary file, one word per line (default: embedded list)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	load := func() (*words.Dictionary, error) {
		return words.FromEnv(dictPath)
	}

	var opts playOptions
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := load()
			if err != nil {
				return err
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), dict, opts)
		},
	}
	play.Flags().IntVarP(&opts.Length, "length", "l", 5, "word length")
	play.Flags().IntVarP(&opts.MaxGuesses, "guesses", "g", 7, "number of wrong guesses allowed (at least 1)")
	play.Flags().BoolVar(&opts.Debug, "debug", false, "show how many words are still possible")

	lengths := &cobra.Command{
		Use:   "lengths",
		Short: "Print the number of dictionary words per length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			stats := dict.Stats()
			for _, n := range dict.Lengths() {
				fmt.Fprintf(out, "%3d  %d\n", n, stats[n])
			}
			fmt.Fprintf(out, "total %d\n", dict.Len())
			return nil
		},
	}

	root.AddCommand(play, lengths)
	return root
}
