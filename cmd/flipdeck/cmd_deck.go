package main

import (
	"fmt"
	"strings"

	"flipdeck/internal/shuffle"

	"github.com/spf13/cobra"
)

// addCmd appends one sentence
var addCmd = &cobra.Command{
	Use:   "add [sentence...]",
	Short: "Add a sentence to the deck",
	Long: `Adds a sentence to the deck. Multiple arguments are joined with spaces.

Example:
  flipdeck add "The quick brown fox"
  flipdeck add jumps over the lazy dog`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// listCmd prints the deck
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sentences in the deck",
	RunE:  runList,
}

// shuffleCmd prints one shuffled order
var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Print the deck in a random order",
	RunE:  runShuffle,
}

// resetCmd clears everything
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every sentence and clear the timer",
	RunE:  runReset,
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	added, err := s.game.AddSentence(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("sentence is empty")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added (%d in deck)\n", len(s.game.State().Sentences))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	st := s.game.State()
	if len(st.Sentences) == 0 {
		fmt.Fprintln(out, "Deck is empty.")
		return nil
	}
	for i, sentence := range st.Sentences {
		mark := " "
		if st.Revealed.Has(i) {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %3d  %s\n", mark, i+1, sentence)
	}
	if st.ChosenTime != nil {
		fmt.Fprintf(out, "\nTimer: %d min", *st.ChosenTime)
		if st.RemainingSeconds != nil {
			fmt.Fprintf(out, " (%ds left)", *st.RemainingSeconds)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runShuffle(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	sentences := s.game.State().Sentences
	for n, idx := range shuffle.New().Indices(len(sentences)) {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", n+1, sentences[idx])
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.game.ResetAll(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deck cleared.")
	return nil
}
