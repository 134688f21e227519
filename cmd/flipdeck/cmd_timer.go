package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"flipdeck/internal/config"
	"flipdeck/internal/countdown"
	"flipdeck/internal/game"
	"flipdeck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errChoiceDrawn is returned when the random pick asks for a typed duration.
var errChoiceDrawn = errors.New(`drew "Your Choice": run again with a number of minutes`)

// timerCmd runs a countdown without the card table
var timerCmd = &cobra.Command{
	Use:   "timer [minutes]",
	Short: "Run a countdown in the terminal",
	Long: `Runs a countdown with beeps at 3, 2 and 1 seconds and a final tone.
Without an argument the duration is drawn from the configured timer options.

Interrupting keeps the remaining seconds, so the card table resumes them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTimer,
}

func runTimer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// A typed duration takes the same path as the "choice" option.
	var options []string
	input := ""
	if len(args) == 1 {
		options = []string{config.ChoiceOption}
		input = args[0]
	}

	s, err := openSession(ctx, options...)
	if err != nil {
		return err
	}
	defer s.Close()

	choice, err := s.game.PickDuration(ctx)
	if err != nil {
		return err
	}
	if choice.Custom && input == "" {
		return errChoiceDrawn
	}

	h, err := s.game.StartTimer(ctx, input)
	if err != nil {
		return err
	}
	if h == nil {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Timer: %s\n", s.game.Display().Time)
	return runCountdown(ctx, s.game, h, out)
}

// runCountdown feeds ticks into g from a waiter goroutine so g itself is
// only touched here. Cancelling ctx pauses: the countdown stops, the
// persisted remaining seconds are kept and nil is returned.
func runCountdown(ctx context.Context, g *game.Game, h *countdown.Handle, out io.Writer) error {
	log := logging.Get(logging.CategoryCountdown)

	ticks := make(chan struct{})
	go func() {
		defer close(ticks)
		for h.Wait() {
			select {
			case ticks <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			left := ""
			if st := g.State(); st.RemainingSeconds != nil {
				left = countdown.Format(*st.RemainingSeconds)
			}
			g.Close()
			for range ticks {
			}
			fmt.Fprintf(out, "\nPaused with %s left; flipdeck resumes it.\n", left)
			log.Info("headless countdown interrupted", zap.String("left", left))
			return nil

		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			ev, err := g.Tick(ctx)
			if err != nil {
				log.Warn("tick persist failed", zap.Error(err))
			}
			fmt.Fprintf(out, "\r%-6s", ev.Display)
			if ev.Done {
				fmt.Fprintln(out)
				return nil
			}
		}
	}
}
