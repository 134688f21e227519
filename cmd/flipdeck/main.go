package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flipdeck/internal/config"
	"flipdeck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flipdeck",
	Short: "flipdeck - shuffle sentence cards and reveal them one by one",
	Long: `flipdeck keeps a deck of sentences, deals them face-down in a random
order, and lets you reveal and discard them one at a time. A countdown
with audible cues can run alongside the round.

Run without arguments to open the interactive card table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace()
		if err != nil {
			return err
		}
		workspace = ws

		loaded, err := config.Load(config.DefaultPath(ws))
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		if err := logging.Initialize(ws, cfg.Logging.ToLogging()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		// The TUI owns the terminal, so --verbose only applies to subcommands.
		logging.UseLogger(nil)
		if verbose && cmd != cmd.Root() {
			zc := zap.NewDevelopmentConfig()
			zc.OutputPaths = []string{"stderr"}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logging.UseLogger(l)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(timerCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return cwd, nil
}
