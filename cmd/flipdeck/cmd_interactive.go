package main

import (
	"context"
	"fmt"
	"os"

	"flipdeck/cmd/flipdeck/deck"
	"flipdeck/internal/config"
	"flipdeck/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// runInteractive opens the card table. The config watcher runs next to
// the program and pushes theme changes into it.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := logging.Get(logging.CategoryBoot)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	path := config.DefaultPath(workspace)
	if err := ensureConfigFile(path); err != nil {
		log.Warn("could not write default config", zap.Error(err))
	}

	model := deck.New(ctx, s.game, deck.Config{Theme: cfg.UI.Theme})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	watcher, err := config.NewWatcher(path, func(c *config.Config) {
		logging.SetLevel(c.Logging.Level)
		p.Send(deck.ThemeMsg{Theme: c.UI.Theme})
	})
	if err != nil {
		log.Warn("config watcher unavailable", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("card table: %w", err)
		}
		return nil
	})
	if watcher != nil {
		g.Go(func() error {
			if err := watcher.Start(gctx); err != nil {
				log.Warn("config watcher failed to start", zap.Error(err))
				return nil
			}
			<-gctx.Done()
			watcher.Stop()
			return nil
		})
	}

	log.Info("card table started", zap.String("workspace", workspace))
	return g.Wait()
}

// ensureConfigFile writes the defaults when no config exists yet, so there is
// a file to edit and watch. Env overrides never end up on disk.
func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return err
	}
	return config.DefaultConfig().Save(path)
}
