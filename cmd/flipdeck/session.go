package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"flipdeck/internal/audio"
	"flipdeck/internal/countdown"
	"flipdeck/internal/game"
	"flipdeck/internal/shuffle"
	"flipdeck/internal/store"

	"github.com/jonboulle/clockwork"
)

// newClock is swapped in tests to drive headless countdowns.
var newClock = func() clockwork.Clock { return clockwork.NewRealClock() }

// session bundles the open store, the emitter and the game for one command.
type session struct {
	kv      store.KV
	store   *store.Store
	emitter *audio.Emitter
	game    *game.Game
}

// openSession opens the configured backend and loads the game. Timer
// options default to the configured ones.
func openSession(ctx context.Context, timerOptions ...string) (*session, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.StatePath(workspace)), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	kv, err := store.OpenKV(cfg, workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to open state: %w", err)
	}

	if len(timerOptions) == 0 {
		timerOptions = cfg.Timer.Options
	}

	s := &session{
		kv:      kv,
		store:   store.New(kv),
		emitter: audio.NewSystemEmitter(cfg.Audio.Enabled, cfg.Audio.Player, cfg.Audio.SampleRate),
	}
	s.game = game.New(ctx, game.Options{
		Store:        s.store,
		Shuffler:     shuffle.New(),
		Countdown:    countdown.New(newClock()),
		Beeper:       s.emitter,
		TimerOptions: timerOptions,
	})
	return s, nil
}

// Close stops the countdown, lets pending beeps finish, then releases the
// audio devices and the store.
func (s *session) Close() error {
	s.game.Close()
	s.emitter.Close()
	return s.store.Close()
}
