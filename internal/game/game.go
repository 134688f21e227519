// Package game is the top-level controller for a flipdeck session. It owns
// the application state and routes every user action through one
// mutate-then-persist transaction before the UI redraws from Cards and Display.
package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"flipdeck/internal/audio"
	"flipdeck/internal/config"
	"flipdeck/internal/countdown"
	"flipdeck/internal/logging"
	"flipdeck/internal/shuffle"
	"flipdeck/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidDuration is returned when the custom duration is not a positive integer.
	ErrInvalidDuration = errors.New("invalid duration: enter a positive whole number of minutes")

	// ErrTimerBusy is returned by timer controls while a countdown runs.
	ErrTimerBusy = errors.New("timer controls are disabled while the countdown runs")
)

const (
	// ChoiceLabel is shown when the user gets to type the duration.
	ChoiceLabel = "Your Choice"

	// InvalidDurationAlert is the user-facing alert for ErrInvalidDuration.
	InvalidDurationAlert = "Enter valid time"
)

// Beeper plays countdown cues.
type Beeper interface {
	Ensure(ctx context.Context) bool
	Cue(tone audio.Tone)
}

// Display is the UI-facing state that is not persisted.
type Display struct {
	// Time is the clock label: "", "<N> min", "Your Choice", "M:SS" or "DONE!".
	Time string

	// CustomEntryVisible shows the numeric duration input.
	CustomEntryVisible bool

	// ControlsEnabled gates the pick-duration and start-timer controls.
	ControlsEnabled bool

	Running bool
}

// Choice is the outcome of PickDuration.
type Choice struct {
	Minutes int
	Custom  bool
}

// Options configures a Game. Nil fields get working defaults.
type Options struct {
	Store        *store.Store
	Shuffler     *shuffle.Shuffler
	Countdown    *countdown.Countdown
	Beeper       Beeper
	TimerOptions []string
}

// Game is the controller. Its methods must be called from one goroutine.
type Game struct {
	state     store.State
	store     *store.Store
	rng       *shuffle.Shuffler
	countdown *countdown.Countdown
	beeper    Beeper
	options   []string

	order   []int
	showAll bool
	display Display
	round   uuid.UUID

	log *zap.Logger
}

// New loads the persisted state and returns a game showing every sentence
// in natural order. Call Restore afterwards to resume an interrupted countdown.
func New(ctx context.Context, opts Options) *Game {
	g := &Game{
		store:     opts.Store,
		rng:       opts.Shuffler,
		countdown: opts.Countdown,
		beeper:    opts.Beeper,
		options:   opts.TimerOptions,
		showAll:   true,
		round:     uuid.New(),
		log:       logging.Get(logging.CategoryGame),
	}
	if g.rng == nil {
		g.rng = shuffle.New()
	}
	if g.countdown == nil {
		g.countdown = countdown.New(nil)
	}
	if g.beeper == nil {
		g.beeper = audio.NewEmitter(audio.Options{})
	}
	if len(g.options) == 0 {
		g.options = config.DefaultConfig().Timer.Options
	}

	if g.store != nil {
		g.state = g.store.Load(ctx)
	} else {
		g.state = store.Default()
	}

	g.display = Display{ControlsEnabled: true}
	if g.state.ChosenTime != nil && g.state.RemainingSeconds == nil {
		g.display.Time = minutesLabel(*g.state.ChosenTime)
	}

	g.log.Info("game loaded",
		zap.Int("sentences", len(g.state.Sentences)),
		zap.Int("revealed", g.state.Revealed.Len()))
	return g
}

// mutate applies fn to the state and persists the result. The in-memory
// change stands even when the save fails.
func (g *Game) mutate(ctx context.Context, fn func(*store.State)) error {
	fn(&g.state)
	if g.store == nil {
		return nil
	}
	if err := g.store.Save(ctx, g.state); err != nil {
		g.log.Error("persist failed", zap.Error(err))
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Cards renders the current card list.
func (g *Game) Cards() []Card {
	return Render(g.state.Sentences, g.state.Revealed, g.order, g.showAll)
}

// Display returns the UI flags.
func (g *Game) Display() Display { return g.display }

// State returns a copy of the durable state.
func (g *Game) State() store.State { return g.state.Clone() }

// Round identifies the current round in logs.
func (g *Game) Round() uuid.UUID { return g.round }

// Phase returns the countdown phase.
func (g *Game) Phase() countdown.Phase { return g.countdown.Phase() }

// AddSentence appends the trimmed input. Empty input is ignored and
// reported as not added; the caller clears its input field on success.
func (g *Game) AddSentence(ctx context.Context, input string) (bool, error) {
	val := strings.TrimSpace(input)
	if val == "" {
		return false, nil
	}

	err := g.mutate(ctx, func(s *store.State) {
		s.Sentences = append(s.Sentences, val)
	})
	g.order = nil
	g.showAll = true
	g.log.Debug("sentence added", zap.Int("count", len(g.state.Sentences)))
	return true, err
}

// StartRound hides every card in a fresh shuffled order.
// It is a no-op on an empty deck.
func (g *Game) StartRound(ctx context.Context) error {
	if len(g.state.Sentences) == 0 {
		return nil
	}

	err := g.mutate(ctx, func(s *store.State) {
		s.Revealed = store.IndexSet{}
	})
	g.order = g.rng.Indices(len(g.state.Sentences))
	g.showAll = false
	g.round = uuid.New()
	g.log.Info("round started",
		zap.String("round", g.round.String()),
		zap.Int("cards", len(g.order)))
	return err
}

// Reveal turns one card face-up, keeping the current layout. Revealing an
// already revealed card does nothing.
func (g *Game) Reveal(ctx context.Context, index int) error {
	if index < 0 || index >= len(g.state.Sentences) || g.state.Revealed.Has(index) {
		return nil
	}

	err := g.mutate(ctx, func(s *store.State) {
		if s.Revealed == nil {
			s.Revealed = store.IndexSet{}
		}
		s.Revealed.Add(index)
	})
	g.showAll = false
	g.log.Debug("card revealed", zap.String("round", g.round.String()), zap.Int("index", index))
	return err
}

// Remove deletes a revealed card's sentence and re-indexes the revealed
// set. Face-down cards have no remove control, so removing one is a no-op.
func (g *Game) Remove(ctx context.Context, index int) error {
	if index < 0 || index >= len(g.state.Sentences) || !g.state.Revealed.Has(index) {
		return nil
	}

	err := g.mutate(ctx, func(s *store.State) {
		s.Sentences = append(s.Sentences[:index:index], s.Sentences[index+1:]...)
		s.Revealed = s.Revealed.WithoutIndex(index)
	})
	g.order = nil
	g.showAll = false
	g.log.Debug("card removed", zap.Int("index", index), zap.Int("remaining", len(g.state.Sentences)))
	return err
}

// ResetAll clears the deck and the timer and re-enables the timer controls.
// A running countdown is cancelled along with its remaining seconds.
func (g *Game) ResetAll(ctx context.Context) error {
	g.countdown.Stop()

	err := g.mutate(ctx, func(s *store.State) {
		*s = store.Default()
	})
	g.display = Display{ControlsEnabled: true}
	g.order = nil
	g.showAll = true
	g.log.Info("reset all")
	return err
}

// PickDuration picks one of the configured timer options uniformly.
func (g *Game) PickDuration(ctx context.Context) (Choice, error) {
	if !g.display.ControlsEnabled {
		return Choice{}, ErrTimerBusy
	}

	opt := g.options[g.rng.Intn(len(g.options))]

	if opt == config.ChoiceOption {
		g.countdown.Configure()
		g.display.CustomEntryVisible = true
		g.display.Time = ChoiceLabel
		err := g.mutate(ctx, func(s *store.State) { s.ChosenTime = nil })
		g.log.Debug("duration picked", zap.String("option", opt))
		return Choice{Custom: true}, err
	}

	minutes, convErr := strconv.Atoi(opt)
	if convErr != nil || minutes <= 0 {
		return Choice{}, fmt.Errorf("invalid timer option %q", opt)
	}
	g.countdown.Configure()
	g.display.CustomEntryVisible = false
	g.display.Time = minutesLabel(minutes)
	err := g.mutate(ctx, func(s *store.State) { s.ChosenTime = &minutes })
	g.log.Debug("duration picked", zap.Int("minutes", minutes))
	return Choice{Minutes: minutes}, err
}

// StartTimer starts the countdown from the chosen duration. When no
// duration is chosen but the custom entry is visible, customInput must be a
// positive integer. Without any duration it returns a nil handle and no error.
func (g *Game) StartTimer(ctx context.Context, customInput string) (*countdown.Handle, error) {
	if !g.display.ControlsEnabled || g.countdown.Running() {
		return nil, ErrTimerBusy
	}

	g.beeper.Ensure(ctx)

	var saveErr error
	if g.state.ChosenTime == nil && g.display.CustomEntryVisible {
		minutes, err := ParseMinutes(customInput)
		if err != nil {
			return nil, err
		}
		g.display.Time = minutesLabel(minutes)
		saveErr = g.mutate(ctx, func(s *store.State) { s.ChosenTime = &minutes })
	}
	if g.state.ChosenTime == nil {
		return nil, saveErr
	}

	h, err := g.startCountdown(ctx, *g.state.ChosenTime*60)
	if err != nil {
		return h, err
	}
	return h, saveErr
}

// startCountdown enters Running with the given seconds and persists them.
func (g *Game) startCountdown(ctx context.Context, seconds int) (*countdown.Handle, error) {
	h, err := g.countdown.Start(seconds)
	if errors.Is(err, countdown.ErrNothingToRun) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	g.display.ControlsEnabled = false
	g.display.Running = true
	saveErr := g.mutate(ctx, func(s *store.State) { s.RemainingSeconds = &seconds })
	g.log.Info("timer started", zap.Int("seconds", seconds))
	return h, saveErr
}

// Tick applies one countdown second, plays its cue and persists the result.
// Ticks arriving when no countdown runs are ignored.
func (g *Game) Tick(ctx context.Context) (countdown.Event, error) {
	if !g.countdown.Running() {
		return countdown.Event{}, nil
	}

	ev := g.countdown.Tick()
	switch ev.Cue {
	case countdown.CueTick:
		g.beeper.Cue(audio.TickTone)
	case countdown.CueFinal:
		g.beeper.Cue(audio.FinalTone)
	}
	g.display.Time = ev.Display

	if !ev.Done {
		remaining := ev.Remaining
		return ev, g.mutate(ctx, func(s *store.State) { s.RemainingSeconds = &remaining })
	}

	g.display.CustomEntryVisible = false
	g.display.ControlsEnabled = true
	g.display.Running = false
	err := g.mutate(ctx, func(s *store.State) {
		s.ChosenTime = nil
		s.RemainingSeconds = nil
	})
	return ev, err
}

// Restore resumes a countdown that was running when the previous session
// ended. The cards are redrawn face-down in a fresh shuffle. It returns a nil
// handle when nothing was running.
func (g *Game) Restore(ctx context.Context) (*countdown.Handle, error) {
	if g.state.RemainingSeconds == nil || *g.state.RemainingSeconds <= 0 {
		return nil, nil
	}
	seconds := *g.state.RemainingSeconds

	h, err := g.countdown.Start(seconds)
	if err != nil {
		return nil, err
	}
	g.display.ControlsEnabled = false
	g.display.Running = true
	g.display.Time = countdown.Format(seconds)
	g.order = g.rng.Indices(len(g.state.Sentences))
	g.showAll = false
	g.log.Info("countdown resumed", zap.Int("seconds", seconds))
	return h, nil
}

// Close cancels any running countdown. The persisted remaining seconds are
// kept so the next session can resume.
func (g *Game) Close() {
	g.countdown.Stop()
}

// ParseMinutes validates a typed duration. Trailing text is rejected, so
// "1.5" and "3m" are errors rather than 1 and 3.
func ParseMinutes(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, ErrInvalidDuration
	}
	return v, nil
}

func minutesLabel(m int) string {
	return fmt.Sprintf("%d min", m)
}
