// Package countdown implements the one-tick-per-second countdown state
// machine. A running countdown owns exactly one Handle; the handle is the
// cancellable timer and its liveness is the single "is running" flag.
package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"flipdeck/internal/logging"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyRunning is returned by Start while a handle is live.
	ErrAlreadyRunning = errors.New("countdown already running")

	// ErrNothingToRun is returned by Start for a non-positive duration.
	ErrNothingToRun = errors.New("countdown has no time to run")
)

// DoneLabel is shown when a countdown completes.
const DoneLabel = "DONE!"

// TickInterval is the period between ticks.
const TickInterval = time.Second

// Phase is the controller state.
type Phase int

const (
	PhaseIdle        Phase = iota // No countdown
	PhaseConfiguring              // A duration is being chosen
	PhaseRunning                  // Ticking once per second
)

// String returns the display name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfiguring:
		return "configuring"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Cue is the audible signal a tick asks for.
type Cue int

const (
	CueNone  Cue = iota
	CueTick      // short high beep at 3, 2, 1
	CueFinal     // long low beep at 0
)

// Event describes the outcome of one tick.
type Event struct {
	Remaining int
	Display   string
	Cue       Cue
	Done      bool
}

// Countdown is the controller. It is not safe for concurrent mutation;
// callers drive it from a single event loop.
type Countdown struct {
	clock     clockwork.Clock
	phase     Phase
	remaining int
	handle    *Handle
	log       *zap.Logger
}

// New returns an idle countdown. A nil clock means the real clock.
func New(clock clockwork.Clock) *Countdown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Countdown{
		clock: clock,
		log:   logging.Get(logging.CategoryCountdown),
	}
}

// Phase returns the current phase.
func (c *Countdown) Phase() Phase { return c.phase }

// Remaining returns the seconds left (0 when idle).
func (c *Countdown) Remaining() int { return c.remaining }

// Running reports whether a live handle exists.
func (c *Countdown) Running() bool { return c.handle != nil }

// Handle returns the live handle, or nil.
func (c *Countdown) Handle() *Handle { return c.handle }

// Configure marks that a duration is being chosen. No effect while running.
func (c *Countdown) Configure() {
	if c.Running() {
		return
	}
	c.phase = PhaseConfiguring
}

// Start enters Running with the given number of seconds and returns
// the handle whose Wait delivers ticks.
func (c *Countdown) Start(seconds int) (*Handle, error) {
	if seconds <= 0 {
		return nil, ErrNothingToRun
	}
	if c.Running() {
		return nil, ErrAlreadyRunning
	}

	c.remaining = seconds
	c.phase = PhaseRunning
	c.handle = newHandle(c.clock.NewTicker(TickInterval))
	c.log.Info("countdown started", zap.Int("seconds", seconds))
	return c.handle, nil
}

// Tick applies one second. Ticks while not running are ignored and
// report Done with an empty display.
func (c *Countdown) Tick() Event {
	if !c.Running() {
		return Event{Done: true}
	}

	c.remaining--
	ev := Event{Remaining: c.remaining, Display: Format(c.remaining)}

	switch c.remaining {
	case 3, 2, 1:
		ev.Cue = CueTick
	case 0:
		ev.Cue = CueFinal
	}

	if c.remaining <= 0 {
		c.finish()
		ev.Done = true
		ev.Display = DoneLabel
		c.log.Info("countdown finished")
	}
	return ev
}

// Stop cancels a live countdown and returns to Idle.
func (c *Countdown) Stop() {
	if c.handle != nil {
		c.log.Info("countdown stopped", zap.Int("remaining", c.remaining))
	}
	c.finish()
}

func (c *Countdown) finish() {
	if c.handle != nil {
		c.handle.stop()
		c.handle = nil
	}
	c.remaining = 0
	c.phase = PhaseIdle
}

// Format renders seconds as M:SS, or "" when there is nothing left.
func Format(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Handle is a cancellable one-second ticker.
type Handle struct {
	ticker clockwork.Ticker
	done   chan struct{}
	once   sync.Once
}

func newHandle(t clockwork.Ticker) *Handle {
	return &Handle{ticker: t, done: make(chan struct{})}
}

// Wait blocks until the next tick. It returns false once the handle is stopped.
func (h *Handle) Wait() bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case <-h.ticker.Chan():
		return true
	case <-h.done:
		return false
	}
}

// Stopped reports whether the handle has been cancelled.
func (h *Handle) Stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Handle) stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
