package audio

import (
	"context"
	_ "embed"
	"sync"
	"time"

	"flipdeck/internal/logging"

	"go.uber.org/zap"
)

// fallbackClip is a short pre-rendered WAV replayed when synthesis fails.
//
//go:embed fallback.wav
var fallbackClip []byte

// FallbackClip returns a copy of the embedded fallback WAV.
func FallbackClip() []byte {
	return append([]byte(nil), fallbackClip...)
}

// cueTimeout bounds one asynchronous cue.
const cueTimeout = 3 * time.Second

// Options configures an Emitter.
type Options struct {
	Enabled    bool
	SampleRate int

	// NewDevice lazily builds the primary device on first Ensure.
	NewDevice func() (Device, error)

	// Fallback receives the pre-rendered clip when the primary path fails.
	Fallback Device
}

// Emitter plays tones best-effort.
type Emitter struct {
	mu         sync.Mutex
	enabled    bool
	sampleRate int
	newDevice  func() (Device, error)
	device     Device
	fallback   Device
	wg         sync.WaitGroup
	log        *zap.Logger
}

// NewEmitter builds an emitter. Zero options give a silent emitter.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{
		enabled:    opts.Enabled,
		sampleRate: opts.SampleRate,
		newDevice:  opts.NewDevice,
		fallback:   opts.Fallback,
		log:        logging.Get(logging.CategoryAudio),
	}
}

// NewSystemEmitter wires a CommandDevice for tones. The fallback replays the
// embedded clip through its own player and rings the terminal bell when
// that fails too.
func NewSystemEmitter(enabled bool, player string, sampleRate int) *Emitter {
	return NewEmitter(Options{
		Enabled:    enabled,
		SampleRate: sampleRate,
		NewDevice: func() (Device, error) {
			return NewCommandDevice(player), nil
		},
		Fallback: NewChainDevice(NewCommandDevice(player), NewBellDevice(nil)),
	})
}

// Ensure initializes the device if needed and tries to resume it when
// suspended. It reports whether a primary device exists; failures are swallowed.
func (e *Emitter) Ensure(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.enabled {
		return false
	}
	if e.device == nil {
		if e.newDevice == nil {
			return false
		}
		dev, err := e.newDevice()
		if err != nil || dev == nil {
			e.log.Debug("audio device unavailable", zap.Error(err))
			return false
		}
		e.device = dev
	}
	if e.device.State() == StateSuspended {
		if err := e.device.Resume(ctx); err != nil {
			e.log.Debug("audio resume failed", zap.Error(err))
		}
	}
	return true
}

// Beep plays tone synchronously. Errors degrade to the fallback clip and
// are otherwise dropped.
func (e *Emitter) Beep(ctx context.Context, tone Tone) {
	if !e.enabled {
		return
	}

	if e.Ensure(ctx) {
		e.mu.Lock()
		dev := e.device
		e.mu.Unlock()

		if dev.State() == StateRunning {
			err := dev.Play(ctx, Render(tone, e.sampleRate))
			if err == nil {
				return
			}
			e.log.Debug("tone playback failed, using fallback clip", zap.Error(err))
		}
	}

	if e.fallback == nil {
		return
	}
	if err := e.fallback.Play(ctx, fallbackClip); err != nil {
		e.log.Debug("fallback clip failed", zap.Error(err))
	}
}

// Cue plays tone on its own goroutine.
func (e *Emitter) Cue(tone Tone) {
	if !e.enabled {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), cueTimeout)
		defer cancel()
		e.Beep(ctx, tone)
	}()
}

// Wait blocks until every queued cue has finished.
func (e *Emitter) Wait() {
	e.wg.Wait()
}

// Close waits for pending cues and releases the devices.
func (e *Emitter) Close() {
	e.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.device != nil {
		closeDevice(e.device)
	}
	if e.fallback != nil {
		closeDevice(e.fallback)
	}
}
