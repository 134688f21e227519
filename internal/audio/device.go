package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// DeviceState mirrors an audio context's lifecycle.
type DeviceState int

const (
	StateSuspended DeviceState = iota
	StateRunning
	StateClosed
)

// String returns the state name.
func (s DeviceState) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrSuspended is returned by Play before a successful Resume.
	ErrSuspended = errors.New("audio device suspended")

	// ErrNoPlayer means no usable WAV player was found on PATH.
	ErrNoPlayer = errors.New("no audio player available")
)

// Device plays WAV data.
type Device interface {
	State() DeviceState
	Resume(ctx context.Context) error
	Play(ctx context.Context, wav []byte) error
}

// Swapped out in tests.
var (
	lookPath   = exec.LookPath
	runCommand = func(ctx context.Context, name string, args []string, stdin io.Reader) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdin = stdin
		return cmd.Run()
	}
)

// DefaultPlayers are tried in order when no player is configured.
// "{file}" is replaced by a temp WAV path; without it the WAV goes to stdin.
var DefaultPlayers = []string{"paplay", "aplay -q", "afplay {file}"}

// CommandDevice pipes WAV data into a system player. It starts suspended and
// resolves the player on Resume, which is triggered by the first user action.
type CommandDevice struct {
	mu         sync.Mutex
	candidates []string
	state      DeviceState
	name       string
	args       []string
}

// NewCommandDevice creates a suspended device. An empty player means DefaultPlayers.
func NewCommandDevice(player string) *CommandDevice {
	candidates := DefaultPlayers
	if strings.TrimSpace(player) != "" {
		candidates = []string{player}
	}
	return &CommandDevice{candidates: candidates, state: StateSuspended}
}

// State implements Device.
func (d *CommandDevice) State() DeviceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Resume implements Device by locating the first available player.
func (d *CommandDevice) Resume(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case StateRunning:
		return nil
	case StateClosed:
		return fmt.Errorf("resume: %w", ErrNoPlayer)
	}

	for _, c := range d.candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		path, err := lookPath(fields[0])
		if err != nil {
			continue
		}
		d.name, d.args = path, fields[1:]
		d.state = StateRunning
		return nil
	}
	return ErrNoPlayer
}

// Play implements Device.
func (d *CommandDevice) Play(ctx context.Context, wav []byte) error {
	d.mu.Lock()
	state, name := d.state, d.name
	args := append([]string(nil), d.args...)
	d.mu.Unlock()

	if state != StateRunning {
		return ErrSuspended
	}

	usesFile := false
	for i, a := range args {
		if a == "{file}" {
			usesFile = true
			f, err := os.CreateTemp("", "flipdeck-*.wav")
			if err != nil {
				return fmt.Errorf("create temp wav: %w", err)
			}
			defer os.Remove(f.Name())
			if _, err := f.Write(wav); err != nil {
				f.Close()
				return fmt.Errorf("write temp wav: %w", err)
			}
			f.Close()
			args[i] = f.Name()
		}
	}

	var stdin io.Reader
	if !usesFile {
		stdin = bytes.NewReader(wav)
	}
	if err := runCommand(ctx, name, args, stdin); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close marks the device unusable.
func (d *CommandDevice) Close() {
	d.mu.Lock()
	d.state = StateClosed
	d.mu.Unlock()
}

// BellDevice rings the terminal bell for any clip. It is always running.
type BellDevice struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellDevice writes the bell to w; nil means stderr.
func NewBellDevice(w io.Writer) *BellDevice {
	if w == nil {
		w = os.Stderr
	}
	return &BellDevice{w: w}
}

// State implements Device.
func (b *BellDevice) State() DeviceState { return StateRunning }

// Resume implements Device.
func (b *BellDevice) Resume(context.Context) error { return nil }

// Play implements Device.
func (b *BellDevice) Play(context.Context, []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}

// ChainDevice plays a clip on the first member that accepts it. Suspended
// members are resumed on demand.
type ChainDevice struct {
	devices []Device
}

// NewChainDevice tries devices in order.
func NewChainDevice(devices ...Device) *ChainDevice {
	return &ChainDevice{devices: devices}
}

// State implements Device. A chain is running while any member is usable.
func (c *ChainDevice) State() DeviceState {
	state := StateClosed
	for _, d := range c.devices {
		switch d.State() {
		case StateRunning:
			return StateRunning
		case StateSuspended:
			state = StateSuspended
		}
	}
	return state
}

// Resume implements Device; it succeeds when one member resumes.
func (c *ChainDevice) Resume(ctx context.Context) error {
	err := ErrNoPlayer
	for _, d := range c.devices {
		if err = d.Resume(ctx); err == nil {
			return nil
		}
	}
	return err
}

// Play implements Device.
func (c *ChainDevice) Play(ctx context.Context, wav []byte) error {
	err := ErrNoPlayer
	for _, d := range c.devices {
		if d.State() == StateSuspended {
			if rerr := d.Resume(ctx); rerr != nil {
				err = rerr
				continue
			}
		}
		if d.State() != StateRunning {
			continue
		}
		if err = d.Play(ctx, wav); err == nil {
			return nil
		}
	}
	return err
}

// Close closes every member that can be closed.
func (c *ChainDevice) Close() {
	for _, d := range c.devices {
		closeDevice(d)
	}
}

func closeDevice(d Device) {
	if cl, ok := d.(interface{ Close() }); ok {
		cl.Close()
	}
}
