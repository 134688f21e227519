package audio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeDevice records what it was asked to play.
type fakeDevice struct {
	mu        sync.Mutex
	state     DeviceState
	resumeErr error
	playErr   error
	resumes   int
	played    [][]byte
}

func (f *fakeDevice) State() DeviceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeDevice) Resume(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
	if f.resumeErr != nil {
		return f.resumeErr
	}
	f.state = StateRunning
	return nil
}

func (f *fakeDevice) Play(_ context.Context, wav []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, wav)
	return f.playErr
}

func (f *fakeDevice) plays() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

func TestEmitter_ResumesSuspendedDevice(t *testing.T) {
	dev := &fakeDevice{state: StateSuspended}
	e := NewEmitter(Options{Enabled: true, NewDevice: func() (Device, error) { return dev, nil }})

	assert.True(t, e.Ensure(context.Background()))
	assert.Equal(t, StateRunning, dev.State())
	assert.Equal(t, 1, dev.resumes)

	// already running: no second resume
	e.Ensure(context.Background())
	assert.Equal(t, 1, dev.resumes)
}

func TestEmitter_PlaysSynthesizedTone(t *testing.T) {
	dev := &fakeDevice{state: StateRunning}
	fb := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{
		Enabled:    true,
		SampleRate: 8000,
		NewDevice:  func() (Device, error) { return dev, nil },
		Fallback:   fb,
	})

	e.Beep(context.Background(), TickTone)

	require.Equal(t, 1, dev.plays())
	assert.Equal(t, Render(TickTone, 8000), dev.played[0])
	assert.Equal(t, 0, fb.plays())
}

func TestEmitter_FallsBackWhenPlayFails(t *testing.T) {
	dev := &fakeDevice{state: StateRunning, playErr: errors.New("device busy")}
	fb := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{
		Enabled:   true,
		NewDevice: func() (Device, error) { return dev, nil },
		Fallback:  fb,
	})

	e.Beep(context.Background(), FinalTone)

	require.Equal(t, 1, fb.plays())
	assert.Equal(t, FallbackClip(), fb.played[0])
}

func TestEmitter_FallsBackWhenDeviceMissing(t *testing.T) {
	fb := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{
		Enabled:   true,
		NewDevice: func() (Device, error) { return nil, errors.New("no audio") },
		Fallback:  fb,
	})

	assert.False(t, e.Ensure(context.Background()))
	e.Beep(context.Background(), TickTone)
	assert.Equal(t, 1, fb.plays())
}

func TestEmitter_FallsBackWhenResumeFails(t *testing.T) {
	dev := &fakeDevice{state: StateSuspended, resumeErr: errors.New("policy")}
	fb := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{
		Enabled:   true,
		NewDevice: func() (Device, error) { return dev, nil },
		Fallback:  fb,
	})

	e.Beep(context.Background(), TickTone)
	assert.Equal(t, 0, dev.plays())
	assert.Equal(t, 1, fb.plays())
}

func TestEmitter_SwallowsFallbackFailure(t *testing.T) {
	fb := &fakeDevice{state: StateRunning, playErr: errors.New("no tty")}
	e := NewEmitter(Options{Enabled: true, Fallback: fb})

	assert.NotPanics(t, func() { e.Beep(context.Background(), TickTone) })
}

func TestEmitter_DisabledIsSilent(t *testing.T) {
	dev := &fakeDevice{state: StateRunning}
	fb := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{
		Enabled:   false,
		NewDevice: func() (Device, error) { return dev, nil },
		Fallback:  fb,
	})

	assert.False(t, e.Ensure(context.Background()))
	e.Beep(context.Background(), TickTone)
	e.Cue(FinalTone)
	e.Wait()

	assert.Equal(t, 0, dev.plays())
	assert.Equal(t, 0, fb.plays())
}

func TestEmitter_CueIsAsync(t *testing.T) {
	defer goleak.VerifyNone(t)

	dev := &fakeDevice{state: StateRunning}
	e := NewEmitter(Options{Enabled: true, NewDevice: func() (Device, error) { return dev, nil }})

	e.Cue(TickTone)
	e.Cue(TickTone)
	e.Cue(FinalTone)
	e.Wait()

	assert.Equal(t, 3, dev.plays())
}

func TestCommandDevice_ResumeFindsPlayer(t *testing.T) {
	origLook, origRun := lookPath, runCommand
	t.Cleanup(func() { lookPath, runCommand = origLook, origRun })

	lookPath = func(name string) (string, error) {
		if name == "aplay" {
			return "/usr/bin/aplay", nil
		}
		return "", exec.ErrNotFound
	}
	var gotName string
	var gotArgs []string
	var gotStdin []byte
	runCommand = func(_ context.Context, name string, args []string, stdin io.Reader) error {
		gotName, gotArgs = name, args
		if stdin != nil {
			gotStdin, _ = io.ReadAll(stdin)
		}
		return nil
	}

	d := NewCommandDevice("")
	assert.Equal(t, StateSuspended, d.State())
	assert.ErrorIs(t, d.Play(context.Background(), []byte("x")), ErrSuspended)

	require.NoError(t, d.Resume(context.Background()))
	assert.Equal(t, StateRunning, d.State())

	require.NoError(t, d.Play(context.Background(), []byte("wavdata")))
	assert.Equal(t, "/usr/bin/aplay", gotName)
	assert.Equal(t, []string{"-q"}, gotArgs)
	assert.Equal(t, []byte("wavdata"), gotStdin)
}

func TestCommandDevice_FilePlaceholder(t *testing.T) {
	origLook, origRun := lookPath, runCommand
	t.Cleanup(func() { lookPath, runCommand = origLook, origRun })

	lookPath = func(name string) (string, error) { return "/bin/" + name, nil }
	var args []string
	var stdin io.Reader
	runCommand = func(_ context.Context, _ string, a []string, in io.Reader) error {
		args, stdin = a, in
		return nil
	}

	d := NewCommandDevice("afplay {file}")
	require.NoError(t, d.Resume(context.Background()))
	require.NoError(t, d.Play(context.Background(), []byte("wav")))

	require.Len(t, args, 1)
	assert.NotEqual(t, "{file}", args[0])
	assert.Nil(t, stdin)
}

func TestCommandDevice_NoPlayer(t *testing.T) {
	origLook := lookPath
	t.Cleanup(func() { lookPath = origLook })
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	d := NewCommandDevice("")
	assert.ErrorIs(t, d.Resume(context.Background()), ErrNoPlayer)
	assert.Equal(t, StateSuspended, d.State())

	d.Close()
	assert.Equal(t, StateClosed, d.State())
	assert.Error(t, d.Resume(context.Background()))
}

func TestBellDevice(t *testing.T) {
	var buf bytes.Buffer
	b := NewBellDevice(&buf)
	assert.Equal(t, StateRunning, b.State())
	require.NoError(t, b.Play(context.Background(), FallbackClip()))
	assert.Equal(t, "\a", buf.String())
}

func TestDeviceStateString(t *testing.T) {
	assert.Equal(t, "suspended", StateSuspended.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "closed", StateClosed.String())
}

func TestSystemEmitter_ReplaysEmbeddedClip(t *testing.T) {
	origLook, origRun := lookPath, runCommand
	t.Cleanup(func() { lookPath, runCommand = origLook, origRun })

	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	var (
		mu     sync.Mutex
		inputs [][]byte
	)
	runCommand = func(_ context.Context, _ string, _ []string, stdin io.Reader) error {
		data, _ := io.ReadAll(stdin)
		mu.Lock()
		inputs = append(inputs, data)
		mu.Unlock()
		return errors.New("sink unavailable")
	}

	e := NewSystemEmitter(true, "", 8000)
	e.Beep(context.Background(), TickTone)
	e.Close()

	require.Len(t, inputs, 2, "tone, then the embedded clip")
	assert.Equal(t, Render(TickTone, 8000), inputs[0])
	assert.Equal(t, FallbackClip(), inputs[1])
}

func TestSystemEmitter_ClipPlaysWhenToneFails(t *testing.T) {
	origLook, origRun := lookPath, runCommand
	t.Cleanup(func() { lookPath, runCommand = origLook, origRun })

	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	var played [][]byte
	runCommand = func(_ context.Context, _ string, _ []string, stdin io.Reader) error {
		data, _ := io.ReadAll(stdin)
		played = append(played, data)
		if len(played) == 1 {
			return errors.New("tone rejected")
		}
		return nil
	}

	e := NewSystemEmitter(true, "", 8000)
	e.Beep(context.Background(), FinalTone)

	require.Len(t, played, 2)
	assert.Equal(t, FallbackClip(), played[1])
}

func TestChainDevice_FallsThroughToBell(t *testing.T) {
	var bell bytes.Buffer
	clip := &fakeDevice{state: StateSuspended}
	chain := NewChainDevice(clip, NewBellDevice(&bell))

	// suspended members are resumed before playing
	require.NoError(t, chain.Play(context.Background(), FallbackClip()))
	assert.Equal(t, 1, clip.resumes)
	assert.Equal(t, 1, clip.plays())
	assert.Empty(t, bell.String())

	clip.playErr = errors.New("busy")
	require.NoError(t, chain.Play(context.Background(), FallbackClip()))
	assert.Equal(t, "\a", bell.String())
}

func TestChainDevice_SkipsUnresumable(t *testing.T) {
	var bell bytes.Buffer
	clip := &fakeDevice{state: StateSuspended, resumeErr: ErrNoPlayer}
	chain := NewChainDevice(clip, NewBellDevice(&bell))

	require.NoError(t, chain.Play(context.Background(), FallbackClip()))
	assert.Equal(t, 0, clip.plays())
	assert.Equal(t, "\a", bell.String())
	assert.Equal(t, StateRunning, chain.State())
}

func TestChainDevice_AllFail(t *testing.T) {
	chain := NewChainDevice(&fakeDevice{state: StateRunning, playErr: errors.New("a")})
	assert.Error(t, chain.Play(context.Background(), nil))
	assert.ErrorIs(t, NewChainDevice().Play(context.Background(), nil), ErrNoPlayer)
}

func TestEmitter_CloseReleasesDevices(t *testing.T) {
	origLook := lookPath
	t.Cleanup(func() { lookPath = origLook })
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	primary := NewCommandDevice("")
	clip := NewCommandDevice("")
	e := NewEmitter(Options{
		Enabled:   true,
		NewDevice: func() (Device, error) { return primary, nil },
		Fallback:  NewChainDevice(clip, NewBellDevice(io.Discard)),
	})
	require.True(t, e.Ensure(context.Background()))

	e.Close()
	assert.Equal(t, StateClosed, primary.State())
	assert.Equal(t, StateClosed, clip.State())
}
