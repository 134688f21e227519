// Package audio synthesizes the countdown cues and plays them on whatever
// the machine offers: a system WAV player, else the embedded fallback clip
// on the fallback device (the terminal bell by default). Every failure is
// swallowed; cues must never hold up the countdown.
package audio

import "time"

// Waveform is the oscillator shape.
type Waveform string

const (
	Sine   Waveform = "sine"
	Square Waveform = "square"
)

// Tone is one beep.
type Tone struct {
	Duration  time.Duration
	Frequency float64
	Waveform  Waveform
}

var (
	// TickTone is the short high beep for 3-2-1.
	TickTone = Tone{Duration: 180 * time.Millisecond, Frequency: 880, Waveform: Sine}

	// FinalTone is the deeper, longer beep at zero.
	FinalTone = Tone{Duration: 350 * time.Millisecond, Frequency: 330, Waveform: Square}
)
