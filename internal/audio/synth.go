package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Envelope constants. Gain starts near silence, ramps exponentially to
// peakGain within attack, then decays exponentially back to floorGain by
// the end of the tone. The oscillator runs tail longer than the tone.
const (
	floorGain = 0.0001
	peakGain  = 0.5
	attack    = 10 * time.Millisecond
	tail      = 20 * time.Millisecond
)

// DefaultSampleRate is used when a caller passes a non-positive rate.
const DefaultSampleRate = 44100

// Gain returns the envelope value at offset t into a tone of length d.
func Gain(t, d time.Duration) float64 {
	switch {
	case t <= 0:
		return floorGain
	case t < attack:
		return floorGain * math.Pow(peakGain/floorGain, t.Seconds()/attack.Seconds())
	case t < d && d > attack:
		frac := (t - attack).Seconds() / (d - attack).Seconds()
		return peakGain * math.Pow(floorGain/peakGain, frac)
	default:
		return floorGain
	}
}

// Synthesize renders tone as signed 16-bit mono PCM.
func Synthesize(tone Tone, sampleRate int) []int16 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	total := tone.Duration + tail
	n := int(total.Seconds() * float64(sampleRate))
	out := make([]int16, n)

	for i := 0; i < n; i++ {
		sec := float64(i) / float64(sampleRate)
		t := time.Duration(sec * float64(time.Second))
		phase := 2 * math.Pi * tone.Frequency * sec

		var v float64
		switch tone.Waveform {
		case Square:
			if math.Sin(phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		default:
			v = math.Sin(phase)
		}
		out[i] = int16(math.Round(v * Gain(t, tone.Duration) * math.MaxInt16))
	}
	return out
}

// EncodeWAV wraps PCM samples in a RIFF/WAVE container.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataLen := uint32(len(samples) * 2)
	blockAlign := uint16(channels * bitsPerSample / 8)

	var buf bytes.Buffer
	buf.Grow(44 + int(dataLen))
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	binary.Write(&buf, binary.LittleEndian, blockAlign)
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// Render is Synthesize followed by EncodeWAV.
func Render(tone Tone, sampleRate int) []byte {
	return EncodeWAV(Synthesize(tone, sampleRate), sampleRate)
}
