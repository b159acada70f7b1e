// Package wavdump writes the emulated audio signal to disk as a WAV file.
// The whole signal is rendered in memory first, so it is meant for
// inspecting what a ROM programmed into the pattern buffer, not for
// streaming playback.
package wavdump

import (
	"fmt"
	"os"
	"time"

	wav "github.com/youpy/go-wav"

	"gochip/pkg/chip8"
)

// SampleRate of the rendered file in Hz.
const SampleRate = 44100

// BeepFrequency is the square-wave tone substituted when the pattern buffer
// holds no set bits (plain CHIP-8 and SuperChip sessions).
const BeepFrequency = 440

const (
	sampleHigh = 0xE0
	sampleLow  = 0x20
)

// Render expands the pattern buffer into 8-bit mono samples covering
// duration. The 128-bit pattern loops at the buffer's playback rate; an
// all-zero pattern renders as the classic beeper tone instead.
func Render(pattern *chip8.AudioPattern, duration time.Duration) []wav.Sample {
	n := int(float64(SampleRate) * duration.Seconds())
	samples := make([]wav.Sample, n)

	beep := pattern.Silent()
	rate := pattern.PlaybackRate()
	for i := range samples {
		t := float64(i) / SampleRate
		var high bool
		if beep {
			high = int(t*BeepFrequency*2)%2 == 0
		} else {
			high = pattern.Bit(int(t * rate))
		}
		if high {
			samples[i].Values[0] = sampleHigh
		} else {
			samples[i].Values[0] = sampleLow
		}
	}
	return samples
}

// Write renders the pattern buffer for duration and writes it to filename
// as an 8-bit mono WAV.
func Write(filename string, pattern *chip8.AudioPattern, duration time.Duration) (rerr error) {
	samples := Render(pattern, duration)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("wavdump: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavdump: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(samples)), 1, SampleRate, 8)
	if enc == nil {
		return fmt.Errorf("wavdump: bad parameters for wav encoding")
	}
	if err := enc.WriteSamples(samples); err != nil {
		return fmt.Errorf("wavdump: %w", err)
	}
	return nil
}
