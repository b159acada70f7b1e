package chip8

import "math"

// DefaultPitch is the pitch register value that plays the pattern buffer at
// the base 4000 bits/s rate.
const DefaultPitch = 64

// AudioPattern is the XO-Chip programmable waveform: a 128-bit pattern
// looped at a pitch-controlled rate while the sound timer is nonzero.
// Plain CHIP-8 and SuperChip leave it zeroed; hosts treat the all-zero
// pattern as the classic monotone beeper.
type AudioPattern struct {
	Pattern [16]byte
	Pitch   uint8
}

// PlaybackRate returns the pattern bit rate in bits per second. The rate
// doubles every 48 pitch steps around the 4000 Hz base.
func (a *AudioPattern) PlaybackRate() float64 {
	return 4000 * math.Pow(2, (float64(a.Pitch)-DefaultPitch)/48)
}

// Silent reports whether the pattern holds no set bits, in which case a host
// may substitute a fixed beep tone.
func (a *AudioPattern) Silent() bool {
	for _, b := range a.Pattern {
		if b != 0 {
			return false
		}
	}
	return true
}

// Bit reports pattern bit i of 128, the unit the playback rate counts in.
func (a *AudioPattern) Bit(i int) bool {
	i &= 127
	return a.Pattern[i/8]&(0x80>>(i%8)) != 0
}
