package chip8

// Tick decrements the delay and sound timers toward zero. The host calls it
// at a fixed 60 Hz cadence, decoupled from how many instructions Step has
// executed in between.
func (m *Machine) Tick() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// SoundActive reports whether the host should be producing sound.
func (m *Machine) SoundActive() bool {
	return m.SoundTimer > 0
}
