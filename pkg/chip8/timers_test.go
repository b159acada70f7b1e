package chip8

import "testing"

func TestTickDecrementsTimers(t *testing.T) {
	m := New(ModeChip8)
	m.DelayTimer = 90
	m.SoundTimer = 30

	// One second of frames drains exactly 60 from a timer that holds out.
	for i := 0; i < 60; i++ {
		m.Tick()
	}
	if m.DelayTimer != 30 {
		t.Errorf("delay timer: got %d, want 30", m.DelayTimer)
	}
	if m.SoundTimer != 0 {
		t.Errorf("sound timer: got %d, want 0", m.SoundTimer)
	}
}

func TestTickNeverUnderflows(t *testing.T) {
	m := New(ModeChip8)
	m.Tick()
	m.Tick()
	if m.DelayTimer != 0 || m.SoundTimer != 0 {
		t.Errorf("timers underflowed: DT=%d ST=%d", m.DelayTimer, m.SoundTimer)
	}
}

func TestSoundActive(t *testing.T) {
	m := New(ModeChip8)
	if m.SoundActive() {
		t.Error("sound active with a zero timer")
	}
	m.SoundTimer = 1
	if !m.SoundActive() {
		t.Error("sound inactive with a nonzero timer")
	}
	m.Tick()
	if m.SoundActive() {
		t.Error("sound still active after the timer expired")
	}
}

func TestTimersIndependentOfInstructionRate(t *testing.T) {
	// Two machines running the same busy loop at different instruction rates
	// see the same timer value after the same number of frames.
	run := func(stepsPerFrame int) uint8 {
		m := New(ModeChip8)
		loadWords(t, m, 0x6014, 0xF015, 0x1204) // DT=20, spin
		for frame := 0; frame < 10; frame++ {
			for i := 0; i < stepsPerFrame; i++ {
				mustStep(t, m)
			}
			m.Tick()
		}
		return m.DelayTimer
	}

	slow, fast := run(5), run(50)
	if slow != fast {
		t.Errorf("timer depends on instruction rate: %d vs %d", slow, fast)
	}
	if slow != 10 {
		t.Errorf("after 10 frames: DT=%d, want 10", slow)
	}
}
