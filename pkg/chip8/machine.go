// Package chip8 implements the CHIP-8 virtual machine and its SuperChip and
// XO-Chip extensions: memory and register bank, opcode decode and execution,
// display compositing, timers and the quirk table that selects between the
// three machines' semantics.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

// StepResult tells the host what a Step call did beyond normal continuation.
type StepResult int

const (
	// StepNormal means the instruction completed and the next Step may
	// follow immediately.
	StepNormal StepResult = iota
	// StepDisplayWait means a draw completed under the display-wait quirk;
	// the host should finish the current frame before stepping again.
	StepDisplayWait
	// StepKeyWait means the machine is blocked on the wait-for-key opcode.
	// The program counter does not advance until a key release arrives,
	// but timers and rendering must keep running.
	StepKeyWait
	// StepExit means the program requested termination (SuperChip 00FD).
	StepExit
	// StepHalted means the machine was already halted by a previous exit
	// or fatal error and no instruction was executed.
	StepHalted
)

func (r StepResult) String() string {
	switch r {
	case StepNormal:
		return "normal"
	case StepDisplayWait:
		return "display-wait"
	case StepKeyWait:
		return "key-wait"
	case StepExit:
		return "exit"
	case StepHalted:
		return "halted"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Machine is one emulator session. All state is owned exclusively by the
// caller driving Step; nothing is shared between sessions, so independent
// machines can coexist.
type Machine struct {
	Memory []byte
	V      [16]byte
	I      uint16
	PC     uint16
	Stack  [stackDepth]uint16
	SP     uint8

	DelayTimer uint8
	SoundTimer uint8

	// Flags is the SuperChip persistent register file used by Fx75/Fx85.
	// It lives outside main memory and survives Reset.
	Flags [16]byte

	Display *Display
	Keypad  Keypad
	Audio   AudioPattern

	// Halted is set by the exit opcode and by fatal errors. A halted
	// machine stops stepping but its state stays inspectable.
	Halted bool

	mode   Mode
	quirks Quirks
	rng    *rand.Rand

	waitingKey  bool
	programSize int
}

// New creates a session for the given mode. The mode fixes the memory size,
// the quirk set and the display plane count for the session's lifetime.
func New(mode Mode) *Machine {
	quirks := QuirksFor(mode)
	m := &Machine{
		Memory: make([]byte, memorySize(mode)),
		PC:     ProgramStart,
		Display: newDisplay(
			planeCount(mode),
			!quirks.ClipSprites,
		),
		mode:   mode,
		quirks: quirks,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	m.Audio.Pitch = DefaultPitch
	m.loadFonts()
	return m
}

// Mode returns the machine variant the session emulates.
func (m *Machine) Mode() Mode { return m.mode }

// Quirks returns the session's immutable quirk set.
func (m *Machine) Quirks() Quirks { return m.quirks }

// LoadProgram copies a ROM into memory at the program start address. It
// fails with ErrRomTooLarge before execution begins if the ROM does not fit
// the mode's memory.
func (m *Machine) LoadProgram(rom []byte) error {
	if len(rom) > len(m.Memory)-ProgramStart {
		return fmt.Errorf("%w: %d bytes, %d available",
			ErrRomTooLarge, len(rom), len(m.Memory)-ProgramStart)
	}
	copy(m.Memory[ProgramStart:], rom)
	m.programSize = len(rom)
	return nil
}

// Reset returns the session to its initial state: registers, timers, stack,
// display, keypad and audio cleared, fonts reloaded, memory zeroed except
// for the loaded ROM. The persistent flag registers survive, matching the
// SuperChip calculators they emulate.
func (m *Machine) Reset() {
	rom := make([]byte, m.programSize)
	copy(rom, m.Memory[ProgramStart:ProgramStart+m.programSize])

	for i := range m.Memory {
		m.Memory[i] = 0
	}
	m.loadFonts()
	copy(m.Memory[ProgramStart:], rom)

	m.V = [16]byte{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = [stackDepth]uint16{}
	m.SP = 0
	m.DelayTimer = 0
	m.SoundTimer = 0
	m.Halted = false
	m.waitingKey = false
	m.Keypad = Keypad{}
	m.Audio = AudioPattern{Pitch: DefaultPitch}
	m.Display = newDisplay(planeCount(m.mode), !m.quirks.ClipSprites)
}

// Step fetches, decodes and executes one instruction. Fatal conditions halt
// the machine and are returned as errors matching the chip8 sentinel values;
// the host decides whether to abort or inspect the final state.
func (m *Machine) Step() (StepResult, error) {
	if m.Halted {
		return StepHalted, nil
	}

	word, err := m.fetch()
	if err != nil {
		m.Halted = true
		return StepHalted, err
	}
	in, err := Decode(word, m.mode)
	if err != nil {
		m.Halted = true
		m.PC -= 2 // leave the counter on the offending word for diagnostics
		return StepHalted, err
	}

	res, err := m.execute(in)
	if err != nil {
		m.Halted = true
		return StepHalted, err
	}
	return res, nil
}

// fetch reads the big-endian opcode word at PC and advances the counter by
// two, so jump and call opcodes simply overwrite it.
func (m *Machine) fetch() (uint16, error) {
	hi, err := m.ReadByte(int(m.PC))
	if err != nil {
		return 0, err
	}
	lo, err := m.ReadByte(int(m.PC) + 1)
	if err != nil {
		return 0, err
	}
	m.PC += 2
	return uint16(hi)<<8 | uint16(lo), nil
}

// skipDistance returns how far a conditional skip jumps: 4 bytes when the
// skipped instruction is the double-wide XO-Chip long index load, 2
// otherwise.
func (m *Machine) skipDistance() uint16 {
	if m.mode == ModeXOChip && int(m.PC)+1 < len(m.Memory) {
		word := uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1])
		if word == 0xF000 {
			return 4
		}
	}
	return 2
}
