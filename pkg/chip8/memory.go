package chip8

import "fmt"

const (
	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200

	// FontStart is the conventional address of the 5-byte hexadecimal
	// digit glyphs referenced by Fx29.
	FontStart = 0x050
	// BigFontStart is where the 10-byte SuperChip glyphs referenced by
	// Fx30 live.
	BigFontStart = 0x0A0

	stackDepth = 16
)

// fontset holds the sixteen 4×5 hexadecimal digit sprites.
var fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// loadFonts places the small glyphs at FontStart and a pixel-doubled 8×10
// variant of each at BigFontStart for the SuperChip big-font opcode.
func (m *Machine) loadFonts() {
	copy(m.Memory[FontStart:], fontset[:])
	for digit := 0; digit < 16; digit++ {
		for row := 0; row < 5; row++ {
			wide := stretchByte(fontset[digit*5+row])
			m.Memory[BigFontStart+digit*10+row*2] = wide
			m.Memory[BigFontStart+digit*10+row*2+1] = wide
		}
	}
}

// stretchByte doubles the high nibble's pixels across a full byte:
// abcd0000 becomes aabbccdd.
func stretchByte(b byte) byte {
	var out byte
	for bit := 0; bit < 4; bit++ {
		if b&(0x80>>bit) != 0 {
			out |= 0xC0 >> (bit * 2)
		}
	}
	return out
}

// ReadByte loads one byte, bounds-checked against the mode's memory size.
func (m *Machine) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= len(m.Memory) {
		return 0, fmt.Errorf("%w: read at %04X", ErrAddressOutOfRange, addr)
	}
	return m.Memory[addr], nil
}

// WriteByte stores one byte, bounds-checked against the mode's memory size.
func (m *Machine) WriteByte(addr int, val byte) error {
	if addr < 0 || addr >= len(m.Memory) {
		return fmt.Errorf("%w: write at %04X", ErrAddressOutOfRange, addr)
	}
	m.Memory[addr] = val
	return nil
}

// readRange copies n bytes starting at addr. Used for sprite fetches and the
// audio pattern load, so a sprite crossing the end of memory fails the same
// way a direct access would.
func (m *Machine) readRange(addr, n int) ([]byte, error) {
	if addr < 0 || addr+n > len(m.Memory) {
		return nil, fmt.Errorf("%w: read of %d bytes at %04X", ErrAddressOutOfRange, n, addr)
	}
	out := make([]byte, n)
	copy(out, m.Memory[addr:addr+n])
	return out, nil
}

func (m *Machine) push(addr uint16) error {
	if int(m.SP) >= stackDepth {
		return fmt.Errorf("%w: call depth %d", ErrStackOverflow, stackDepth)
	}
	m.Stack[m.SP] = addr
	m.SP++
	return nil
}

func (m *Machine) pop() (uint16, error) {
	if m.SP == 0 {
		return 0, fmt.Errorf("%w: return without call", ErrStackUnderflow)
	}
	m.SP--
	return m.Stack[m.SP], nil
}
