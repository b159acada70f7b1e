package chip8

import "fmt"

// Mode selects which of the three historical machines a session emulates.
// The modes form a superset chain: SuperChip keeps every CHIP-8 opcode and
// XO-Chip keeps every SuperChip opcode, so availability checks compare
// ordinals.
type Mode int

const (
	ModeChip8 Mode = iota
	ModeSuperChip
	ModeXOChip
)

func (m Mode) String() string {
	switch m {
	case ModeChip8:
		return "chip8"
	case ModeSuperChip:
		return "schip"
	case ModeXOChip:
		return "xochip"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a configuration mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "chip8":
		return ModeChip8, nil
	case "schip", "superchip":
		return ModeSuperChip, nil
	case "xochip", "xo-chip":
		return ModeXOChip, nil
	}
	return ModeChip8, fmt.Errorf("unknown mode %q (want chip8, schip or xochip)", name)
}

// Quirks captures the behavioral divergences between the three machines for
// opcodes whose original specification was ambiguous or later extended.
// The set is fixed when a session is created and never changes; the engine
// and the display branch on these flags instead of on the mode identity.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE shift VY into VX instead of shifting
	// VX in place.
	ShiftUsesVY bool
	// IncrementI makes Fx55/Fx65 leave I pointing past the copied range.
	IncrementI bool
	// JumpOffsetVX turns Bnnn into Bxnn: the jump target is offset by VX
	// instead of V0.
	JumpOffsetVX bool
	// ResetVF makes 8xy1/8xy2/8xy3 clear VF as a side effect.
	ResetVF bool
	// ClipSprites hard-clips sprites at the screen edge. When false the
	// sprite pixels wrap around instead. Exactly one of the two behaviors
	// applies to every draw.
	ClipSprites bool
	// DisplayWait stalls execution after a draw until the next display
	// refresh boundary (the original interpreter's vblank gate).
	DisplayWait bool
}

// QuirksFor returns the fixed quirk set for a mode.
func QuirksFor(mode Mode) Quirks {
	switch mode {
	case ModeSuperChip:
		return Quirks{
			ShiftUsesVY:  false,
			IncrementI:   false,
			JumpOffsetVX: true,
			ResetVF:      false,
			ClipSprites:  true,
			DisplayWait:  false,
		}
	case ModeXOChip:
		return Quirks{
			ShiftUsesVY:  true,
			IncrementI:   true,
			JumpOffsetVX: false,
			ResetVF:      false,
			ClipSprites:  false,
			DisplayWait:  false,
		}
	default:
		return Quirks{
			ShiftUsesVY:  true,
			IncrementI:   true,
			JumpOffsetVX: false,
			ResetVF:      true,
			ClipSprites:  true,
			DisplayWait:  true,
		}
	}
}

// memorySize returns the byte-addressable memory size for a mode. XO-Chip
// extends the address space to the full 16-bit range.
func memorySize(mode Mode) int {
	if mode == ModeXOChip {
		return 0x10000
	}
	return 0x1000
}

// planeCount returns how many display planes a mode addresses.
func planeCount(mode Mode) int {
	if mode == ModeXOChip {
		return 2
	}
	return 1
}
