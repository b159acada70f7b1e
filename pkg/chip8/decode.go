package chip8

import "fmt"

// Op identifies one executable operation. Every opcode the three machines
// understand decodes to exactly one Op; the execute switch is exhaustive
// over this set, so an unhandled operation is a compile-time omission
// instead of a silent fallthrough.
type Op int

const (
	// Base CHIP-8.
	OpClear Op = iota
	OpReturn
	OpJump
	OpCall
	OpSkipEqImm
	OpSkipNeImm
	OpSkipEqReg
	OpSkipNeReg
	OpLoadImm
	OpAddImm
	OpMove
	OpOr
	OpAnd
	OpXor
	OpAdd
	OpSub
	OpSubReverse
	OpShiftRight
	OpShiftLeft
	OpLoadIndex
	OpJumpOffset
	OpRandom
	OpDraw
	OpSkipPressed
	OpSkipNotPressed
	OpReadDelay
	OpWaitKey
	OpSetDelay
	OpSetSound
	OpAddIndex
	OpFontSprite
	OpBCD
	OpStore
	OpLoad

	// SuperChip extensions.
	OpScrollDown
	OpScrollRight
	OpScrollLeft
	OpExit
	OpLowRes
	OpHighRes
	OpBigFontSprite
	OpStoreFlags
	OpLoadFlags

	// XO-Chip extensions.
	OpScrollUp
	OpStoreRange
	OpLoadRange
	OpLoadIndexLong
	OpSelectPlanes
	OpLoadAudio
	OpSetPitch
)

// Instruction is one decoded opcode: the operation plus every operand field
// the 16-bit word can carry. Unused fields are zero.
type Instruction struct {
	Op  Op
	X   uint8  // second nibble, usually a register index
	Y   uint8  // third nibble, usually a register index
	N   uint8  // low nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits, an address
}

// Decode classifies a 16-bit opcode word for the given mode. Opcodes
// belonging to an extension the mode does not support, and words matching
// no dispatch entry at all, fail with ErrInvalidOpcode.
func Decode(word uint16, mode Mode) (Instruction, error) {
	in := Instruction{
		X:   uint8(word >> 8 & 0xF),
		Y:   uint8(word >> 4 & 0xF),
		N:   uint8(word & 0xF),
		NN:  uint8(word & 0xFF),
		NNN: word & 0xFFF,
	}

	invalid := func() (Instruction, error) {
		return Instruction{}, fmt.Errorf("%w: %04X", ErrInvalidOpcode, word)
	}
	superChip := func(op Op) (Instruction, error) {
		if mode < ModeSuperChip {
			return invalid()
		}
		in.Op = op
		return in, nil
	}
	xoChip := func(op Op) (Instruction, error) {
		if mode < ModeXOChip {
			return invalid()
		}
		in.Op = op
		return in, nil
	}

	switch word >> 12 {
	case 0x0:
		switch {
		case word == 0x00E0:
			in.Op = OpClear
		case word == 0x00EE:
			in.Op = OpReturn
		case word&0xFFF0 == 0x00C0:
			return superChip(OpScrollDown)
		case word&0xFFF0 == 0x00D0:
			return xoChip(OpScrollUp)
		case word == 0x00FB:
			return superChip(OpScrollRight)
		case word == 0x00FC:
			return superChip(OpScrollLeft)
		case word == 0x00FD:
			return superChip(OpExit)
		case word == 0x00FE:
			return superChip(OpLowRes)
		case word == 0x00FF:
			return superChip(OpHighRes)
		default:
			// 0nnn machine-code calls are deliberately rejected:
			// skipping them silently masks ROM incompatibilities.
			return invalid()
		}
	case 0x1:
		in.Op = OpJump
	case 0x2:
		in.Op = OpCall
	case 0x3:
		in.Op = OpSkipEqImm
	case 0x4:
		in.Op = OpSkipNeImm
	case 0x5:
		switch word & 0xF {
		case 0x0:
			in.Op = OpSkipEqReg
		case 0x2:
			return xoChip(OpStoreRange)
		case 0x3:
			return xoChip(OpLoadRange)
		default:
			return invalid()
		}
	case 0x6:
		in.Op = OpLoadImm
	case 0x7:
		in.Op = OpAddImm
	case 0x8:
		switch word & 0xF {
		case 0x0:
			in.Op = OpMove
		case 0x1:
			in.Op = OpOr
		case 0x2:
			in.Op = OpAnd
		case 0x3:
			in.Op = OpXor
		case 0x4:
			in.Op = OpAdd
		case 0x5:
			in.Op = OpSub
		case 0x6:
			in.Op = OpShiftRight
		case 0x7:
			in.Op = OpSubReverse
		case 0xE:
			in.Op = OpShiftLeft
		default:
			return invalid()
		}
	case 0x9:
		if word&0xF != 0 {
			return invalid()
		}
		in.Op = OpSkipNeReg
	case 0xA:
		in.Op = OpLoadIndex
	case 0xB:
		in.Op = OpJumpOffset
	case 0xC:
		in.Op = OpRandom
	case 0xD:
		in.Op = OpDraw
	case 0xE:
		switch word & 0xFF {
		case 0x9E:
			in.Op = OpSkipPressed
		case 0xA1:
			in.Op = OpSkipNotPressed
		default:
			return invalid()
		}
	case 0xF:
		switch word & 0xFF {
		case 0x00:
			if word != 0xF000 {
				return invalid()
			}
			return xoChip(OpLoadIndexLong)
		case 0x01:
			return xoChip(OpSelectPlanes)
		case 0x02:
			if word != 0xF002 {
				return invalid()
			}
			return xoChip(OpLoadAudio)
		case 0x07:
			in.Op = OpReadDelay
		case 0x0A:
			in.Op = OpWaitKey
		case 0x15:
			in.Op = OpSetDelay
		case 0x18:
			in.Op = OpSetSound
		case 0x1E:
			in.Op = OpAddIndex
		case 0x29:
			in.Op = OpFontSprite
		case 0x30:
			return superChip(OpBigFontSprite)
		case 0x33:
			in.Op = OpBCD
		case 0x3A:
			return xoChip(OpSetPitch)
		case 0x55:
			in.Op = OpStore
		case 0x65:
			in.Op = OpLoad
		case 0x75:
			return superChip(OpStoreFlags)
		case 0x85:
			return superChip(OpLoadFlags)
		default:
			return invalid()
		}
	}
	return in, nil
}
