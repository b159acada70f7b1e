// Package disasm renders decoded CHIP-8/SuperChip/XO-Chip instructions as
// assembly text. It shares the emulator's decoder, so the listing always
// agrees with what the execution engine would do.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"gochip/pkg/chip8"
)

// Word renders one opcode word. next is the following word in memory; it is
// only consulted for the double-wide XO-Chip long index load. The returned
// size is the instruction width in bytes (2, or 4 for the long load). Words
// that decode to nothing render as raw data.
func Word(word, next uint16, mode chip8.Mode) (string, int) {
	in, err := chip8.Decode(word, mode)
	if err != nil {
		return fmt.Sprintf(".dw 0x%04X", word), 2
	}
	if in.Op == chip8.OpLoadIndexLong {
		return fmt.Sprintf("LD I, 0x%04X", next), 4
	}
	return mnemonic(in), 2
}

// Listing writes an address/word/mnemonic listing of a ROM to w, assuming
// the conventional 0x200 load address.
func Listing(w io.Writer, rom []byte, mode chip8.Mode) error {
	out := bufio.NewWriter(w)
	for i := 0; i+1 < len(rom); {
		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		var next uint16
		if i+3 < len(rom) {
			next = uint16(rom[i+2])<<8 | uint16(rom[i+3])
		}
		text, size := Word(word, next, mode)
		if size == 4 {
			fmt.Fprintf(out, "0x%04X: %04X %04X  %s\n", chip8.ProgramStart+i, word, next, text)
		} else {
			fmt.Fprintf(out, "0x%04X: %04X       %s\n", chip8.ProgramStart+i, word, text)
		}
		i += size
	}
	if len(rom)%2 != 0 {
		fmt.Fprintf(out, "0x%04X: %02X         .db 0x%02X\n",
			chip8.ProgramStart+len(rom)-1, rom[len(rom)-1], rom[len(rom)-1])
	}
	return out.Flush()
}

func mnemonic(in chip8.Instruction) string {
	switch in.Op {
	case chip8.OpClear:
		return "CLS"
	case chip8.OpReturn:
		return "RET"
	case chip8.OpJump:
		return fmt.Sprintf("JP 0x%03X", in.NNN)
	case chip8.OpCall:
		return fmt.Sprintf("CALL 0x%03X", in.NNN)
	case chip8.OpSkipEqImm:
		return fmt.Sprintf("SE V%X, 0x%02X", in.X, in.NN)
	case chip8.OpSkipNeImm:
		return fmt.Sprintf("SNE V%X, 0x%02X", in.X, in.NN)
	case chip8.OpSkipEqReg:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case chip8.OpSkipNeReg:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case chip8.OpLoadImm:
		return fmt.Sprintf("LD V%X, 0x%02X", in.X, in.NN)
	case chip8.OpAddImm:
		return fmt.Sprintf("ADD V%X, 0x%02X", in.X, in.NN)
	case chip8.OpMove:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case chip8.OpOr:
		return fmt.Sprintf("OR V%X, V%X", in.X, in.Y)
	case chip8.OpAnd:
		return fmt.Sprintf("AND V%X, V%X", in.X, in.Y)
	case chip8.OpXor:
		return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y)
	case chip8.OpAdd:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case chip8.OpSub:
		return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y)
	case chip8.OpSubReverse:
		return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y)
	case chip8.OpShiftRight:
		return fmt.Sprintf("SHR V%X, V%X", in.X, in.Y)
	case chip8.OpShiftLeft:
		return fmt.Sprintf("SHL V%X, V%X", in.X, in.Y)
	case chip8.OpLoadIndex:
		return fmt.Sprintf("LD I, 0x%03X", in.NNN)
	case chip8.OpJumpOffset:
		return fmt.Sprintf("JP V0, 0x%03X", in.NNN)
	case chip8.OpRandom:
		return fmt.Sprintf("RND V%X, 0x%02X", in.X, in.NN)
	case chip8.OpDraw:
		return fmt.Sprintf("DRW V%X, V%X, 0x%X", in.X, in.Y, in.N)
	case chip8.OpSkipPressed:
		return fmt.Sprintf("SKP V%X", in.X)
	case chip8.OpSkipNotPressed:
		return fmt.Sprintf("SKNP V%X", in.X)
	case chip8.OpReadDelay:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case chip8.OpWaitKey:
		return fmt.Sprintf("LD V%X, K", in.X)
	case chip8.OpSetDelay:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case chip8.OpSetSound:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case chip8.OpAddIndex:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case chip8.OpFontSprite:
		return fmt.Sprintf("LD F, V%X", in.X)
	case chip8.OpBigFontSprite:
		return fmt.Sprintf("LD HF, V%X", in.X)
	case chip8.OpBCD:
		return fmt.Sprintf("LD B, V%X", in.X)
	case chip8.OpStore:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case chip8.OpLoad:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	case chip8.OpScrollDown:
		return fmt.Sprintf("SCD 0x%X", in.N)
	case chip8.OpScrollUp:
		return fmt.Sprintf("SCU 0x%X", in.N)
	case chip8.OpScrollRight:
		return "SCR"
	case chip8.OpScrollLeft:
		return "SCL"
	case chip8.OpExit:
		return "EXIT"
	case chip8.OpLowRes:
		return "LOW"
	case chip8.OpHighRes:
		return "HIGH"
	case chip8.OpStoreFlags:
		return fmt.Sprintf("LD R, V%X", in.X)
	case chip8.OpLoadFlags:
		return fmt.Sprintf("LD V%X, R", in.X)
	case chip8.OpStoreRange:
		return fmt.Sprintf("SAVE V%X - V%X", in.X, in.Y)
	case chip8.OpLoadRange:
		return fmt.Sprintf("LOAD V%X - V%X", in.X, in.Y)
	case chip8.OpLoadIndexLong:
		return "LD I, LONG"
	case chip8.OpSelectPlanes:
		return fmt.Sprintf("PLANE 0x%X", in.X)
	case chip8.OpLoadAudio:
		return "AUDIO"
	case chip8.OpSetPitch:
		return fmt.Sprintf("PITCH V%X", in.X)
	}
	return fmt.Sprintf("op(%d)", int(in.Op))
}
