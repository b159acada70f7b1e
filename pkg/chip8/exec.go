package chip8

// execute runs one decoded instruction against the session state. The
// switch is exhaustive over every Op the decoder can produce.
func (m *Machine) execute(in Instruction) (StepResult, error) {
	switch in.Op {
	case OpClear:
		m.Display.Clear()

	case OpReturn:
		addr, err := m.pop()
		if err != nil {
			return StepHalted, err
		}
		m.PC = addr

	case OpJump:
		m.PC = in.NNN

	case OpCall:
		if err := m.push(m.PC); err != nil {
			return StepHalted, err
		}
		m.PC = in.NNN

	case OpSkipEqImm:
		if m.V[in.X] == in.NN {
			m.PC += m.skipDistance()
		}

	case OpSkipNeImm:
		if m.V[in.X] != in.NN {
			m.PC += m.skipDistance()
		}

	case OpSkipEqReg:
		if m.V[in.X] == m.V[in.Y] {
			m.PC += m.skipDistance()
		}

	case OpSkipNeReg:
		if m.V[in.X] != m.V[in.Y] {
			m.PC += m.skipDistance()
		}

	case OpLoadImm:
		m.V[in.X] = in.NN

	case OpAddImm:
		m.V[in.X] += in.NN

	case OpMove:
		m.V[in.X] = m.V[in.Y]

	case OpOr:
		m.V[in.X] |= m.V[in.Y]
		if m.quirks.ResetVF {
			m.V[0xF] = 0
		}

	case OpAnd:
		m.V[in.X] &= m.V[in.Y]
		if m.quirks.ResetVF {
			m.V[0xF] = 0
		}

	case OpXor:
		m.V[in.X] ^= m.V[in.Y]
		if m.quirks.ResetVF {
			m.V[0xF] = 0
		}

	case OpAdd:
		sum := uint16(m.V[in.X]) + uint16(m.V[in.Y])
		m.V[in.X] = uint8(sum)
		// VF is written last so it still holds the carry when X is F.
		if sum > 0xFF {
			m.V[0xF] = 1
		} else {
			m.V[0xF] = 0
		}

	case OpSub:
		notBorrow := uint8(0)
		if m.V[in.X] >= m.V[in.Y] {
			notBorrow = 1
		}
		m.V[in.X] -= m.V[in.Y]
		m.V[0xF] = notBorrow

	case OpSubReverse:
		notBorrow := uint8(0)
		if m.V[in.Y] >= m.V[in.X] {
			notBorrow = 1
		}
		m.V[in.X] = m.V[in.Y] - m.V[in.X]
		m.V[0xF] = notBorrow

	case OpShiftRight:
		src := m.V[in.X]
		if m.quirks.ShiftUsesVY {
			src = m.V[in.Y]
		}
		m.V[in.X] = src >> 1
		m.V[0xF] = src & 0x1

	case OpShiftLeft:
		src := m.V[in.X]
		if m.quirks.ShiftUsesVY {
			src = m.V[in.Y]
		}
		m.V[in.X] = src << 1
		m.V[0xF] = src >> 7

	case OpLoadIndex:
		m.I = in.NNN

	case OpJumpOffset:
		if m.quirks.JumpOffsetVX {
			m.PC = in.NNN + uint16(m.V[in.X])
		} else {
			m.PC = in.NNN + uint16(m.V[0])
		}

	case OpRandom:
		m.V[in.X] = uint8(m.rng.Intn(256)) & in.NN

	case OpDraw:
		return m.draw(in)

	case OpSkipPressed:
		if m.Keypad.Pressed(m.V[in.X]) {
			m.PC += m.skipDistance()
		}

	case OpSkipNotPressed:
		if !m.Keypad.Pressed(m.V[in.X]) {
			m.PC += m.skipDistance()
		}

	case OpReadDelay:
		m.V[in.X] = m.DelayTimer

	case OpWaitKey:
		if key, ok := m.Keypad.takeRelease(); ok && m.waitingKey {
			m.V[in.X] = key
			m.waitingKey = false
			return StepNormal, nil
		}
		if !m.waitingKey {
			m.waitingKey = true
			m.Keypad.beginWait()
		}
		// Hold the counter on this opcode so the wait is a polled state,
		// never a blocking call.
		m.PC -= 2
		return StepKeyWait, nil

	case OpSetDelay:
		m.DelayTimer = m.V[in.X]

	case OpSetSound:
		m.SoundTimer = m.V[in.X]

	case OpAddIndex:
		m.I += uint16(m.V[in.X])

	case OpFontSprite:
		m.I = FontStart + 5*uint16(m.V[in.X]&0xF)

	case OpBigFontSprite:
		m.I = BigFontStart + 10*uint16(m.V[in.X]&0xF)

	case OpBCD:
		v := m.V[in.X]
		digits := [3]byte{v / 100, v / 10 % 10, v % 10}
		for i, d := range digits {
			if err := m.WriteByte(int(m.I)+i, d); err != nil {
				return StepHalted, err
			}
		}

	case OpStore:
		for i := 0; i <= int(in.X); i++ {
			if err := m.WriteByte(int(m.I)+i, m.V[i]); err != nil {
				return StepHalted, err
			}
		}
		if m.quirks.IncrementI {
			m.I += uint16(in.X) + 1
		}

	case OpLoad:
		for i := 0; i <= int(in.X); i++ {
			b, err := m.ReadByte(int(m.I) + i)
			if err != nil {
				return StepHalted, err
			}
			m.V[i] = b
		}
		if m.quirks.IncrementI {
			m.I += uint16(in.X) + 1
		}

	case OpScrollDown:
		m.Display.ScrollDown(int(in.N))

	case OpScrollUp:
		m.Display.ScrollUp(int(in.N))

	case OpScrollRight:
		m.Display.ScrollRight()

	case OpScrollLeft:
		m.Display.ScrollLeft()

	case OpExit:
		m.Halted = true
		return StepExit, nil

	case OpLowRes:
		m.Display.SetResolution(false)

	case OpHighRes:
		m.Display.SetResolution(true)

	case OpStoreFlags:
		for i := 0; i <= m.flagCount(in.X); i++ {
			m.Flags[i] = m.V[i]
		}

	case OpLoadFlags:
		for i := 0; i <= m.flagCount(in.X); i++ {
			m.V[i] = m.Flags[i]
		}

	case OpStoreRange:
		if err := m.copyRange(in.X, in.Y, true); err != nil {
			return StepHalted, err
		}

	case OpLoadRange:
		if err := m.copyRange(in.X, in.Y, false); err != nil {
			return StepHalted, err
		}

	case OpLoadIndexLong:
		word, err := m.fetch()
		if err != nil {
			return StepHalted, err
		}
		m.I = word

	case OpSelectPlanes:
		m.Display.SelectPlanes(in.X)

	case OpLoadAudio:
		data, err := m.readRange(int(m.I), len(m.Audio.Pattern))
		if err != nil {
			return StepHalted, err
		}
		copy(m.Audio.Pattern[:], data)

	case OpSetPitch:
		m.Audio.Pitch = m.V[in.X]
	}

	return StepNormal, nil
}

// draw executes the sprite blit opcode: it fetches one sprite copy per
// selected plane from memory at I and delegates the XOR blit to the
// compositor, recording the collision flag in VF.
func (m *Machine) draw(in Instruction) (StepResult, error) {
	rows, width := int(in.N), 8
	if in.N == 0 {
		if m.mode == ModeChip8 {
			// Dxy0 is a zero-height draw on the original machine.
			rows = 0
		} else {
			rows, width = 16, 16
		}
	}

	total := m.Display.SelectedCount() * rows * width / 8
	data, err := m.readRange(int(m.I), total)
	if err != nil {
		return StepHalted, err
	}

	if m.Display.DrawSprite(int(m.V[in.X]), int(m.V[in.Y]), data, rows, width) {
		m.V[0xF] = 1
	} else {
		m.V[0xF] = 0
	}

	if m.quirks.DisplayWait {
		return StepDisplayWait, nil
	}
	return StepNormal, nil
}

// copyRange implements the XO-Chip register-range save/load (5xy2/5xy3).
// Registers x through y inclusive map onto memory at I in order, walking
// down when x > y. I is left unchanged.
func (m *Machine) copyRange(x, y uint8, store bool) error {
	step := 1
	if x > y {
		step = -1
	}
	addr := int(m.I)
	for r := int(x); ; r += step {
		if store {
			if err := m.WriteByte(addr, m.V[r]); err != nil {
				return err
			}
		} else {
			b, err := m.ReadByte(addr)
			if err != nil {
				return err
			}
			m.V[r] = b
		}
		addr++
		if r == int(y) {
			return nil
		}
	}
}

// flagCount clamps the persistent flag register count: SuperChip hardware
// exposes eight RPL registers, XO-Chip all sixteen.
func (m *Machine) flagCount(x uint8) int {
	if m.mode == ModeSuperChip && x > 7 {
		return 7
	}
	return int(x)
}
