package chip8

// Keypad is the 16-key logical input bridge. The host mutates it through
// SetKey; the engine only reads it, except for the blocking wait opcode
// which arms release tracking so it can observe a press-then-release
// transition without stalling the host loop.
type Keypad struct {
	keys [16]bool

	awaiting    bool
	released    uint8
	hasReleased bool
}

// SetKey records a host key-down or key-up event for logical key 0x0-0xF.
func (k *Keypad) SetKey(key uint8, pressed bool) {
	key &= 0xF
	if !pressed && k.keys[key] && k.awaiting {
		k.released = key
		k.hasReleased = true
		k.awaiting = false
	}
	k.keys[key] = pressed
}

// Pressed reports whether logical key 0x0-0xF is currently down.
func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0xF]
}

// beginWait arms release tracking for the blocking wait opcode, discarding
// any stale release.
func (k *Keypad) beginWait() {
	k.awaiting = true
	k.hasReleased = false
}

// takeRelease consumes the key release observed since beginWait, if any.
func (k *Keypad) takeRelease() (uint8, bool) {
	if !k.hasReleased {
		return 0, false
	}
	k.hasReleased = false
	return k.released, true
}
