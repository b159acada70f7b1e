package chip8

import "errors"

// Fatal machine conditions. All of them stop instruction stepping but leave
// the session state inspectable. Callers match with errors.Is.
var (
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrRomTooLarge       = errors.New("rom too large")
)
