package machine

import (
	"errors"

	"github.com/retrocore/toy16/translate"
)

var f = translate.From

var (
	// ErrHalted is returned by Step when called on an already-halted CPU.
	ErrHalted = errors.New(f("cpu halted"))
)

// ErrUnknownOpcode records an unknown-opcode halt: the faulting word and
// the program counter it was fetched from.
type ErrUnknownOpcode struct {
	PC   uint16
	Word uint16
}

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode %#04x at pc %#04x", err.Word, err.PC)
}
