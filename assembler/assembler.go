// Package assembler implements the toy16 two-pass assembler: Pass1 walks
// the source once to lay out labels and sizes, Pass2 re-walks it to
// resolve operands and emit the encoded word image. Both passes operate
// over a single lexed Line vector, produced once by a preprocessing stage
// that expands .equ, .macro/.endm, character literals, and $(...)
// compile-time expressions.
package assembler

import "io"

// Assemble reads toy16 source text and runs it through preprocessing,
// lexing, Pass1, and Pass2 in order. It fails fast: the first error
// encountered at any stage is returned and no partial Program exists.
func Assemble(input io.Reader) (*Program, error) {
	pre := newPreprocessor()
	expanded, err := pre.expand(input)
	if err != nil {
		return nil, err
	}

	lines, err := lex(expanded)
	if err != nil {
		return nil, err
	}

	symbols, err := Pass1(lines)
	if err != nil {
		return nil, err
	}

	return Pass2(lines, symbols)
}
