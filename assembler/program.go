package assembler

import "iter"

// Program is the output of assembly: the emitted word image, the symbol
// table Pass1 built, and the lexed line vector both passes walked, kept
// around for listings and diagnostics.
type Program struct {
	Image   []uint16
	Symbols map[string]uint16
	Lines   []Line
}

// Words yields each populated address/word pair in ascending order,
// mirroring the teacher's Program.Codes iterator.
func (p *Program) Words() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, word uint16) bool) {
		for addr, word := range p.Image {
			if !yield(uint16(addr), word) {
				return
			}
		}
	}
}
