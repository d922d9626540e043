package assembler

import (
	"fmt"
	"strings"
)

// Listing renders one line per emitted word, "ADDR  WORD  |  source text",
// in the two-column convention the teacher's reference assemblers use for
// trace output. It is supplemental: neither pass consults it, and it has
// no bearing on the emitted image.
func Listing(prog *Program) string {
	bySourceAddr := make(map[uint16]string, len(prog.Lines))
	addr := uint16(0)
	for _, line := range prog.Lines {
		switch line.Kind {
		case lineOrg:
			if a, err := parseWord(line.OrgAddr); err == nil {
				addr = a
			}
		case lineWord:
			bySourceAddr[addr] = line.Raw
			addr += uint16(len(line.WordArgs))
		case lineAsciiz:
			bySourceAddr[addr] = line.Raw
			addr += uint16(len(line.AsciizStr) + 1)
		case lineInstruction:
			bySourceAddr[addr] = line.Raw
			words, _ := mnemonicWords(line.Mnemonic, line.Operands)
			addr += uint16(words)
		}
	}

	var b strings.Builder
	for a, word := range prog.Words() {
		src, ok := bySourceAddr[a]
		if ok {
			fmt.Fprintf(&b, "%04X  %04X  |  %s\n", a, word, strings.TrimSpace(src))
		} else {
			fmt.Fprintf(&b, "%04X  %04X\n", a, word)
		}
	}
	return b.String()
}
