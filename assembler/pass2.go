package assembler

// Pass2 re-walks the lexed line vector with a fresh cursor, resolving
// operands against symbols (produced by Pass1) and emitting the encoded
// word stream into a sparse image that zero-extends across .org gaps.
func Pass2(lines []Line, symbols map[string]uint16) (*Program, error) {
	var image []uint16
	var cursor uint16

	place := func(addr uint16, word uint16) {
		for len(image) <= int(addr) {
			image = append(image, 0)
		}
		image[addr] = word
	}

	for _, line := range lines {
		switch line.Kind {
		case lineOrg:
			addr, err := parseWord(line.OrgAddr)
			if err != nil {
				return nil, ErrSyntax{LineNo: line.No, Line: line.Raw, Err: ErrOrgMissing}
			}
			cursor = addr

		case lineWord:
			for _, tok := range line.WordArgs {
				v, err := resolveValue(tok, symbols)
				if err != nil {
					return nil, ErrSyntax{LineNo: line.No, Line: line.Raw, Err: err}
				}
				place(cursor, v)
				cursor++
			}

		case lineAsciiz:
			for _, r := range []byte(line.AsciizStr) {
				place(cursor, uint16(r))
				cursor++
			}
			place(cursor, 0)
			cursor++

		case lineInstruction:
			enc, err := encodeInstruction(line, symbols)
			if err != nil {
				return nil, ErrSyntax{LineNo: line.No, Line: line.Raw, Err: err}
			}
			for _, w := range enc.words {
				place(cursor, w)
				cursor++
			}
		}
	}

	return &Program{Image: image, Symbols: symbols, Lines: lines}, nil
}
