package assembler

// Pass1 walks the lexed line vector once, assigning every label an
// address by tracking a word-cursor, and returns the resulting symbol
// table. It never emits words; Pass2 re-walks the same vector with a
// fresh cursor to do that.
func Pass1(lines []Line) (symbols map[string]uint16, err error) {
	symbols = map[string]uint16{}
	var cursor uint16

	for _, line := range lines {
		if line.Label != "" {
			if _, dup := symbols[line.Label]; dup {
				return nil, ErrSyntax{LineNo: line.No, Line: line.Raw, Err: ErrLabelDuplicate}
			}
			symbols[line.Label] = cursor
		}

		switch line.Kind {
		case lineOrg:
			addr, parseErr := parseWord(line.OrgAddr)
			if parseErr != nil {
				return nil, ErrSyntax{LineNo: line.No, Line: line.Raw, Err: ErrOrgMissing}
			}
			cursor = addr

		case lineWord:
			cursor += uint16(len(line.WordArgs))

		case lineAsciiz:
			cursor += uint16(len(line.AsciizStr) + 1)

		case lineInstruction:
			words, _ := mnemonicWords(line.Mnemonic, line.Operands)
			cursor += uint16(words)
		}
	}

	return symbols, nil
}
