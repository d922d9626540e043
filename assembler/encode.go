package assembler

import "github.com/retrocore/toy16/isa"

// resolveValue resolves an immediate/address literal: a decimal or hex
// number, or a label looked up in the Pass 1 symbol table. Character
// literals have already been rewritten to decimal by the preprocessor.
func resolveValue(token string, symbols map[string]uint16) (uint16, error) {
	if v, err := parseWord(token); err == nil {
		return v, nil
	}
	if addr, ok := symbols[token]; ok {
		return addr, nil
	}
	return 0, ErrLabelUndefined(token)
}

// encoded is the one or two words an instruction emits.
type encoded struct {
	words []uint16
}

func one(w uint16) encoded    { return encoded{words: []uint16{w}} }
func two(a, b uint16) encoded { return encoded{words: []uint16{a, b}} }

// encodeInstruction validates and encodes one instruction line against the
// operand grammar and per-mnemonic rules. It returns the instruction's
// word(s); the caller is responsible for placing them into the image.
func encodeInstruction(line Line, symbols map[string]uint16) (encoded, error) {
	mnemonic := line.Mnemonic
	ops := line.Operands

	switch mnemonic {
	case "NOP", "HALT", "RET":
		if len(ops) != 0 {
			return encoded{}, ErrOperandCount
		}
		op := directOpcode[mnemonic]
		return one(isa.Encode(op, 0, 0)), nil

	case "PUSH":
		if len(ops) != 1 {
			return encoded{}, ErrOperandCount
		}
		rs, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		return one(isa.Encode(isa.PUSH, 0, rs)), nil

	case "POP":
		if len(ops) != 1 {
			return encoded{}, ErrOperandCount
		}
		rd, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		return one(isa.Encode(isa.POP, rd, 0)), nil

	case "NOT":
		if len(ops) != 1 {
			return encoded{}, ErrOperandCount
		}
		rd, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		return one(isa.Encode(isa.NOT, rd, 0)), nil

	case "MOV", "ADD", "SUB", "AND", "OR", "XOR", "SHL", "SHR", "CMP", "MUL":
		if len(ops) != 2 {
			return encoded{}, ErrOperandCount
		}
		rd, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		rs, ok := register(ops[1])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		return one(isa.Encode(directOpcode[mnemonic], rd, rs)), nil

	case "LDI", "LEA", "ADDI", "SUBI":
		if len(ops) != 2 {
			return encoded{}, ErrOperandCount
		}
		rd, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		imm, err := resolveValue(ops[1], symbols)
		if err != nil {
			return encoded{}, err
		}
		return two(isa.Encode(directOpcode[mnemonic], rd, 0), imm), nil

	case "JMP", "JZ", "JNZ", "JC", "JN", "CALL":
		if len(ops) != 1 {
			return encoded{}, ErrOperandCount
		}
		addr, err := resolveValue(ops[0], symbols)
		if err != nil {
			return encoded{}, err
		}
		return two(isa.Encode(directOpcode[mnemonic], 0, 0), addr), nil

	case "LD":
		if len(ops) != 2 {
			return encoded{}, ErrOperandCount
		}
		rd, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		inner, ok := memOperand(ops[1])
		if !ok {
			return encoded{}, ErrOperandMemory
		}
		if memIsIndirect(inner) {
			rs, _ := register(inner)
			return one(isa.Encode(isa.LD_IND, rd, rs)), nil
		}
		addr, err := resolveValue(inner, symbols)
		if err != nil {
			return encoded{}, err
		}
		return two(isa.Encode(isa.LD_ABS, rd, 0), addr), nil

	case "ST":
		if len(ops) != 2 {
			return encoded{}, ErrOperandCount
		}
		rs, ok := register(ops[0])
		if !ok {
			return encoded{}, ErrOperandRegister
		}
		inner, ok := memOperand(ops[1])
		if !ok {
			return encoded{}, ErrOperandMemory
		}
		if memIsIndirect(inner) {
			addrReg, _ := register(inner)
			return one(isa.Encode(isa.ST_IND, addrReg, rs)), nil
		}
		addr, err := resolveValue(inner, symbols)
		if err != nil {
			return encoded{}, err
		}
		return two(isa.Encode(isa.ST_ABS, 0, rs), addr), nil

	default:
		return encoded{}, ErrMnemonicUnknown
	}
}
