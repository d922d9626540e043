package assembler

import "github.com/retrocore/toy16/isa"

// directOpcode maps every source mnemonic with exactly one encoding to its
// opcode. LD and ST are handled separately, since their word count and
// opcode depend on the operand's shape (indirect vs absolute).
var directOpcode = map[string]isa.Opcode{
	"NOP":  isa.NOP,
	"MOV":  isa.MOV,
	"ADD":  isa.ADD,
	"SUB":  isa.SUB,
	"AND":  isa.AND,
	"OR":   isa.OR,
	"XOR":  isa.XOR,
	"NOT":  isa.NOT,
	"SHL":  isa.SHL,
	"SHR":  isa.SHR,
	"CMP":  isa.CMP,
	"PUSH": isa.PUSH,
	"POP":  isa.POP,
	"LDI":  isa.LDI,
	"JMP":  isa.JMP,
	"JZ":   isa.JZ,
	"JNZ":  isa.JNZ,
	"JC":   isa.JC,
	"JN":   isa.JN,
	"CALL": isa.CALL,
	"RET":  isa.RET,
	"HALT": isa.HALT,
	"LEA":  isa.LEA,
	"ADDI": isa.ADDI,
	"SUBI": isa.SUBI,
	"MUL":  isa.MUL,
}

// ldStIsIndirect inspects an LD/ST instruction's memory operand (the
// second operand for both mnemonics) and reports whether it is the
// one-word indirect form. Pass 1 and Pass 2 both call this single
// function, so the sizing rule can never drift between the two passes.
func ldStIsIndirect(operands []string) bool {
	if len(operands) < 2 {
		return false
	}
	inner, ok := memOperand(operands[1])
	if !ok {
		return false
	}
	return memIsIndirect(inner)
}

// mnemonicWords returns the instruction's word length. known is false for
// an unrecognized mnemonic; per the layout design, that is sized as 1 word
// in pass 1 so pass 2 can report the canonical "unknown mnemonic" error
// against the right line.
func mnemonicWords(mnemonic string, operands []string) (words int, known bool) {
	if mnemonic == "LD" || mnemonic == "ST" {
		if ldStIsIndirect(operands) {
			return 1, true
		}
		return 2, true
	}
	if op, ok := directOpcode[mnemonic]; ok {
		return op.Words(), true
	}
	return 1, false
}
