package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAliases(t *testing.T) {
	assert := assert.New(t)

	for i := uint8(0); i <= 7; i++ {
		name := "r" + string(rune('0'+i))
		r, ok := register(name)
		assert.True(ok, name)
		assert.Equal(i, r, name)
	}

	r, ok := register("R3")
	assert.True(ok)
	assert.Equal(uint8(3), r)

	sp, ok := register("sp")
	assert.True(ok)
	assert.Equal(uint8(7), sp)

	_, ok = register("r8")
	assert.False(ok)
}

func TestMemOperandIndirectVsAbsolute(t *testing.T) {
	assert := assert.New(t)

	assert.True(ldStIsIndirect([]string{"r0", "[r1]"}))
	assert.False(ldStIsIndirect([]string{"r0", "[0x1000]"}))
	assert.False(ldStIsIndirect([]string{"r0", "[label]"}))
}

func TestPass1AssignsLabelsAndSizesAsciiz(t *testing.T) {
	assert := assert.New(t)

	src := `
msg: .asciiz "Hi"
start:
LDI r0, msg
ST r0, [0xFF10]
HALT
`
	pre := newPreprocessor()
	expanded, err := pre.expand(strings.NewReader(src))
	assert.NoError(err)
	lines, err := lex(expanded)
	assert.NoError(err)

	symbols, err := Pass1(lines)
	assert.NoError(err)
	assert.Equal(uint16(0), symbols["msg"])
	assert.Equal(uint16(3), symbols["start"])
}

func TestPass1DuplicateLabelIsFatal(t *testing.T) {
	assert := assert.New(t)

	src := "a: NOP\na: NOP\n"
	pre := newPreprocessor()
	expanded, err := pre.expand(strings.NewReader(src))
	assert.NoError(err)
	lines, err := lex(expanded)
	assert.NoError(err)

	_, err = Pass1(lines)
	assert.Error(err)
	assert.ErrorIs(err, ErrLabelDuplicate)
}

func TestAssembleHelloPrintImage(t *testing.T) {
	assert := assert.New(t)

	src := `
msg: .asciiz "Hi"
LDI r0, msg
ST r0, [0xFF10]
HALT
`
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(uint16('H'), prog.Image[0])
	assert.Equal(uint16('i'), prog.Image[1])
	assert.Equal(uint16(0), prog.Image[2])
}

func TestListingAnnotatesSourceLines(t *testing.T) {
	assert := assert.New(t)

	src := `
.org 2
LDI r0, 7
HALT
`
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)

	lst := Listing(prog)
	assert.Contains(lst, "0002  7800  |  LDI r0, 7\n")
	assert.Contains(lst, "0004  B800  |  HALT\n")
	assert.Contains(lst, "0003  0007\n", "payload words carry no annotation")
	assert.Contains(lst, "0000  0000\n", ".org gap words carry no annotation")
}

func TestAssembleOrgGapZeroFills(t *testing.T) {
	assert := assert.New(t)

	src := `
.org 4
NOP
`
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Len(prog.Image, 5)
	for _, w := range prog.Image[:4] {
		assert.Equal(uint16(0), w)
	}
}

func TestAssembleUnknownLabelFails(t *testing.T) {
	assert := assert.New(t)

	src := "JMP nowhere\n"
	_, err := Assemble(strings.NewReader(src))
	assert.Error(err)
	assert.ErrorIs(err, ErrLabelMissing)
}

func TestAssembleWordDirective(t *testing.T) {
	assert := assert.New(t)

	src := ".word 1, 2, 0x10\n"
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal([]uint16{1, 2, 0x10}, prog.Image)
}

func TestAssembleEquateSubstitutesValue(t *testing.T) {
	assert := assert.New(t)

	src := ".equ LIMIT 42\nLDI r0, LIMIT\n"
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(uint16(42), prog.Image[1])
}

func TestAssembleMacroExpansion(t *testing.T) {
	assert := assert.New(t)

	src := ".macro DOUBLE reg\nADD reg, reg\n.endm\nDOUBLE r2\n"
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Len(prog.Image, 1)
}

func TestAssembleExpressionEvaluation(t *testing.T) {
	assert := assert.New(t)

	src := "LDI r0, $(2 + 3 * 4)\n"
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(uint16(14), prog.Image[1])
}

func TestAssembleTwoPassIdempotence(t *testing.T) {
	assert := assert.New(t)

	src := `
.org 0
fib:
  LDI r0, 1
  JMP done
done:
  HALT
`
	prog1, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	prog2, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(prog1.Image, prog2.Image)
}

func TestAssembleOperandCountMismatch(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble(strings.NewReader("MOV r0\n"))
	assert.Error(err)
	assert.ErrorIs(err, ErrOperandCount)
}

func TestAssembleAsciizPreservesCommentCharacters(t *testing.T) {
	assert := assert.New(t)

	src := `s: .asciiz "a;b#c"
LDI r0, s
HALT
`
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(uint16('a'), prog.Image[0])
	assert.Equal(uint16(';'), prog.Image[1])
	assert.Equal(uint16('b'), prog.Image[2])
	assert.Equal(uint16('#'), prog.Image[3])
	assert.Equal(uint16('c'), prog.Image[4])
	assert.Equal(uint16(0), prog.Image[5])
}

func TestAssembleLoadStoreIndirectEncoding(t *testing.T) {
	assert := assert.New(t)

	src := "LD r1, [r2]\nST r3, [r4]\n"
	prog, err := Assemble(strings.NewReader(src))
	assert.NoError(err)
	assert.Len(prog.Image, 2, "both indirect forms are one word")
}
