package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	op, ok := Lookup("LDI")
	assert.True(ok)
	assert.Equal(LDI, op)

	_, ok = Lookup("NOPE")
	assert.False(ok)
}

func TestWords(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op    Opcode
		words int
	}{
		{NOP, 1},
		{LDI, 2},
		{LEA, 2},
		{CALL, 2},
		{RET, 1},
		{LD_IND, 1},
		{ST_ABS, 2},
		{MUL, 1},
	}

	for _, entry := range table {
		assert.Equal(entry.words, entry.op.Words(), entry.op.String())
	}
}

func TestEncodeDecode(t *testing.T) {
	assert := assert.New(t)

	word := Encode(ADD, 3, 5)
	op, rd, rs := Decode(word)
	assert.Equal(ADD, op)
	assert.Equal(uint8(3), rd)
	assert.Equal(uint8(5), rs)
}

func TestEncodeMasksOutOfRangeFields(t *testing.T) {
	assert := assert.New(t)

	word := Encode(MOV, 0xFF, 0xFF)
	_, rd, rs := Decode(word)
	assert.Equal(uint8(7), rd)
	assert.Equal(uint8(7), rs)
}

func TestStringFallback(t *testing.T) {
	assert := assert.New(t)

	unknown := Opcode(0x1E)
	assert.Equal("opcode(0x1e)", unknown.String())
}
