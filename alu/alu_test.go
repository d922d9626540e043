package alu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCarryOverflow(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	res := Add(0xFFFF, 0x0001, &f)
	assert.Equal(uint16(0), res)
	assert.True(f.Z)
	assert.True(f.C)
	assert.False(f.V)

	res = Add(0x7FFF, 0x0001, &f)
	assert.Equal(uint16(0x8000), res)
	assert.True(f.N)
	assert.False(f.C)
	assert.True(f.V, "signed overflow adding two positives into a negative")
}

func TestSubBorrow(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	res := Sub(0x0000, 0x0001, &f)
	assert.Equal(uint16(0xFFFF), res)
	assert.True(f.C, "borrow out of bit 15")
	assert.True(f.N)
}

func TestLogicClearsCarryOverflow(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	f.C, f.V = true, true
	And(0xF0F0, 0x0F0F, &f)
	assert.False(f.C)
	assert.False(f.V)
}

func TestShiftByZeroPreservesCarry(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	f.C = true
	res := Shl(0x1234, 0, &f)
	assert.Equal(uint16(0x1234), res)
	assert.True(f.C, "zero-amount shift must not clear carry")

	f.C = false
	res = Shr(0x1234, 0, &f)
	assert.Equal(uint16(0x1234), res)
	assert.False(f.C)
}

func TestShlCarryOut(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	res := Shl(0x8001, 1, &f)
	assert.Equal(uint16(0x0002), res)
	assert.True(f.C)
}

func TestShrCarryOut(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	res := Shr(0x0003, 1, &f)
	assert.Equal(uint16(0x0001), res)
	assert.True(f.C)
}

func TestMulCarry(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	res := Mul(0x0100, 0x0100, &f)
	assert.Equal(uint16(0), res)
	assert.True(f.C, "high 16 bits non-zero")

	res = Mul(3, 4, &f)
	assert.Equal(uint16(12), res)
	assert.False(f.C)
}

func TestCmpLeavesNoResult(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	Cmp(5, 5, &f)
	assert.True(f.Z)
}
