// Package alu implements the pure 16-bit arithmetic/logic/shift/compare
// operations of the toy16 Machine and their flag side effects.
package alu

// Flags holds the four processor condition flags. They live outside the
// register file and are updated by every ALU operation (and by register
// writes in general — see Flags.FromResult).
type Flags struct {
	Z bool // Zero
	N bool // Negative (bit 15 of the result)
	C bool // Carry/borrow out of bit 15
	V bool // Signed overflow
}

// FromResult recomputes Z and N from a stored value. Every register write
// in the machine — not just arithmetic — runs a result through this.
func (f *Flags) FromResult(result uint16) {
	f.Z = result == 0
	f.N = result&0x8000 != 0
}

// Add computes a+b mod 2^16 and sets Z/N/C/V.
func Add(a, b uint16, f *Flags) uint16 {
	sum := uint32(a) + uint32(b)
	res := uint16(sum)
	f.FromResult(res)
	f.C = sum>>16 != 0
	f.V = (^(a ^ b) & (res ^ a) & 0x8000) != 0
	return res
}

// Sub computes a-b mod 2^16 and sets Z/N/C/V. C is the borrow bit: set
// when the subtraction underflows.
func Sub(a, b uint16, f *Flags) uint16 {
	diff := uint32(a) - uint32(b)
	res := uint16(diff)
	f.FromResult(res)
	f.C = diff>>16 != 0
	f.V = ((a ^ b) & (a ^ res) & 0x8000) != 0
	return res
}

// And computes a&b. C and V are always cleared for bitwise ops.
func And(a, b uint16, f *Flags) uint16 {
	res := a & b
	f.FromResult(res)
	f.C, f.V = false, false
	return res
}

// Or computes a|b. C and V are always cleared.
func Or(a, b uint16, f *Flags) uint16 {
	res := a | b
	f.FromResult(res)
	f.C, f.V = false, false
	return res
}

// Xor computes a^b. C and V are always cleared.
func Xor(a, b uint16, f *Flags) uint16 {
	res := a ^ b
	f.FromResult(res)
	f.C, f.V = false, false
	return res
}

// Not computes ^a. C and V are always cleared.
func Not(a uint16, f *Flags) uint16 {
	res := ^a
	f.FromResult(res)
	f.C, f.V = false, false
	return res
}

// Shl shifts a left by amount&0xF bits. C takes the last bit shifted out
// of bit 15; a zero-amount shift leaves C unchanged. V is always cleared.
func Shl(a, amount uint16, f *Flags) uint16 {
	sh := amount & 0xF
	res := a << sh
	f.FromResult(res)
	if sh != 0 {
		f.C = (a<<(sh-1))&0x8000 != 0
	}
	f.V = false
	return res
}

// Shr shifts a right (logically) by amount&0xF bits. C takes the last
// bit shifted out of bit 0; a zero-amount shift leaves C unchanged. V is
// always cleared.
func Shr(a, amount uint16, f *Flags) uint16 {
	sh := amount & 0xF
	res := a >> sh
	f.FromResult(res)
	if sh != 0 {
		f.C = (a>>(sh-1))&1 != 0
	}
	f.V = false
	return res
}

// Cmp computes a-b for flag purposes only; the result word is discarded
// by the caller (registers are left unchanged).
func Cmp(a, b uint16, f *Flags) {
	Sub(a, b, f)
}

// Mul computes (a*b) mod 2^16. C is set when the full 32-bit product
// doesn't fit in 16 bits; V is always cleared.
func Mul(a, b uint16, f *Flags) uint16 {
	product := uint32(a) * uint32(b)
	res := uint16(product)
	f.FromResult(res)
	f.C = product>>16 != 0
	f.V = false
	return res
}
