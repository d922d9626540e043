// Package image implements the toy16 binary image codec (§6 of the
// machine's external interfaces) and the fixed-width memory-dump format
// used to inspect machine state after a run. Grounded on the teacher's
// Program.Binary(), generalized from its 32-bit packed word format to the
// toy16 image's plain little-endian 16-bit words.
package image

import (
	"fmt"
	"strings"
)

// Encode serializes a word image as little-endian bytes: for each word w,
// byte w&0xFF followed by byte (w>>8)&0xFF.
func Encode(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, byte(w&0xFF), byte((w>>8)&0xFF))
	}
	return out
}

// Decode reconstructs a word image from little-endian bytes. An odd final
// byte forms a word with zero in its high byte.
func Decode(data []byte) []uint16 {
	words := make([]uint16, 0, (len(data)+1)/2)
	for i := 0; i < len(data); i += 2 {
		lo := data[i]
		var hi byte
		if i+1 < len(data) {
			hi = data[i+1]
		}
		words = append(words, uint16(lo)|uint16(hi)<<8)
	}
	return words
}

// Memdump renders the full 64K-word address space as one line per
// address, "AAAA VVVV\n", both fields uppercase zero-padded hex. mem must
// have exactly 0x10000 entries; addresses beyond len(mem) are not written.
func Memdump(mem []uint16) string {
	var b strings.Builder
	for addr, word := range mem {
		fmt.Fprintf(&b, "%04X %04X\n", addr, word)
	}
	return b.String()
}
