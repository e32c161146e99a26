// Package buf contains bounds arithmetic and little-endian decoding helpers
// shared by the datafile decoders.
package buf

import "encoding/binary"

// Words decodes b as consecutive little-endian int32 values. Trailing bytes
// that do not form a whole word are ignored.
func Words(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// PutWords encodes words into b little-endian. b must hold 4*len(words) bytes.
func PutWords(b []byte, words []int32) {
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(w))
	}
}
