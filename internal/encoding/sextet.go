// Package encoding provides the low-level bit packing behind the codec.
// It knows nothing about alphabets: everything here works on sextets,
// the 6-bit values (0-63) that an alphabet maps to symbols.
//
// Byte layout: input bytes are read MSB first into one bitstream which is cut
// into consecutive 6-bit groups. Three bytes (24 bits) form a chunk of four
// sextets; a short final chunk is zero-filled to a sextet boundary and the
// missing sextets are reported as padding.
package encoding

import (
	"errors"
)

// Sextet layout constants
const (
	Base         = 64 // radix of a sextet
	SextetBits   = 6
	ChunkBytes   = 3 // bytes per padded chunk
	ChunkSymbols = 4 // sextets per padded chunk
	sextetMask   = Base - 1
)

// Common errors for encoding operations
var (
	ErrOverflow = errors.New("decoded value overflows 128 bits")
)

// SplitSextets converts data into its sextet sequence.
// The returned padding is the number of pad markers (0, 1 or 2) needed to
// complete the final chunk; callers either emit a pad symbol for each marker
// or drop them.
func SplitSextets(data []byte) (sextets []byte, padding int) {
	sextets = make([]byte, 0, EncodedLen(len(data), false))

	var acc uint32
	var bits uint
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= SextetBits {
			bits -= SextetBits
			sextets = append(sextets, byte(acc>>bits)&sextetMask)
		}
		acc &= 1<<bits - 1
	}

	// Zero-fill the remainder up to a sextet boundary
	if bits > 0 {
		sextets = append(sextets, byte(acc<<(SextetBits-bits))&sextetMask)
	}

	if r := len(sextets) % ChunkSymbols; r != 0 {
		padding = ChunkSymbols - r
	}
	return sextets, padding
}

// JoinSextets is the inverse of SplitSextets. It emits exactly
// DecodedLen(len(sextets)) bytes; trailing bits that do not complete a byte
// are the zero fill added by SplitSextets and are discarded.
// Only the low 6 bits of each sextet are used.
func JoinSextets(sextets []byte) []byte {
	out := make([]byte, 0, DecodedLen(len(sextets)))

	var acc uint32
	var bits uint
	for _, s := range sextets {
		acc = acc<<SextetBits | uint32(s&sextetMask)
		bits += SextetBits
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
			acc &= 1<<bits - 1
		}
	}

	return out
}

// EncodedLen returns the number of sextets SplitSextets produces for n input
// bytes, including pad markers when padded is true.
func EncodedLen(n int, padded bool) int {
	if padded {
		return (n + ChunkBytes - 1) / ChunkBytes * ChunkSymbols
	}
	return (n*8 + SextetBits - 1) / SextetBits
}

// DecodedLen returns the number of bytes JoinSextets produces for n sextets.
func DecodedLen(n int) int {
	return n * SextetBits / 8
}
