package encoding

import (
	"math/bits"

	"lukechampine.com/uint128"
)

// maxUnsignedSextets is the number of sextets needed for the largest 128-bit
// value (ceil(128/6)).
const maxUnsignedSextets = 22

// UnsignedToSextets converts value to its base-64 digits, most significant
// first. Zero encodes as the single sextet 0.
func UnsignedToSextets(value uint128.Uint128) []byte {
	if value.IsZero() {
		return []byte{0}
	}

	var buf [maxUnsignedSextets]byte
	pos := len(buf)

	for !value.IsZero() {
		pos--
		buf[pos] = byte(value.Lo & sextetMask)
		value = value.Rsh(SextetBits)
	}

	out := make([]byte, len(buf)-pos)
	copy(out, buf[pos:])
	return out
}

// SextetsToUnsigned accumulates sextets (most significant first) into a
// 128-bit value as sum(s[i] * 64^(n-1-i)).
//
// Every power, product and partial sum is checked and the first overflow
// returns ErrOverflow with no partial result. Because the power is checked
// before it is multiplied, a run of leading zero sextets longer than the
// 128-bit range is rejected even when the value itself would fit.
func SextetsToUnsigned(sextets []byte) (uint128.Uint128, error) {
	var sum uint128.Uint128

	for i, s := range sextets {
		place := uint(len(sextets)-1-i) * SextetBits

		// 64^place must itself fit in 128 bits
		if place >= 128 {
			return uint128.Zero, ErrOverflow
		}

		digit := uint64(s & sextetMask)
		if digit == 0 {
			continue
		}

		// digit * 64^place
		if uint(bits.Len64(digit))+place > 128 {
			return uint128.Zero, ErrOverflow
		}
		term := uint128.From64(digit).Lsh(place)

		lo, carry := bits.Add64(sum.Lo, term.Lo, 0)
		hi, carry := bits.Add64(sum.Hi, term.Hi, carry)
		if carry != 0 {
			return uint128.Zero, ErrOverflow
		}
		sum = uint128.New(lo, hi)
	}

	return sum, nil
}
