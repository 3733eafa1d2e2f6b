package codec

import (
	"fmt"

	"github.com/standardbeagle/b64x/internal/encoding"
	"lukechampine.com/uint128"
)

// DecodeBytes returns the bytes the value encodes. Pad symbols and line
// separators are ignored; trailing bits that do not fill a byte are dropped.
func (v *Value) DecodeBytes() ([]byte, error) {
	sextets, err := v.sextets()
	if err != nil {
		return nil, err
	}
	return encoding.JoinSextets(sextets), nil
}

// DecodeUnsigned returns the integer the value encodes, most significant
// symbol first. Pad symbols and line separators are ignored.
//
// Arithmetic is checked at every step: values of more than 22 symbols
// always fail with ErrOverflow, leading zero symbols included.
func (v *Value) DecodeUnsigned() (uint128.Uint128, error) {
	sextets, err := v.sextets()
	if err != nil {
		return uint128.Zero, err
	}
	n, err := encoding.SextetsToUnsigned(sextets)
	if err != nil {
		return uint128.Zero, fmt.Errorf("decode %d symbols: %w", len(sextets), err)
	}
	return n, nil
}

// DecodeUint64 is DecodeUnsigned for values that must fit in 64 bits.
func (v *Value) DecodeUint64() (uint64, error) {
	n, err := v.DecodeUnsigned()
	if err != nil {
		return 0, err
	}
	if n.Hi != 0 {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrOverflow, n)
	}
	return n.Lo, nil
}
