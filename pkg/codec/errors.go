package codec

import (
	"errors"
	"fmt"

	"github.com/standardbeagle/b64x/internal/encoding"
)

// Codec errors
var (
	// ErrOverflow is returned when an integer decode exceeds 128 bits, or
	// 64 bits for DecodeUint64.
	ErrOverflow = encoding.ErrOverflow

	// ErrInvalidCharacter is returned for a character that is neither an
	// alphabet symbol, the pad symbol nor a line separator.
	ErrInvalidCharacter = errors.New("invalid base64 character")
)

func invalidCharacter(r rune, offset int) error {
	return fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, r, offset)
}
