package alphabet

import (
	"unicode"
	"unicode/utf8"
)

// IsRepresentable reports whether r may be used as a symbol or pad.
// ASCII control characters, DEL, space and every other Unicode control
// character are rejected; all other code points, including multi-byte and
// non-BMP ones, are allowed. Surrogate halves and values outside the Unicode
// range are not characters and are rejected as well.
func IsRepresentable(r rune) bool {
	return utf8.ValidRune(r) && r > 31 && r != 127 && r != ' ' && !unicode.IsControl(r)
}
