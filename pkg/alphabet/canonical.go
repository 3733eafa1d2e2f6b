package alphabet

// Alphabet strings of the canonical configurations
const (
	StandardSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	IMAPSymbols     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+,"
	URLSafeSymbols  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	// StandardPad is the pad used by every padded canonical configuration.
	StandardPad = '='

	// MIMELineLength is the RFC 2045 maximum encoded line length.
	MIMELineLength = 76
)

// Canonical configurations. They are read-only: their setters return
// ErrReadOnly. Use Clone to derive a mutable copy.
var (
	// Standard is RFC 4648 section 4 base64.
	Standard = readOnly(StandardSymbols, StandardPad, NoLineLimit)

	// MIME is RFC 2045 base64: the standard alphabet wrapped at 76 symbols.
	MIME = readOnly(StandardSymbols, StandardPad, MIMELineLength)

	// IMAP is the RFC 3501 modified base64 alphabet, unpadded.
	IMAP = readOnly(IMAPSymbols, NoPadding, NoLineLimit)

	// URLSafe is RFC 4648 section 5 base64url with padding.
	URLSafe = readOnly(URLSafeSymbols, StandardPad, NoLineLimit)

	// URLSafeNoPadding is base64url without padding.
	URLSafeNoPadding = readOnly(URLSafeSymbols, NoPadding, NoLineLimit)
)

func readOnly(symbols string, pad rune, lineLength int) *Config {
	c := MustNew(symbols, pad, lineLength)
	c.readOnly = true
	return c
}
