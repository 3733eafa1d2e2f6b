// Package codec implements base64 values over configurable alphabets.
//
// A Value is an ordered sequence of symbols bound to an alphabet.Config. It
// can be built from an unsigned integer (up to 128 bits), a byte sequence, a
// string already in encoded form or random symbols, and decoded back to bytes
// or an integer. Integers are encoded most significant symbol first, so
// leading zero symbols do not change the value.
//
// Every constructor and mutator leaves the value padded: when the config has
// a pad symbol, the symbol count (line separators excluded) is a multiple
// of 4.
//
// A Value is not safe for concurrent mutation. The config is shared, not
// copied; mutating a shared custom config changes how existing values
// decode.
package codec

import (
	"slices"

	"github.com/standardbeagle/b64x/internal/encoding"
	"github.com/standardbeagle/b64x/pkg/alphabet"
	"lukechampine.com/uint128"
)

// Line separators accepted in encoded text. Byte encoding under a config
// with a line length inserts LineBreak.
const (
	LineBreak = '\n'
	Space     = ' '
)

// Value is an encoded base64 value. The zero Value is empty and uses
// alphabet.Standard.
type Value struct {
	symbols []rune
	config  *alphabet.Config
}

func configOrStandard(cfg *alphabet.Config) *alphabet.Config {
	if cfg == nil {
		return alphabet.Standard
	}
	return cfg
}

// Default returns zero encoded under alphabet.Standard ("A===").
func Default() *Value {
	return NewFromUnsigned(uint128.Zero, alphabet.Standard)
}

// NewFromUnsigned encodes value. A nil cfg selects alphabet.Standard.
func NewFromUnsigned(value uint128.Uint128, cfg *alphabet.Config) *Value {
	v := &Value{config: configOrStandard(cfg)}
	v.EncodeUnsigned(value)
	return v
}

// NewFromUint64 encodes value. A nil cfg selects alphabet.Standard.
func NewFromUint64(value uint64, cfg *alphabet.Config) *Value {
	return NewFromUnsigned(uint128.From64(value), cfg)
}

// NewFromBytes encodes data, emitting pad symbols inline and wrapping lines
// as the config requires. A nil cfg selects alphabet.Standard.
func NewFromBytes(data []byte, cfg *alphabet.Config) *Value {
	v := &Value{config: configOrStandard(cfg)}
	v.EncodeBytes(data)
	return v
}

// NewFromString parses already encoded text. Every character must be an
// alphabet symbol, the pad symbol, a line break or a space; characters are
// kept as given and missing pad symbols are appended.
func NewFromString(s string, cfg *alphabet.Config) (*Value, error) {
	v := &Value{config: configOrStandard(cfg)}
	if err := v.SetString(s); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Value) cfg() *alphabet.Config {
	return configOrStandard(v.config)
}

// Config returns the alphabet the value is bound to.
func (v *Value) Config() *alphabet.Config {
	return v.cfg()
}

// Len returns the number of symbols, pad symbols included and line
// separators excluded.
func (v *Value) Len() int {
	n := 0
	for _, r := range v.symbols {
		if !isSeparator(r) {
			n++
		}
	}
	return n
}

// String returns the encoded text.
func (v *Value) String() string {
	return string(v.symbols)
}

// Clone returns a copy sharing the same config.
func (v *Value) Clone() *Value {
	return &Value{
		symbols: slices.Clone(v.symbols),
		config:  v.config,
	}
}

// EncodeUnsigned replaces the value with the encoding of value under the
// current config. Integers are never wrapped.
func (v *Value) EncodeUnsigned(value uint128.Uint128) {
	cfg := v.cfg()
	sextets := encoding.UnsignedToSextets(value)

	symbols := make([]rune, len(sextets), len(sextets)+encoding.ChunkSymbols)
	for i, s := range sextets {
		symbols[i] = cfg.Symbol(int(s))
	}
	v.symbols = symbols
	v.applyPadding()
}

// EncodeUint64 is EncodeUnsigned for a 64-bit value.
func (v *Value) EncodeUint64(value uint64) {
	v.EncodeUnsigned(uint128.From64(value))
}

// EncodeBytes replaces the value with the encoding of data under the current
// config.
func (v *Value) EncodeBytes(data []byte) {
	cfg := v.cfg()
	sextets, padding := encoding.SplitSextets(data)

	w := newLineWriter(cfg.LineLength(), encoding.EncodedLen(len(data), true))
	for _, s := range sextets {
		w.put(cfg.Symbol(int(s)))
	}
	if pad, ok := cfg.Pad(); ok {
		for i := 0; i < padding; i++ {
			w.put(pad)
		}
	}
	v.symbols = w.out
}

// SetString replaces the value with already encoded text, validated as in
// NewFromString. On error the value is unchanged.
func (v *Value) SetString(s string) error {
	cfg := v.cfg()
	pad, padded := cfg.Pad()

	symbols := make([]rune, 0, len(s))
	for offset, r := range s {
		if !cfg.Contains(r) && !isSeparator(r) && !(padded && r == pad) {
			return invalidCharacter(r, offset)
		}
		symbols = append(symbols, r)
	}
	v.symbols = symbols
	v.applyPadding()
	return nil
}

// Reconfigure rebinds the value to cfg, mapping every symbol to the symbol
// with the same index in the new alphabet. Pad symbols become the new pad
// symbol, or are dropped when cfg has none; line breaks are redone for the
// new line length. A nil cfg selects alphabet.Standard. On error the value
// is unchanged.
func (v *Value) Reconfigure(cfg *alphabet.Config) error {
	oldCfg := v.cfg()
	newCfg := configOrStandard(cfg)
	oldPad, oldPadded := oldCfg.Pad()
	newPad, newPadded := newCfg.Pad()

	w := newLineWriter(newCfg.LineLength(), len(v.symbols))
	for offset, r := range v.symbols {
		switch {
		case isSeparator(r):
		case oldPadded && r == oldPad:
			if newPadded {
				w.put(newPad)
			}
		default:
			idx, ok := oldCfg.Index(r)
			if !ok {
				return invalidCharacter(r, offset)
			}
			w.put(newCfg.Symbol(idx))
		}
	}
	if newPadded {
		for w.n%encoding.ChunkSymbols != 0 {
			w.put(newPad)
		}
	}

	v.symbols = w.out
	v.config = newCfg
	return nil
}

// ExpandTo prepends zero symbols until the value holds n data symbols, then
// re-pads. Pad symbols and line separators are not counted and are removed.
// Values already holding n or more data symbols are left unchanged.
func (v *Value) ExpandTo(n int) {
	data := v.dataSymbols()
	if len(data) >= n {
		return
	}

	symbols := make([]rune, n, n+encoding.ChunkSymbols)
	zero := v.cfg().Zero()
	fill := n - len(data)
	for i := 0; i < fill; i++ {
		symbols[i] = zero
	}
	copy(symbols[fill:], data)

	v.symbols = symbols
	v.applyPadding()
}

// TruncateTo drops leading data symbols until n remain, then re-pads. Pad
// symbols and line separators are removed. n <= 0 and values with at most n
// data symbols are left unchanged.
func (v *Value) TruncateTo(n int) {
	if n <= 0 {
		return
	}
	data := v.dataSymbols()
	if len(data) <= n {
		return
	}

	v.symbols = slices.Clone(data[len(data)-n:])
	v.applyPadding()
}

// applyPadding appends pad symbols until Len is a multiple of 4 when the
// config has a pad symbol.
func (v *Value) applyPadding() {
	pad, ok := v.cfg().Pad()
	if !ok {
		return
	}
	for n := v.Len(); n%encoding.ChunkSymbols != 0; n++ {
		v.symbols = append(v.symbols, pad)
	}
}

// dataSymbols returns the symbols without pad symbols and line separators.
func (v *Value) dataSymbols() []rune {
	pad, padded := v.cfg().Pad()
	data := make([]rune, 0, len(v.symbols))
	for _, r := range v.symbols {
		if isSeparator(r) || (padded && r == pad) {
			continue
		}
		data = append(data, r)
	}
	return data
}

// sextets maps the data symbols to their alphabet indices.
func (v *Value) sextets() ([]byte, error) {
	cfg := v.cfg()
	pad, padded := cfg.Pad()

	out := make([]byte, 0, len(v.symbols))
	for offset, r := range v.symbols {
		if isSeparator(r) || (padded && r == pad) {
			continue
		}
		idx, ok := cfg.Index(r)
		if !ok {
			return nil, invalidCharacter(r, offset)
		}
		out = append(out, byte(idx))
	}
	return out, nil
}

func isSeparator(r rune) bool {
	return r == LineBreak || r == Space
}

// lineWriter collects symbols, inserting a line break before every symbol
// that starts a new line of width symbols. A width below 1 disables
// wrapping.
type lineWriter struct {
	out   []rune
	width int
	n     int // symbols written, breaks excluded
}

func newLineWriter(width, capacity int) *lineWriter {
	if width > 0 {
		capacity += capacity / width
	}
	return &lineWriter{
		out:   make([]rune, 0, capacity),
		width: width,
	}
}

func (w *lineWriter) put(r rune) {
	if w.width > 0 && w.n > 0 && w.n%w.width == 0 {
		w.out = append(w.out, LineBreak)
	}
	w.out = append(w.out, r)
	w.n++
}
