// Package alphabet describes the 64-symbol alphabets used by the codec.
//
// A Config holds exactly 64 distinct representable symbols (index i denotes
// the value i), an optional pad symbol that is not part of the alphabet and an
// optional line length for wrapped output. Configs are built through New,
// which validates them; the canonical RFC alphabets are provided as read-only
// package values.
//
// A Config is not safe for concurrent mutation. The read-only canonical
// configs may be shared freely.
package alphabet

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Alphabet shape constants
const (
	// Size is the number of symbols in every alphabet.
	Size = 64

	// NoPadding disables the pad symbol.
	NoPadding rune = -1

	// NoLineLimit disables line wrapping.
	NoLineLimit = 0
)

// Config is a validated alphabet description.
type Config struct {
	symbols    []rune
	pad        rune
	lineLength int
	readOnly   bool

	// Symbol to index lookup. ASCII symbols use the table, everything else
	// the map.
	ascii    [128]int8
	nonASCII map[rune]int
}

// New creates a validated configuration.
//
// Checks run in a fixed order and the first failure wins: symbol count,
// pad uniqueness, symbol representability, pad representability, duplicate
// symbols. Pass NoPadding and NoLineLimit to disable the pad and wrapping.
func New(symbols []rune, pad rune, lineLength int) (*Config, error) {
	if len(symbols) != Size {
		return nil, fmt.Errorf("%w: got %d", ErrCharacterSetLength, len(symbols))
	}
	if pad != NoPadding {
		if err := checkUniquePad(symbols, pad); err != nil {
			return nil, err
		}
	}
	if err := checkRepresentable(symbols); err != nil {
		return nil, err
	}
	if pad != NoPadding && !IsRepresentable(pad) {
		return nil, fmt.Errorf("%w: %U", ErrPaddingUnrepresentable, pad)
	}
	if err := checkDuplicates(symbols); err != nil {
		return nil, err
	}

	c := &Config{
		pad:        pad,
		lineLength: lineLength,
	}
	c.setSymbols(symbols)
	return c, nil
}

// FromString is New with the symbols given as a string.
func FromString(symbols string, pad rune, lineLength int) (*Config, error) {
	return New([]rune(symbols), pad, lineLength)
}

// MustNew is like New but panics on an invalid configuration. It is meant for
// package-level alphabets whose symbols are fixed at compile time.
func MustNew(symbols string, pad rune, lineLength int) *Config {
	c, err := FromString(symbols, pad, lineLength)
	if err != nil {
		panic(fmt.Sprintf("alphabet: invalid configuration: %v", err))
	}
	return c
}

// setSymbols stores a private copy of symbols and rebuilds the lookup.
func (c *Config) setSymbols(symbols []rune) {
	c.symbols = append(make([]rune, 0, Size), symbols...)

	for i := range c.ascii {
		c.ascii[i] = -1
	}
	c.nonASCII = nil
	for i, r := range c.symbols {
		if r < 128 {
			c.ascii[r] = int8(i)
			continue
		}
		if c.nonASCII == nil {
			c.nonASCII = make(map[rune]int)
		}
		c.nonASCII[r] = i
	}
}

// SetSymbols replaces the alphabet. The new symbols are checked for length,
// duplicates and representability, in that order. The current pad is kept
// as-is and is not checked against the new symbols.
func (c *Config) SetSymbols(symbols []rune) error {
	if c.readOnly {
		return ErrReadOnly
	}
	if len(symbols) != Size {
		return fmt.Errorf("%w: got %d", ErrCharacterSetLength, len(symbols))
	}
	if err := checkDuplicates(symbols); err != nil {
		return err
	}
	if err := checkRepresentable(symbols); err != nil {
		return err
	}
	c.setSymbols(symbols)
	return nil
}

// SetLineLength sets the wrap length. The value is not validated; anything
// below 1 disables wrapping.
func (c *Config) SetLineLength(lineLength int) error {
	if c.readOnly {
		return ErrReadOnly
	}
	c.lineLength = lineLength
	return nil
}

// SetPadding sets the pad symbol, or removes it when pad is NoPadding.
func (c *Config) SetPadding(pad rune) error {
	if c.readOnly {
		return ErrReadOnly
	}
	if pad != NoPadding {
		if err := checkUniquePad(c.symbols, pad); err != nil {
			return err
		}
		if !IsRepresentable(pad) {
			return fmt.Errorf("%w: %U", ErrPaddingUnrepresentable, pad)
		}
	}
	c.pad = pad
	return nil
}

// Symbols returns a copy of the alphabet.
func (c *Config) Symbols() []rune {
	return append([]rune(nil), c.symbols...)
}

// Symbol returns the symbol for value i (0-63).
func (c *Config) Symbol(i int) rune {
	return c.symbols[i]
}

// Zero returns the symbol for value 0.
func (c *Config) Zero() rune {
	return c.symbols[0]
}

// Index returns the value of symbol r.
func (c *Config) Index(r rune) (int, bool) {
	if r >= 0 && r < 128 {
		i := c.ascii[r]
		return int(i), i >= 0
	}
	i, ok := c.nonASCII[r]
	return i, ok
}

// Contains reports whether r is one of the 64 symbols.
func (c *Config) Contains(r rune) bool {
	_, ok := c.Index(r)
	return ok
}

// Pad returns the pad symbol and whether padding is enabled.
func (c *Config) Pad() (rune, bool) {
	return c.pad, c.pad != NoPadding
}

// HasPadding reports whether a pad symbol is configured.
func (c *Config) HasPadding() bool {
	return c.pad != NoPadding
}

// LineLength returns the wrap length, or NoLineLimit.
func (c *Config) LineLength() int {
	if c.lineLength < 1 {
		return NoLineLimit
	}
	return c.lineLength
}

// ReadOnly reports whether the setters are disabled.
func (c *Config) ReadOnly() bool {
	return c.readOnly
}

// Clone returns a mutable copy.
func (c *Config) Clone() *Config {
	clone := &Config{
		pad:        c.pad,
		lineLength: c.lineLength,
	}
	clone.setSymbols(c.symbols)
	return clone
}

// Equal reports whether both configs have the same symbols in the same order,
// the same pad and the same line length.
func (c *Config) Equal(other *Config) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil {
		return false
	}
	if c.pad != other.pad || c.LineLength() != other.LineLength() {
		return false
	}
	if len(c.symbols) != len(other.symbols) {
		return false
	}
	for i := range c.symbols {
		if c.symbols[i] != other.symbols[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns a 64-bit hash of symbols, pad and line length.
// Equal configs have equal fingerprints.
func (c *Config) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(c.symbols))

	var buf [12]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(c.pad))
	binary.BigEndian.PutUint64(buf[4:], uint64(c.LineLength()))
	_, _ = d.Write(buf[:])

	return d.Sum64()
}

// String renders the symbols followed by the pad and the line length, if set.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.symbols))
	if c.HasPadding() {
		sb.WriteRune(c.pad)
	}
	if n := c.LineLength(); n != NoLineLimit {
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

func checkUniquePad(symbols []rune, pad rune) error {
	for _, r := range symbols {
		if r == pad {
			return fmt.Errorf("%w: %q", ErrNotUniquePadding, pad)
		}
	}
	return nil
}

func checkRepresentable(symbols []rune) error {
	for i, r := range symbols {
		if !IsRepresentable(r) {
			return fmt.Errorf("%w: %U at index %d", ErrCharacterSetUnrepresentable, r, i)
		}
	}
	return nil
}

func checkDuplicates(symbols []rune) error {
	seen := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if j, ok := seen[r]; ok {
			return fmt.Errorf("%w: %q at index %d and %d", ErrDuplicateCharacter, r, j, i)
		}
		seen[r] = i
	}
	return nil
}
