package testhelpers

import (
	"testing"

	"github.com/standardbeagle/b64x/pkg/alphabet"
)

// EmojiSymbols returns 64 consecutive emoticons starting at U+1F600.
func EmojiSymbols() []rune {
	symbols := make([]rune, alphabet.Size)
	for i := range symbols {
		symbols[i] = rune(0x1F600 + i)
	}
	return symbols
}

// AlphabetBuilder provides a fluent API for building test alphabets
// Usage:
//
//	cfg := testhelpers.NewAlphabetBuilder(t).
//		WithSymbols(alphabet.URLSafeSymbols).
//		WithPad('.').
//		WithLineLength(8).
//		Build()
type AlphabetBuilder struct {
	t          *testing.T
	symbols    []rune
	pad        rune
	lineLength int
}

// NewAlphabetBuilder starts from the standard alphabet with '=' padding and
// no line limit.
func NewAlphabetBuilder(t *testing.T) *AlphabetBuilder {
	return &AlphabetBuilder{
		t:          t,
		symbols:    []rune(alphabet.StandardSymbols),
		pad:        alphabet.StandardPad,
		lineLength: alphabet.NoLineLimit,
	}
}

// WithSymbols replaces the symbols
func (b *AlphabetBuilder) WithSymbols(symbols string) *AlphabetBuilder {
	b.symbols = []rune(symbols)
	return b
}

// WithEmoji switches to the emoji alphabet
func (b *AlphabetBuilder) WithEmoji() *AlphabetBuilder {
	b.symbols = EmojiSymbols()
	return b
}

// WithPad sets the pad symbol
func (b *AlphabetBuilder) WithPad(pad rune) *AlphabetBuilder {
	b.pad = pad
	return b
}

// WithoutPad disables padding
func (b *AlphabetBuilder) WithoutPad() *AlphabetBuilder {
	b.pad = alphabet.NoPadding
	return b
}

// WithLineLength sets the wrap length
func (b *AlphabetBuilder) WithLineLength(n int) *AlphabetBuilder {
	b.lineLength = n
	return b
}

// Build creates the config, failing the test if it is invalid
func (b *AlphabetBuilder) Build() *alphabet.Config {
	b.t.Helper()
	cfg, err := alphabet.New(b.symbols, b.pad, b.lineLength)
	if err != nil {
		b.t.Fatalf("invalid test alphabet: %v", err)
	}
	return cfg
}
