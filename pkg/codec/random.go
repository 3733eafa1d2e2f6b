package codec

import (
	"math/rand/v2"

	"github.com/standardbeagle/b64x/pkg/alphabet"
)

// RandomSource supplies uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource is used when a nil RandomSource is given.
var DefaultSource RandomSource = globalSource{}

// NewRandom returns length uniformly drawn symbols, padded as cfg requires.
// A nil cfg selects alphabet.Standard and a nil src selects DefaultSource.
func NewRandom(length int, cfg *alphabet.Config, src RandomSource) *Value {
	v := &Value{config: configOrStandard(cfg)}
	v.Randomize(length, src)
	return v
}

// Randomize replaces the value with length uniformly drawn symbols under the
// current config, then re-pads. Negative lengths produce an empty value.
func (v *Value) Randomize(length int, src RandomSource) {
	if src == nil {
		src = DefaultSource
	}
	if length < 0 {
		length = 0
	}

	cfg := v.cfg()
	symbols := make([]rune, length, length+4)
	for i := range symbols {
		symbols[i] = cfg.Symbol(src.IntN(alphabet.Size))
	}
	v.symbols = symbols
	v.applyPadding()
}
