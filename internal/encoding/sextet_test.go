package encoding

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestSplitSextets_Chunks(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		sextets []byte
		padding int
	}{
		{"empty", nil, []byte{}, 0},
		{"one byte", []byte{0xFF}, []byte{63, 48}, 2},
		{"two bytes", []byte{0xFF, 0xFF}, []byte{63, 63, 60}, 1},
		{"full chunk", []byte("Man"), []byte{19, 22, 5, 46}, 0},
		{"zero bytes", []byte{0, 0, 0, 0}, []byte{0, 0, 0, 0, 0, 0}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sextets, padding := SplitSextets(tc.input)
			assert.Equal(t, tc.sextets, sextets)
			assert.Equal(t, tc.padding, padding)
		})
	}
}

func TestSplitSextets_PaddedLengthIsChunkMultiple(t *testing.T) {
	for n := 0; n < 64; n++ {
		sextets, padding := SplitSextets(make([]byte, n))
		assert.Equal(t, 0, (len(sextets)+padding)%ChunkSymbols, "length %d", n)
		assert.Equal(t, EncodedLen(n, false), len(sextets), "length %d", n)
		assert.Equal(t, EncodedLen(n, true), len(sextets)+padding, "length %d", n)
	}
}

func TestJoinSextets_KeepsZeroBytes(t *testing.T) {
	// Genuine zero bytes must survive; only the fill bits are dropped
	tests := [][]byte{
		{0},
		{0, 0},
		{0, 0, 0},
		{1, 0},
		{0, 0, 0, 0, 1},
		{0xAB, 0x00, 0x00, 0x00},
	}

	for _, input := range tests {
		sextets, _ := SplitSextets(input)
		assert.Equal(t, input, JoinSextets(sextets))
	}
}

func TestJoinSextets_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		input := make([]byte, rng.IntN(100))
		for j := range input {
			input[j] = byte(rng.IntN(256))
		}
		sextets, _ := SplitSextets(input)
		require.True(t, bytes.Equal(input, JoinSextets(sextets)), "round trip failed for % x", input)
	}
}

func TestJoinSextets_DiscardsPartialByte(t *testing.T) {
	// Three sextets carry 18 bits: two bytes plus two fill bits
	assert.Equal(t, []byte{0xFF, 0xFF}, JoinSextets([]byte{63, 63, 63}))
	// A single sextet is not a byte
	assert.Empty(t, JoinSextets([]byte{63}))
	assert.Equal(t, 2, DecodedLen(3))
}

func TestUnsignedToSextets(t *testing.T) {
	tests := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0}},
		{10, []byte{10}},
		{63, []byte{63}},
		{64, []byte{1, 0}},
		{128, []byte{2, 0}},
		{65538, []byte{16, 0, 2}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, UnsignedToSextets(uint128.From64(tc.value)), "value %d", tc.value)
	}
}

func TestUnsignedToSextets_Max(t *testing.T) {
	sextets := UnsignedToSextets(uint128.Max)
	require.Len(t, sextets, maxUnsignedSextets)
	assert.Equal(t, byte(3), sextets[0])
	for _, s := range sextets[1:] {
		assert.Equal(t, byte(63), s)
	}
}

func TestSextetsToUnsigned_RoundTrip(t *testing.T) {
	big, err := uint128.FromString("20769187000000000000000000000000000")
	require.NoError(t, err)

	values := []uint128.Uint128{
		uint128.Zero,
		uint128.From64(1),
		uint128.From64(212211),
		uint128.From64(^uint64(0)),
		uint128.New(0, 1),
		big,
		uint128.Max,
	}

	for _, value := range values {
		decoded, err := SextetsToUnsigned(UnsignedToSextets(value))
		require.NoError(t, err, "value %s", value)
		assert.True(t, value.Equals(decoded), "%s != %s", value, decoded)
	}
}

func TestSextetsToUnsigned_Overflow(t *testing.T) {
	// 2^128 needs a top sextet of 4 at place 21
	tooBig := append([]byte{4}, make([]byte, 21)...)
	_, err := SextetsToUnsigned(tooBig)
	assert.ErrorIs(t, err, ErrOverflow)

	// 23 sextets: 64^22 does not fit even though the digit there is zero
	leadingZeros := make([]byte, 23)
	leadingZeros[22] = 1
	_, err = SextetsToUnsigned(leadingZeros)
	assert.ErrorIs(t, err, ErrOverflow)

	// 22 sextets with leading zeros still decode
	fits := make([]byte, 22)
	fits[21] = 1
	value, err := SextetsToUnsigned(fits)
	require.NoError(t, err)
	assert.True(t, value.Equals64(1))
}

func TestSextetsToUnsigned_Empty(t *testing.T) {
	value, err := SextetsToUnsigned(nil)
	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

func BenchmarkSplitSextets(b *testing.B) {
	data := bytes.Repeat([]byte("Man is distinguished, not only by his reason"), 32)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SplitSextets(data)
	}
}

func BenchmarkSextetsToUnsigned(b *testing.B) {
	sextets := UnsignedToSextets(uint128.New(0x0123456789ABCDEF, 0x0FEDCBA987654321))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SextetsToUnsigned(sextets)
	}
}
