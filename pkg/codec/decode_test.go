package codec

import (
	"strings"
	"testing"

	"github.com/standardbeagle/b64x/pkg/alphabet"
	"github.com/standardbeagle/b64x/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestDecodeUnsigned(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"A", 0},
		{"B", 1},
		{"K", 10},
		{"8", 60},
		{"CA", 128},
		{"QAC", 65538},
		{"zzz", 212211},
		{"AAAAK", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := NewFromString(tt.input, alphabet.URLSafeNoPadding)
			require.NoError(t, err)

			n, err := v.DecodeUint64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDecodeUnsigned_RoundTrip(t *testing.T) {
	big, err := uint128.FromString("20769187000000000000000000000000000")
	require.NoError(t, err)

	values := []uint128.Uint128{
		uint128.Zero,
		uint128.From64(1),
		uint128.From64(27),
		uint128.From64(32),
		uint128.From64(90),
		uint128.From64(100),
		uint128.From64(10000),
		uint128.From64(^uint64(0)),
		uint128.New(0, 1),
		big,
		uint128.Max,
	}

	src := testhelpers.SeededSource(42)
	for i := 0; i < 64; i++ {
		values = append(values, uint128.New(src.Uint64(), src.Uint64()>>uint(i)))
	}

	for _, cfg := range []*alphabet.Config{alphabet.Standard, alphabet.IMAP, alphabet.URLSafeNoPadding} {
		for _, want := range values {
			got, err := NewFromUnsigned(want, cfg).DecodeUnsigned()
			require.NoError(t, err, want.String())
			assert.True(t, want.Equals(got), "%s != %s", want, got)
		}
	}
}

func TestDecodeUnsigned_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"just above max", "E" + strings.Repeat("A", 21)},
		{"all ones", strings.Repeat("_", 22)},
		{"23 symbols", "B" + strings.Repeat("A", 22)},
		{"23 leading zeros", strings.Repeat("A", 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewFromString(tt.input, alphabet.URLSafeNoPadding)
			require.NoError(t, err)

			_, err = v.DecodeUnsigned()
			assert.ErrorIs(t, err, ErrOverflow)
		})
	}

	maxValue, err := NewFromString("D"+strings.Repeat("_", 21), alphabet.URLSafeNoPadding)
	require.NoError(t, err)
	n, err := maxValue.DecodeUnsigned()
	require.NoError(t, err)
	assert.True(t, n.Equals(uint128.Max))

	// 22 leading zeros still fit.
	zeros, err := NewFromString(strings.Repeat("A", 22), alphabet.URLSafeNoPadding)
	require.NoError(t, err)
	n, err = zeros.DecodeUnsigned()
	require.NoError(t, err)
	assert.True(t, n.IsZero())
}

func TestDecodeUint64_Overflow(t *testing.T) {
	v := NewFromUnsigned(uint128.New(0, 1), alphabet.Standard)
	_, err := v.DecodeUint64()
	assert.ErrorIs(t, err, ErrOverflow)

	v = NewFromUint64(^uint64(0), alphabet.Standard)
	n, err := v.DecodeUint64()
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), n)
}

func TestDecodeBytes_RoundTrip(t *testing.T) {
	emoji := testhelpers.NewAlphabetBuilder(t).WithEmoji().WithPad('⋔').WithLineLength(6).Build()
	cfgs := map[string]*alphabet.Config{
		"standard":  alphabet.Standard,
		"mime":      alphabet.MIME,
		"imap":      alphabet.IMAP,
		"url":       alphabet.URLSafe,
		"url-nopad": alphabet.URLSafeNoPadding,
		"emoji":     emoji,
	}

	for cfgName, cfg := range cfgs {
		for payloadName, payload := range testhelpers.EdgePayloads() {
			t.Run(cfgName+"/"+payloadName, func(t *testing.T) {
				decoded, err := NewFromBytes(payload, cfg).DecodeBytes()
				require.NoError(t, err)
				assert.Equal(t, len(payload), len(decoded))
				assert.Equal(t, payload, decoded)
			})
		}
	}
}

func TestDecodeBytes_KeepsZeroBytes(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x00, 0x00}
	decoded, err := NewFromBytes(payload, alphabet.Standard).DecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeBytes_DropsPartialByte(t *testing.T) {
	// Two symbols carry 12 bits: one byte plus four fill bits.
	v, err := NewFromString("TQ", alphabet.URLSafeNoPadding)
	require.NoError(t, err)
	decoded, err := v.DecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("M"), decoded)

	// A single symbol never forms a byte.
	v, err = NewFromString("T", alphabet.URLSafeNoPadding)
	require.NoError(t, err)
	decoded, err = v.DecodeBytes()
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
