package testhelpers

import (
	"math/rand/v2"
)

// Payload returns size pseudo-random bytes. The same seed always yields the
// same bytes.
func Payload(size int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]byte, size)
	for i := range out {
		out[i] = byte(r.IntN(256))
	}
	return out
}

// EdgePayloads returns byte sequences that exercise chunk boundaries and zero
// bytes, keyed by a short description.
func EdgePayloads() map[string][]byte {
	return map[string][]byte{
		"empty":          {},
		"one byte":       {0x4d},
		"two bytes":      {0x4d, 0x61},
		"one chunk":      {0x4d, 0x61, 0x6e},
		"zero byte":      {0x00},
		"zero bytes":     {0x00, 0x00, 0x00, 0x00},
		"trailing zero":  {0xff, 0x00},
		"leading zero":   {0x00, 0xff},
		"all ones":       {0xff, 0xff, 0xff, 0xff, 0xff},
		"multi chunk":    []byte("This is a short sentence."),
		"seeded 1k":      Payload(1024, 1),
		"seeded odd len": Payload(1001, 2),
	}
}

// SeededSource returns a deterministic random source for codec tests.
func SeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// SequenceSource replays fixed values, cycling when exhausted. Each value is
// reduced modulo n.
type SequenceSource struct {
	Values []int
	next   int
}

// IntN returns the next value modulo n.
func (s *SequenceSource) IntN(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v % n
}
