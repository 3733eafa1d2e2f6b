package codec

import "slices"

// Equal reports whether both values hold the same symbols. Configs are not
// compared.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return slices.Equal(v.symbols, other.symbols)
}

// Compare orders values by their data symbols: a value with fewer data
// symbols sorts first, equal counts compare position by position using each
// value's own alphabet ranks. Pad symbols and line separators are skipped.
// It returns -1, 0 or +1.
//
// For values under one alphabet and without extra leading zero symbols this
// is numeric order.
func Compare(a, b *Value) int {
	da, db := a.dataSymbols(), b.dataSymbols()
	if len(da) != len(db) {
		if len(da) < len(db) {
			return -1
		}
		return 1
	}

	ca, cb := a.cfg(), b.cfg()
	for i := range da {
		ra, rb := rank(ca.Index(da[i])), rank(cb.Index(db[i]))
		if ra < rb {
			return -1
		}
		if ra > rb {
			return 1
		}
	}
	return 0
}

// Less reports whether v sorts before other.
func (v *Value) Less(other *Value) bool {
	return Compare(v, other) < 0
}

// rank sorts symbols missing from the alphabet below every symbol.
func rank(idx int, ok bool) int {
	if !ok {
		return -1
	}
	return idx
}
