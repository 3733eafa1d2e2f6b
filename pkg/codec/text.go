package codec

// MarshalText implements encoding.TextMarshaler.
func (v *Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is parsed as
// in SetString under the value's current config.
func (v *Value) UnmarshalText(text []byte) error {
	return v.SetString(string(text))
}
