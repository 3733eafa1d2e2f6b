package alphabet

import "errors"

// Configuration errors. Validation wraps these with detail about the
// offending symbol, so callers should compare with errors.Is.
var (
	ErrCharacterSetLength          = errors.New("character set length isn't 64")
	ErrNotUniquePadding            = errors.New("padding character is already used in character set")
	ErrDuplicateCharacter          = errors.New("duplicate character found in character set")
	ErrCharacterSetUnrepresentable = errors.New("character set has an unrepresentable character")
	ErrPaddingUnrepresentable      = errors.New("padding is an unrepresentable character")

	// ErrReadOnly is returned by setters on the canonical configurations.
	ErrReadOnly = errors.New("configuration is read-only")
)

// Registry errors
var (
	ErrUnknownAlphabet = errors.New("unknown alphabet")
	ErrAlphabetExists  = errors.New("alphabet already registered")
	ErrEmptyName       = errors.New("alphabet name cannot be empty")
)
