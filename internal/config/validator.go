package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/standardbeagle/b64x/internal/debug"
	b64errors "github.com/standardbeagle/b64x/internal/errors"
	"github.com/standardbeagle/b64x/pkg/alphabet"
)

// Validator validates configuration, sets defaults and builds the alphabet
// registry
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies defaults
// Returns an error if validation fails
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	applyDefaults(cfg)

	if err := v.validateBatchConfig(&cfg.Batch); err != nil {
		return b64errors.NewConfigError("batch", "", err)
	}

	for _, def := range cfg.Alphabets {
		if _, err := v.buildAlphabet(def); err != nil {
			return b64errors.NewConfigError("alphabet", def.Name, err)
		}
	}

	return nil
}

// validateBatchConfig validates batch configuration
func (v *Validator) validateBatchConfig(batch *Batch) error {
	if batch.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", batch.Workers)
	}

	if !strings.HasPrefix(batch.Extension, ".") {
		return fmt.Errorf("extension must start with '.', got %q", batch.Extension)
	}

	for _, pattern := range batch.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// BuildRegistry returns a registry holding the canonical alphabets, every
// alphabet defined in the settings and every alphabet from the settings'
// alphabet files. All invalid definitions are reported together. The default
// alphabet must resolve in the result.
func (v *Validator) BuildRegistry(cfg *Config) (*alphabet.Registry, error) {
	registry := alphabet.NewRegistry()
	var errs []error

	defs := append([]AlphabetDef(nil), cfg.Alphabets...)
	for _, path := range cfg.AlphabetFiles {
		fileDefs, err := LoadAlphabetFile(path)
		if err != nil {
			errs = append(errs, b64errors.NewConfigError("alphabets_file", path, err))
			continue
		}
		defs = append(defs, fileDefs...)
	}

	for _, def := range defs {
		alpha, err := v.buildAlphabet(def)
		if err == nil {
			err = registry.Register(def.Name, alpha)
		}
		if err != nil {
			errs = append(errs, b64errors.NewConfigError("alphabet", def.Name, withSource(def, err)))
			continue
		}
		debug.LogConfig("alphabet %s from %s", def.Name, def.Source)
	}

	if name := cfg.Defaults.Alphabet; name != "" {
		if _, err := registry.Lookup(name); err != nil {
			errs = append(errs, b64errors.NewConfigError("defaults.alphabet", name, err))
		}
	}

	if err := b64errors.NewMultiError(errs).ErrorOrNil(); err != nil {
		return nil, err
	}
	return registry, nil
}

// buildAlphabet turns a definition into a validated configuration
func (v *Validator) buildAlphabet(def AlphabetDef) (*alphabet.Config, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, alphabet.ErrEmptyName
	}

	pad, err := ParsePad(def.Pad)
	if err != nil {
		return nil, err
	}
	return alphabet.FromString(def.Symbols, pad, def.LineLength)
}

// ParsePad converts a pad setting to a rune. "" and "none" disable padding;
// anything else must be exactly one character.
func ParsePad(s string) (rune, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return alphabet.NoPadding, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("pad must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func withSource(def AlphabetDef, err error) error {
	if def.Source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", def.Source, err)
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
