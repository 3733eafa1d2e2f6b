package alphabet

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hbollon/go-edlib"
	"github.com/standardbeagle/b64x/internal/debug"
)

// Names of the canonical configurations in a new Registry
const (
	NameStandard         = "standard"
	NameMIME             = "mime"
	NameIMAP             = "imap"
	NameURLSafe          = "url"
	NameURLSafeNoPadding = "url-nopad"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion
const maxSuggestDistance = 3

// aliases maps common spellings onto canonical names
var aliases = map[string]string{
	"base64":        NameStandard,
	"std":           NameStandard,
	"rfc4648":       NameStandard,
	"rfc2045":       NameMIME,
	"rfc3501":       NameIMAP,
	"urlsafe":       NameURLSafe,
	"url-safe":      NameURLSafe,
	"base64url":     NameURLSafe,
	"url-nopadding": NameURLSafeNoPadding,
	"raw-url":       NameURLSafeNoPadding,
}

// Registry maps names to configurations. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*Config
}

// NewRegistry returns a registry holding the canonical configurations.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]*Config)}
	r.configs[NameStandard] = Standard
	r.configs[NameMIME] = MIME
	r.configs[NameIMAP] = IMAP
	r.configs[NameURLSafe] = URLSafe
	r.configs[NameURLSafeNoPadding] = URLSafeNoPadding
	return r
}

// NormalizeName lower-cases and trims an alphabet name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CanonicalName normalizes name and resolves the built-in aliases.
func CanonicalName(name string) string {
	key := NormalizeName(name)
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// Register adds cfg under name. Names are case-insensitive and cannot be
// replaced once registered.
func (r *Registry) Register(name string, cfg *Config) error {
	key := NormalizeName(name)
	if key == "" {
		return ErrEmptyName
	}
	if cfg == nil {
		return fmt.Errorf("alphabet %q: nil configuration", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlphabetExists, key)
	}
	if _, ok := aliases[key]; ok {
		return fmt.Errorf("%w: %s (alias)", ErrAlphabetExists, key)
	}
	if existing := r.findByFingerprintLocked(cfg.Fingerprint()); existing != "" {
		debug.LogRegistry("%s has the same configuration as %s", key, existing)
	}

	r.configs[key] = cfg
	debug.LogRegistry("registered %s (%d symbols, padding=%t, line length %d)",
		key, Size, cfg.HasPadding(), cfg.LineLength())
	return nil
}

// Lookup returns the configuration registered under name or one of its
// aliases. Unknown names return ErrUnknownAlphabet, with a suggestion when a
// registered name is close.
func (r *Registry) Lookup(name string) (*Config, error) {
	key := CanonicalName(name)

	r.mu.RLock()
	cfg, ok := r.configs[key]
	r.mu.RUnlock()
	if ok {
		return cfg, nil
	}

	if suggestion := r.Suggest(key); suggestion != "" {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownAlphabet, name, suggestion)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlphabet, name)
}

// Suggest returns the registered name closest to name, or "" when nothing is
// within a small edit distance.
func (r *Registry) Suggest(name string) string {
	key := NormalizeName(name)
	if key == "" {
		return ""
	}

	bestMatch := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range r.Names() {
		distance := edlib.LevenshteinDistance(key, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = candidate
		}
	}
	return bestMatch
}

// Names returns the registered names in sorted order. Aliases are not listed.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// FindByFingerprint returns the first name, in sorted order, whose
// configuration has the given fingerprint.
func (r *Registry) FindByFingerprint(fp uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name := r.findByFingerprintLocked(fp)
	return name, name != ""
}

// Identify returns the registered name of a configuration equal to cfg.
func (r *Registry) Identify(cfg *Config) (string, bool) {
	if cfg == nil {
		return "", false
	}
	name, ok := r.FindByFingerprint(cfg.Fingerprint())
	if !ok {
		return "", false
	}
	r.mu.RLock()
	match := r.configs[name]
	r.mu.RUnlock()
	if !match.Equal(cfg) {
		return "", false
	}
	return name, true
}

func (r *Registry) findByFingerprintLocked(fp uint64) string {
	var matches []string
	for name, cfg := range r.configs {
		if cfg.Fingerprint() == fp {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}
