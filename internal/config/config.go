package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/standardbeagle/b64x/internal/debug"
	"github.com/standardbeagle/b64x/pkg/alphabet"
)

// FileName is the settings file looked up in the home and project directories
const FileName = ".b64x.kdl"

// Defaults applied when the settings leave a value unset
const (
	DefaultAlphabet  = alphabet.NameStandard
	DefaultExtension = ".b64"
)

type Config struct {
	Version       int
	Root          string // directory the settings were loaded for
	Defaults      Defaults
	Alphabets     []AlphabetDef
	AlphabetFiles []string // TOML files with more alphabet definitions
	Batch         Batch
}

type Defaults struct {
	Alphabet string // registry name used when --alphabet is not given
}

// AlphabetDef is a custom alphabet as written in a settings or TOML file
type AlphabetDef struct {
	Name       string `toml:"name"`
	Symbols    string `toml:"symbols"`
	Pad        string `toml:"pad"` // "" or "none" disables padding
	LineLength int    `toml:"line_length"`
	Source     string `toml:"-"` // file the definition came from
}

type Batch struct {
	Exclude   []string // doublestar patterns skipped by the batch command
	OutDir    string   // "" writes next to the input
	Extension string
	Workers   int
}

// Load reads settings for the current directory.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

// LoadWithRoot reads settings. An explicit path is loaded on its own;
// otherwise the global ~/.b64x.kdl is merged under rootDir/.b64x.kdl.
// Missing files yield the defaults.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	if path != "" {
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		debug.LogConfig("loaded settings from %s", path)
		return applyDefaults(cfg), nil
	}

	// Determine search directory for config files
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	// Step 1: Load global base config from ~/.b64x.kdl (if exists)
	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			debug.LogConfig("loaded global settings from %s", homeDir)
			baseConfig = globalCfg
		}
	}

	// Step 2: Load project-specific config from project directory
	projectConfig, err := LoadKDL(searchDir)
	if err != nil {
		return nil, err
	}

	// Step 3: Merge configs (project overrides base, alphabets and exclusions accumulate)
	switch {
	case baseConfig != nil && projectConfig != nil:
		return applyDefaults(mergeConfigs(baseConfig, projectConfig)), nil
	case projectConfig != nil:
		return applyDefaults(projectConfig), nil
	case baseConfig != nil:
		baseConfig.Root = absOrSelf(searchDir)
		return applyDefaults(baseConfig), nil
	}

	return applyDefaults(&Config{Version: 1, Root: absOrSelf(searchDir)}), nil
}

// applyDefaults fills every value the settings left unset
func applyDefaults(cfg *Config) *Config {
	if cfg.Defaults.Alphabet == "" {
		cfg.Defaults.Alphabet = DefaultAlphabet
	}
	if cfg.Batch.Extension == "" {
		cfg.Batch.Extension = DefaultExtension
	}
	if cfg.Batch.Workers <= 0 {
		cfg.Batch.Workers = runtime.NumCPU()
	}
	return cfg
}

// mergeConfigs merges a base config with a project config.
// Values set in the project take precedence; alphabets, alphabet files and
// exclusions from both are kept.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if merged.Defaults.Alphabet == "" {
		merged.Defaults.Alphabet = base.Defaults.Alphabet
	}
	if merged.Batch.OutDir == "" {
		merged.Batch.OutDir = base.Batch.OutDir
	}
	if merged.Batch.Extension == "" {
		merged.Batch.Extension = base.Batch.Extension
	}
	if merged.Batch.Workers == 0 {
		merged.Batch.Workers = base.Batch.Workers
	}

	// Base alphabets first so a project redefinition is reported as a duplicate
	merged.Alphabets = append(append([]AlphabetDef(nil), base.Alphabets...), project.Alphabets...)
	merged.AlphabetFiles = dedupe(append(append([]string(nil), base.AlphabetFiles...), project.AlphabetFiles...))
	merged.Batch.Exclude = dedupe(append(append([]string(nil), base.Batch.Exclude...), project.Batch.Exclude...))

	return &merged
}

// dedupe removes repeated entries, keeping the first occurrence
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
