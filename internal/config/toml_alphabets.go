package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// alphabetFile is the layout of a TOML alphabet file:
//
//	[[alphabet]]
//	name = "emoji"
//	symbols = "..."
//	pad = "⋔"
//	line_length = 6
type alphabetFile struct {
	Alphabets []AlphabetDef `toml:"alphabet"`
}

// LoadAlphabetFile reads the alphabet definitions in a TOML file.
func LoadAlphabetFile(path string) ([]AlphabetDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alphabet file: %w", err)
	}

	defs, err := parseAlphabetTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range defs {
		defs[i].Source = path
	}
	return defs, nil
}

func parseAlphabetTOML(data []byte) ([]AlphabetDef, error) {
	var file alphabetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML alphabets: %w", err)
	}
	return file.Alphabets, nil
}

// MarshalAlphabets renders definitions in the TOML alphabet file layout.
func MarshalAlphabets(defs []AlphabetDef) ([]byte, error) {
	return toml.Marshal(alphabetFile{Alphabets: defs})
}
