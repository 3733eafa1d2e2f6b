package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
	"github.com/standardbeagle/b64x/internal/debug"
)

// LoadKDL attempts to load configuration from the .b64x.kdl file in dir.
// It returns nil without error when the file does not exist.
func LoadKDL(dir string) (*Config, error) {
	kdlPath := filepath.Join(dir, FileName)

	// Check if .b64x.kdl exists
	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil // No KDL config found, use defaults
	}

	cfg, err := LoadFile(kdlPath)
	if err != nil {
		return nil, err
	}
	cfg.Root = absOrSelf(dir)
	return cfg, nil
}

// LoadFile parses one settings file. Relative alphabet file paths are
// resolved against the directory holding the file.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.Root == "" {
		cfg.Root = absOrSelf(dir)
	}
	for i, f := range cfg.AlphabetFiles {
		if !filepath.IsAbs(f) {
			cfg.AlphabetFiles[i] = filepath.Join(dir, f)
		}
	}
	for i := range cfg.Alphabets {
		cfg.Alphabets[i].Source = path
	}
	return cfg, nil
}

// Simple KDL parser for b64x settings
//
//	defaults { alphabet "mime" }
//	alphabet "emoji" { symbols "..."; pad "⋔"; line_length 6 }
//	alphabets_file "alphabets.toml"
//	batch { exclude "**/*.b64"; out_dir "encoded"; extension ".b64"; workers 4 }
func parseKDL(content string) (*Config, error) {
	cfg := &Config{Version: 1}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "defaults":
			for _, cn := range n.Children {
				assignSimpleString(cn, "alphabet", func(v string) { cfg.Defaults.Alphabet = v })
			}
		case "alphabet":
			def, err := parseAlphabetNode(n)
			if err != nil {
				return nil, err
			}
			cfg.Alphabets = append(cfg.Alphabets, def)
		case "alphabets_file":
			cfg.AlphabetFiles = append(cfg.AlphabetFiles, collectStringArgs(n)...)
		case "batch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "exclude":
					cfg.Batch.Exclude = append(cfg.Batch.Exclude, collectStringArgs(cn)...)
				case "out_dir":
					assignSimpleString(cn, "out_dir", func(v string) { cfg.Batch.OutDir = v })
				case "extension":
					assignSimpleString(cn, "extension", func(v string) { cfg.Batch.Extension = v })
				case "workers":
					if v, ok := firstIntArg(cn); ok {
						cfg.Batch.Workers = v
					}
				}
			}
		default:
			debug.LogConfig("ignoring unknown settings node %q", nodeName(n))
		}
	}

	return cfg, nil
}

func parseAlphabetNode(n *document.Node) (AlphabetDef, error) {
	name, ok := firstStringArg(n)
	if !ok || strings.TrimSpace(name) == "" {
		return AlphabetDef{}, fmt.Errorf("alphabet node needs a name argument")
	}

	def := AlphabetDef{Name: name}
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "symbols":
			def.Symbols = strings.Join(collectStringArgs(cn), "")
		case "pad":
			// pad null and pad "none" both disable padding
			if len(cn.Arguments) > 0 && cn.Arguments[0].Value == nil {
				def.Pad = "none"
			} else {
				assignSimpleString(cn, "pad", func(v string) { def.Pad = v })
			}
		case "line_length":
			if v, ok := firstIntArg(cn); ok {
				def.LineLength = v
			}
		}
	}
	return def, nil
}

// Helper functions over the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}
func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	// First try to collect from arguments (for inline format)
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// If no arguments, collect from children (for block format like exclude { "pattern" })
	// In KDL block format, strings are child nodes where the node name is the string value
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
