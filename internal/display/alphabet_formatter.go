package display

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/standardbeagle/b64x/pkg/alphabet"
)

// AlphabetFormatter formats alphabet listings for display
type AlphabetFormatter struct {
	options FormatterOptions
}

// FormatterOptions controls listing formatting
type FormatterOptions struct {
	Format      string // "text", "json", "compact"
	ShowSymbols bool   // Show the index to symbol table
	Columns     int    // Symbols per table row
	Indent      string // Indentation string
}

// Entry is one named alphabet in a listing
type Entry struct {
	Name    string
	Config  *alphabet.Config
	Default bool
}

// NewAlphabetFormatter creates a new alphabet formatter
func NewAlphabetFormatter(options FormatterOptions) *AlphabetFormatter {
	if options.Indent == "" {
		options.Indent = "  "
	}
	if options.Columns <= 0 {
		options.Columns = 8
	}
	return &AlphabetFormatter{options: options}
}

// Format formats the entries for display
func (af *AlphabetFormatter) Format(entries []Entry) string {
	if len(entries) == 0 {
		return "No alphabets registered"
	}

	switch af.options.Format {
	case "json":
		return af.formatJSON(entries)
	case "compact":
		return af.formatCompact(entries)
	default:
		return af.formatText(entries)
	}
}

// formatText formats one block per alphabet
func (af *AlphabetFormatter) formatText(entries []Entry) string {
	var sb strings.Builder

	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(e.Name)
		if e.Default {
			sb.WriteString(" (default)")
		}
		sb.WriteString("\n")

		fmt.Fprintf(&sb, "%spadding: %s\n", af.options.Indent, padLabel(e.Config))
		fmt.Fprintf(&sb, "%sline length: %s\n", af.options.Indent, lineLabel(e.Config))
		fmt.Fprintf(&sb, "%sfingerprint: %016x\n", af.options.Indent, e.Config.Fingerprint())
		if e.Config.ReadOnly() {
			fmt.Fprintf(&sb, "%sread-only\n", af.options.Indent)
		}

		if af.options.ShowSymbols {
			af.formatSymbols(&sb, e.Config)
		} else {
			fmt.Fprintf(&sb, "%ssymbols: %s\n", af.options.Indent, string(e.Config.Symbols()))
		}
	}

	return sb.String()
}

// formatSymbols writes the index to symbol table
func (af *AlphabetFormatter) formatSymbols(sb *strings.Builder, cfg *alphabet.Config) {
	for row := 0; row < alphabet.Size; row += af.options.Columns {
		sb.WriteString(af.options.Indent)
		for i := row; i < row+af.options.Columns && i < alphabet.Size; i++ {
			if i > row {
				sb.WriteString("  ")
			}
			fmt.Fprintf(sb, "%2d %c", i, cfg.Symbol(i))
		}
		sb.WriteString("\n")
	}
}

// formatCompact formats all names on one line, the default marked with '*'
func (af *AlphabetFormatter) formatCompact(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if e.Default {
			name += "*"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

type jsonEntry struct {
	Name        string `json:"name"`
	Symbols     string `json:"symbols"`
	Pad         string `json:"pad,omitempty"`
	LineLength  int    `json:"line_length,omitempty"`
	Fingerprint string `json:"fingerprint"`
	ReadOnly    bool   `json:"read_only"`
	Default     bool   `json:"default,omitempty"`
}

// formatJSON formats the entries as a JSON array
func (af *AlphabetFormatter) formatJSON(entries []Entry) string {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			Name:        e.Name,
			Symbols:     string(e.Config.Symbols()),
			LineLength:  e.Config.LineLength(),
			Fingerprint: fmt.Sprintf("%016x", e.Config.Fingerprint()),
			ReadOnly:    e.Config.ReadOnly(),
			Default:     e.Default,
		}
		if pad, ok := e.Config.Pad(); ok {
			je.Pad = string(pad)
		}
		out = append(out, je)
	}

	data, err := json.MarshalIndent(out, "", af.options.Indent)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

func padLabel(cfg *alphabet.Config) string {
	if pad, ok := cfg.Pad(); ok {
		return strconv.QuoteRune(pad)
	}
	return "none"
}

func lineLabel(cfg *alphabet.Config) string {
	if n := cfg.LineLength(); n != alphabet.NoLineLimit {
		return strconv.Itoa(n)
	}
	return "unlimited"
}
