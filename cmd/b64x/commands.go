package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/standardbeagle/b64x/internal/debug"
	"github.com/standardbeagle/b64x/internal/display"
	b64errors "github.com/standardbeagle/b64x/internal/errors"
	"github.com/standardbeagle/b64x/pkg/codec"

	"github.com/urfave/cli/v2"
	"lukechampine.com/uint128"
)

// stdinSource names input that came from arguments or stdin
const stdinSource = "-"

// readInput returns the --input file, the joined arguments or stdin, in
// that order of preference, together with a name for error messages.
func readInput(c *cli.Context) ([]byte, string, error) {
	if path := c.String("input"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, path, b64errors.NewFileError("read", path, err)
		}
		return data, path, nil
	}
	if c.NArg() > 0 {
		return []byte(strings.Join(c.Args().Slice(), " ")), stdinSource, nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return nil, stdinSource, b64errors.NewFileError("read", stdinSource, err)
	}
	return data, stdinSource, nil
}

// requireArg returns the single positional argument of a command
func requireArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("usage: b64x %s %s", c.Command.Name, name)
	}
	return c.Args().First(), nil
}

func codecError(s *session, op, source string, err error) error {
	return b64errors.NewCodecError(op, err).WithSource(source).WithAlphabet(s.alphabet)
}

func writeLine(c *cli.Context, v fmt.Stringer) error {
	_, err := fmt.Fprintln(c.App.Writer, v.String())
	return err
}

func encodeCommand(c *cli.Context) error {
	s := sessionFrom(c)
	data, source, err := readInput(c)
	if err != nil {
		return err
	}

	debug.LogCLI("encode %d bytes from %s", len(data), source)
	return writeLine(c, codec.NewFromBytes(data, s.active()))
}

func decodeCommand(c *cli.Context) error {
	s := sessionFrom(c)
	data, source, err := readInput(c)
	if err != nil {
		return err
	}

	v, err := codec.NewFromString(strings.TrimSpace(string(data)), s.active())
	if err != nil {
		return codecError(s, "decode", source, err)
	}
	out, err := v.DecodeBytes()
	if err != nil {
		return codecError(s, "decode", source, err)
	}

	debug.LogCLI("decoded %d symbols to %d bytes", v.Len(), len(out))
	_, err = c.App.Writer.Write(out)
	return err
}

func uintCommand(c *cli.Context) error {
	s := sessionFrom(c)
	arg, err := requireArg(c, "VALUE")
	if err != nil {
		return err
	}

	n, err := uint128.FromString(arg)
	if err != nil {
		return codecError(s, "uint", stdinSource, fmt.Errorf("invalid unsigned integer %q: %w", arg, err))
	}
	return writeLine(c, codec.NewFromUnsigned(n, s.active()))
}

func toUintCommand(c *cli.Context) error {
	s := sessionFrom(c)
	arg, err := requireArg(c, "TEXT")
	if err != nil {
		return err
	}

	v, err := codec.NewFromString(arg, s.active())
	if err != nil {
		return codecError(s, "to-uint", stdinSource, err)
	}
	n, err := v.DecodeUnsigned()
	if err != nil {
		return codecError(s, "to-uint", stdinSource, err)
	}
	_, err = fmt.Fprintln(c.App.Writer, n.String())
	return err
}

func randomCommand(c *cli.Context) error {
	s := sessionFrom(c)
	length := c.Int("length")
	if length < 0 {
		return fmt.Errorf("length cannot be negative, got %d", length)
	}
	return writeLine(c, codec.NewRandom(length, s.active(), nil))
}

func convertCommand(c *cli.Context) error {
	s := sessionFrom(c)
	arg, err := requireArg(c, "TEXT")
	if err != nil {
		return err
	}

	target, err := s.registry.Lookup(c.String("to"))
	if err != nil {
		return err
	}

	v, err := codec.NewFromString(arg, s.active())
	if err != nil {
		return codecError(s, "convert", stdinSource, err)
	}
	if err := v.Reconfigure(target); err != nil {
		return codecError(s, "convert", stdinSource, err)
	}

	debug.LogCLI("converted %s to %s", s.alphabet, c.String("to"))
	return writeLine(c, v)
}

func resizeCommand(c *cli.Context) error {
	s := sessionFrom(c)
	arg, err := requireArg(c, "TEXT")
	if err != nil {
		return err
	}

	length := c.Int("length")
	if length <= 0 {
		return errors.New("length must be positive")
	}

	v, err := codec.NewFromString(arg, s.active())
	if err != nil {
		return codecError(s, "resize", stdinSource, err)
	}
	// Only one of the two applies; the other is a no-op.
	v.ExpandTo(length)
	v.TruncateTo(length)
	return writeLine(c, v)
}

func alphabetsCommand(c *cli.Context) error {
	s := sessionFrom(c)

	format := c.String("format")
	switch format {
	case "text", "json", "compact":
	default:
		return fmt.Errorf("unknown format %q (expected text, json or compact)", format)
	}

	var entries []display.Entry
	for _, name := range s.registry.Names() {
		cfg, err := s.registry.Lookup(name)
		if err != nil {
			return err
		}
		entries = append(entries, display.Entry{Name: name, Config: cfg, Default: name == s.alphabet})
	}

	formatter := display.NewAlphabetFormatter(display.FormatterOptions{
		Format:      format,
		ShowSymbols: c.Bool("symbols"),
	})
	_, err := fmt.Fprintln(c.App.Writer, formatter.Format(entries))
	return err
}
