package main

import (
	"fmt"
	"io"
	"os"

	"github.com/standardbeagle/b64x/internal/config"
	"github.com/standardbeagle/b64x/internal/debug"
	"github.com/standardbeagle/b64x/internal/version"
	"github.com/standardbeagle/b64x/pkg/alphabet"

	"github.com/urfave/cli/v2"
)

// sessionKey stores the loaded settings in cli.App.Metadata
const sessionKey = "session"

// session is the state every command shares once settings are loaded
type session struct {
	cfg      *config.Config
	registry *alphabet.Registry
	alphabet string // resolved name of the active alphabet
}

// loadSession loads settings, builds the registry and resolves --alphabet
func loadSession(c *cli.Context) (*session, error) {
	configPath := c.String("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", configPath, err)
	}

	validator := config.NewValidator()
	if err := validator.ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	registry, err := validator.BuildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.Defaults.Alphabet
	if flag := c.String("alphabet"); flag != "" {
		name = flag
	}
	if _, err := registry.Lookup(name); err != nil {
		return nil, err
	}

	debug.LogCLI("settings root %s, alphabet %s", cfg.Root, name)
	return &session{cfg: cfg, registry: registry, alphabet: alphabet.CanonicalName(name)}, nil
}

// sessionFrom returns the session prepared by the Before hook
func sessionFrom(c *cli.Context) *session {
	s, _ := c.App.Metadata[sessionKey].(*session)
	return s
}

// active returns the configuration selected by --alphabet or the settings default
func (s *session) active() *alphabet.Config {
	cfg, err := s.registry.Lookup(s.alphabet)
	if err != nil {
		return alphabet.Standard
	}
	return cfg
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "b64x",
		Usage:                  "Base64 encoding with configurable alphabets",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Metadata:               map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Settings file path (default: ~/" + config.FileName + " merged with ./" + config.FileName + ")",
			},
			&cli.StringFlag{
				Name:    "alphabet",
				Aliases: []string{"a"},
				Usage:   "Alphabet name (see 'b64x alphabets')",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Write debug logs to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"e"},
				Usage:     "Encode bytes from TEXT, --input or stdin",
				ArgsUsage: "[TEXT]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Read input from file",
					},
				},
				Action: encodeCommand,
			},
			{
				Name:      "decode",
				Aliases:   []string{"d"},
				Usage:     "Decode TEXT, --input or stdin to raw bytes",
				ArgsUsage: "[TEXT]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Read input from file",
					},
				},
				Action: decodeCommand,
			},
			{
				Name:      "uint",
				Usage:     "Encode an unsigned decimal integer up to 2^128-1",
				ArgsUsage: "VALUE",
				Action:    uintCommand,
			},
			{
				Name:      "to-uint",
				Usage:     "Decode TEXT to an unsigned decimal integer",
				ArgsUsage: "TEXT",
				Action:    toUintCommand,
			},
			{
				Name:  "random",
				Usage: "Generate a random value",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"n"},
						Usage:   "Number of data symbols",
						Value:   16,
					},
				},
				Action: randomCommand,
			},
			{
				Name:      "convert",
				Usage:     "Re-express TEXT in another alphabet",
				ArgsUsage: "TEXT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Target alphabet name",
						Required: true,
					},
				},
				Action: convertCommand,
			},
			{
				Name:      "resize",
				Usage:     "Expand or truncate TEXT to a number of data symbols",
				ArgsUsage: "TEXT",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "length",
						Aliases:  []string{"n"},
						Usage:    "Target number of data symbols",
						Required: true,
					},
				},
				Action: resizeCommand,
			},
			{
				Name:    "alphabets",
				Aliases: []string{"ls"},
				Usage:   "List registered alphabets",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json or compact",
						Value:   "text",
					},
					&cli.BoolFlag{
						Name:  "symbols",
						Usage: "Show the index to symbol table",
					},
				},
				Action: alphabetsCommand,
			},
			{
				Name:  "batch",
				Usage: "Encode every file matching a glob pattern",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "glob",
						Aliases:  []string{"g"},
						Usage:    "Doublestar pattern of input files (e.g., 'data/**/*.bin')",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: next to each input)",
					},
					&cli.StringSliceFlag{
						Name:  "exclude",
						Usage: "Skip files matching doublestar patterns (adds to the settings)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent files (0 = settings value)",
					},
				},
				Action: batchCommand,
			},
			{
				Name:  "version",
				Usage: "Show build information",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, version.FullInfo())
					return err
				},
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				debug.EnableDebug = "true"
				debug.SetDebugOutput(c.App.ErrWriter)
			}

			// Skip settings for help and version
			command := c.Args().Get(0)
			if c.NArg() == 0 || command == "help" || command == "h" || command == "version" {
				return nil
			}

			s, err := loadSession(c)
			if err != nil {
				return err
			}
			c.App.Metadata[sessionKey] = s
			return nil
		},
		After: func(c *cli.Context) error {
			_ = debug.Sync()
			return nil
		},
	}
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
