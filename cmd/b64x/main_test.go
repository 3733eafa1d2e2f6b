package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/standardbeagle/b64x/internal/debug"
	b64errors "github.com/standardbeagle/b64x/internal/errors"
	"github.com/standardbeagle/b64x/internal/version"
	"github.com/standardbeagle/b64x/pkg/alphabet"
	"github.com/standardbeagle/b64x/pkg/codec"
	"github.com/standardbeagle/b64x/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testhelpers.VerifyTestMain(m)
}

// runCLI runs the app in-process with an isolated home directory
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := newApp(strings.NewReader(stdin), &stdout, &stderr)
	err := app.Run(append([]string{"b64x"}, args...))
	return stdout.String(), stderr.String(), err
}

const customSettings = `
defaults {
    alphabet "dotted"
}
alphabet "dotted" {
    symbols "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
    pad "."
    line_length 8
}
`

func TestEncodeDecode(t *testing.T) {
	out, _, err := runCLI(t, "", "encode", "hello")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", out)

	out, _, err = runCLI(t, "", "decode", "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	out, _, err = runCLI(t, "hello", "encode")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", out, "stdin input")

	out, _, err = runCLI(t, "aGVsbG8=\n", "decode")
	require.NoError(t, err)
	assert.Equal(t, "hello", out, "trailing newline on stdin")
}

func TestEncode_InputFile(t *testing.T) {
	dir := testhelpers.WriteFiles(t, map[string]string{"in.txt": "hello world!"})

	out, _, err := runCLI(t, "", "--alphabet", "url-nopad", "encode", "--input", filepath.Join(dir, "in.txt"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8gd29ybGQh\n", out)

	_, _, err = runCLI(t, "", "encode", "--input", filepath.Join(dir, "missing.txt"))
	var fileErr *b64errors.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, b64errors.ErrorTypeFileNotFound, fileErr.Type)
}

func TestDecode_InvalidCharacter(t *testing.T) {
	_, _, err := runCLI(t, "", "decode", "ab*d")
	require.ErrorIs(t, err, codec.ErrInvalidCharacter)

	var codecErr *b64errors.CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, b64errors.ErrorTypeDecode, codecErr.Type)
	assert.Equal(t, "standard", codecErr.Alphabet)
}

func TestUint(t *testing.T) {
	out, _, err := runCLI(t, "", "uint", "65538")
	require.NoError(t, err)
	assert.Equal(t, "QAC=\n", out)

	out, _, err = runCLI(t, "", "-a", "url-nopad", "uint", "65538")
	require.NoError(t, err)
	assert.Equal(t, "QAC\n", out)

	out, _, err = runCLI(t, "", "uint", "340282366920938463463374607431768211455")
	require.NoError(t, err)
	assert.Equal(t, "D"+strings.Repeat("/", 21)+"==\n", out)

	_, _, err = runCLI(t, "", "uint", "340282366920938463463374607431768211456")
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "uint", "12abc")
	assert.Error(t, err)

	_, _, err = runCLI(t, "", "uint")
	assert.ErrorContains(t, err, "usage: b64x uint VALUE")
}

func TestToUint(t *testing.T) {
	out, _, err := runCLI(t, "", "-a", "url-nopad", "to-uint", "QAC")
	require.NoError(t, err)
	assert.Equal(t, "65538\n", out)

	out, _, err = runCLI(t, "", "to-uint", "QAC=")
	require.NoError(t, err)
	assert.Equal(t, "65538\n", out)

	_, _, err = runCLI(t, "", "-a", "url-nopad", "to-uint", "E"+strings.Repeat("A", 21))
	assert.ErrorIs(t, err, codec.ErrOverflow)
}

func TestRandom(t *testing.T) {
	out, _, err := runCLI(t, "", "-a", "url-nopad", "random", "--length", "10")
	require.NoError(t, err)
	text := strings.TrimSuffix(out, "\n")
	require.Len(t, text, 10)
	for _, r := range text {
		assert.True(t, alphabet.URLSafeNoPadding.Contains(r), "%q", r)
	}

	out, _, err = runCLI(t, "", "random", "-n", "10")
	require.NoError(t, err)
	assert.Len(t, out, 13)
	assert.True(t, strings.HasSuffix(out, "==\n"))

	_, _, err = runCLI(t, "", "random", "--length", "-1")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", "--to", "url", "+/8=")
	require.NoError(t, err)
	assert.Equal(t, "-_8=\n", out)

	out, _, err = runCLI(t, "", "convert", "--to", "raw-url", "+/8=")
	require.NoError(t, err)
	assert.Equal(t, "-_8\n", out)

	_, _, err = runCLI(t, "", "convert", "--to", "nope", "AAAA")
	assert.ErrorIs(t, err, alphabet.ErrUnknownAlphabet)
}

func TestResize(t *testing.T) {
	out, _, err := runCLI(t, "", "-a", "url-nopad", "resize", "--length", "6", "QAC")
	require.NoError(t, err)
	assert.Equal(t, "AAAQAC\n", out)

	out, _, err = runCLI(t, "", "-a", "url-nopad", "resize", "-n", "2", "QAC")
	require.NoError(t, err)
	assert.Equal(t, "AC\n", out)

	out, _, err = runCLI(t, "", "resize", "-n", "5", "QAC=")
	require.NoError(t, err)
	assert.Equal(t, "AAQAC===\n", out)

	_, _, err = runCLI(t, "", "resize", "-n", "0", "QAC=")
	assert.Error(t, err)
}

func TestAlphabets(t *testing.T) {
	out, _, err := runCLI(t, "", "alphabets", "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "imap mime standard* url url-nopad\n", out)

	out, _, err = runCLI(t, "", "-a", "base64url", "alphabets", "-f", "compact")
	require.NoError(t, err)
	assert.Equal(t, "imap mime standard url* url-nopad\n", out, "aliases resolve to the registered name")

	out, _, err = runCLI(t, "", "alphabets")
	require.NoError(t, err)
	assert.Contains(t, out, "standard (default)")
	assert.Contains(t, out, "line length: 76")

	_, _, err = runCLI(t, "", "alphabets", "--format", "yaml")
	assert.Error(t, err)
}

func TestCustomSettings(t *testing.T) {
	dir := testhelpers.WriteFiles(t, map[string]string{"b64x.kdl": customSettings})
	settings := filepath.Join(dir, "b64x.kdl")

	out, _, err := runCLI(t, "", "--config", settings, "encode", "hello world!")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8g\nd29ybGQh\n", out)

	out, _, err = runCLI(t, "", "--config", settings, "encode", "hi")
	require.NoError(t, err)
	assert.Equal(t, "aGk.\n", out)

	out, _, err = runCLI(t, "", "--config", settings, "alphabets", "--format", "compact")
	require.NoError(t, err)
	assert.Equal(t, "dotted* imap mime standard url url-nopad\n", out)
}

func TestUnknownAlphabet(t *testing.T) {
	_, _, err := runCLI(t, "", "--alphabet", "mimee", "encode", "x")
	require.ErrorIs(t, err, alphabet.ErrUnknownAlphabet)
	assert.Contains(t, err.Error(), `did you mean "mime"?`)
}

func TestBatch(t *testing.T) {
	dir := testhelpers.WriteFiles(t, map[string]string{
		"a.bin":     "hello",
		"sub/b.bin": "hi",
		"c.skip":    "ignored",
	})

	out, _, err := runCLI(t, "", "batch", "--glob", filepath.Join(dir, "**", "*.bin"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	data, err := os.ReadFile(filepath.Join(dir, "a.bin.b64"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "sub", "b.bin.b64"))
	require.NoError(t, err)
	assert.Equal(t, "aGk=\n", string(data))

	assert.NoFileExists(t, filepath.Join(dir, "c.skip.b64"))
}

func TestBatch_OutDirAndExclude(t *testing.T) {
	dir := testhelpers.WriteFiles(t, map[string]string{
		"in/a.bin":     "hello",
		"in/b.skip":    "ignored",
		"in/sub/c.bin": "hi",
	})
	outDir := filepath.Join(dir, "out")

	_, _, err := runCLI(t, "", "-a", "url-nopad", "batch",
		"--glob", filepath.Join(dir, "in", "**"),
		"--out", outDir,
		"--exclude", "*.skip",
		"--workers", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "a.bin.b64"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8\n", string(data))
	assert.NoFileExists(t, filepath.Join(outDir, "b.skip.b64"))

	data, err = os.ReadFile(filepath.Join(outDir, "sub", "c.bin.b64"))
	require.NoError(t, err)
	assert.Equal(t, "aGk\n", string(data))
}

func TestBatch_AggregatesErrors(t *testing.T) {
	dir := testhelpers.WriteFiles(t, map[string]string{
		"a.bin": "hello",
		"b.bin": "hi",
		"c.bin": "abc",
	})
	// Directories in place of two outputs make their writes fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.bin.b64"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.bin.b64"), 0o755))

	out, _, err := runCLI(t, "", "batch", "--glob", filepath.Join(dir, "*.bin"))
	require.Error(t, err)

	var multi *b64errors.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi.Errors, 2)

	var codecErr *b64errors.CodecError
	require.ErrorAs(t, multi.Errors[0], &codecErr)
	assert.Equal(t, "standard", codecErr.Alphabet)

	assert.Equal(t, filepath.Join(dir, "b.bin.b64")+"\n", out)
}

func TestBatch_NoMatches(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "", "batch", "--glob", filepath.Join(dir, "*.bin"))
	assert.ErrorContains(t, err, "no files match")
}

func TestDebugFlag(t *testing.T) {
	oldEnable := debug.EnableDebug
	t.Cleanup(func() {
		debug.EnableDebug = oldEnable
		debug.SetDebugOutput(nil)
	})

	_, stderr, err := runCLI(t, "", "--debug", "encode", "hi")
	require.NoError(t, err)
	assert.Contains(t, stderr, "CLI")
	assert.Contains(t, stderr, "encode 2 bytes")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "b64x "+version.Version))
}
