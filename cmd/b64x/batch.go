package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/standardbeagle/b64x/internal/config"
	"github.com/standardbeagle/b64x/internal/debug"
	b64errors "github.com/standardbeagle/b64x/internal/errors"
	"github.com/standardbeagle/b64x/pkg/alphabet"
	"github.com/standardbeagle/b64x/pkg/codec"
	"github.com/standardbeagle/b64x/pkg/pathutil"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// batchJob encodes a set of files with one alphabet
type batchJob struct {
	alphabet  *alphabet.Config
	name      string
	root      string // directory the glob is anchored at
	outDir    string
	extension string
	workers   int
}

// batchResult reports what a batch run did
type batchResult struct {
	Encoded []string // output paths
	Skipped []string // matches removed by exclude patterns
}

func batchCommand(c *cli.Context) error {
	s := sessionFrom(c)

	batch := s.cfg.Batch
	batch.Exclude = append(append([]string(nil), batch.Exclude...), c.StringSlice("exclude")...)
	if out := c.String("out"); out != "" {
		batch.OutDir = out
	}
	if workers := c.Int("workers"); workers > 0 {
		batch.Workers = workers
	}

	files, skipped, err := matchFiles(c.String("glob"), batch.Exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %q", c.String("glob"))
	}
	debug.LogCLI("batch: %d files, %d excluded", len(files), len(skipped))

	job := &batchJob{
		alphabet:  s.active(),
		name:      s.alphabet,
		root:      globRoot(c.String("glob")),
		outDir:    batch.OutDir,
		extension: batch.Extension,
		workers:   batch.Workers,
	}
	result, err := job.run(c.Context, files)
	result.Skipped = skipped

	for _, path := range result.Encoded {
		fmt.Fprintln(c.App.Writer, path)
	}
	return err
}

// matchFiles expands pattern to regular files and drops those matching any
// exclude pattern.
func matchFiles(pattern string, exclude []string) ([]string, []string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files, skipped []string
	for _, path := range matches {
		if excluded(path, exclude) {
			skipped = append(skipped, path)
			continue
		}
		files = append(files, path)
	}
	return files, skipped, nil
}

// globRoot returns the directory part of pattern that holds no glob syntax
func globRoot(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

func excluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		// Patterns without a directory part also match the base name
		if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// run encodes every file. A failed file does not stop the others; all
// failures are returned together in a MultiError.
func (j *batchJob) run(ctx context.Context, files []string) (*batchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if j.outDir != "" {
		if err := os.MkdirAll(j.outDir, 0o755); err != nil {
			return &batchResult{}, b64errors.NewFileError("mkdir", j.outDir, err)
		}
	}

	var (
		mu      sync.Mutex
		errs    []error
		encoded = make([]string, len(files))
	)

	g, gctx := errgroup.WithContext(ctx)
	workers := j.workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := j.encodeFile(path)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			encoded[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	result := &batchResult{}
	for _, out := range encoded {
		if out != "" {
			result.Encoded = append(result.Encoded, out)
		}
	}
	return result, b64errors.NewMultiError(errs).ErrorOrNil()
}

// encodeFile writes the encoding of path and returns the output path
func (j *batchJob) encodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", b64errors.NewFileError("read", path, err)
	}

	v := codec.NewFromBytes(data, j.alphabet)
	out := j.outputPath(path)
	if j.outDir != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return "", b64errors.NewFileError("mkdir", filepath.Dir(out), err)
		}
	}
	if err := os.WriteFile(out, []byte(v.String()+"\n"), 0o644); err != nil {
		return "", b64errors.NewCodecError("encode", b64errors.NewFileError("write", out, err)).
			WithSource(path).WithAlphabet(j.name)
	}

	debug.LogCLI("encoded %s -> %s (%d symbols)", path, out, v.Len())
	return out, nil
}

func (j *batchJob) outputPath(path string) string {
	ext := j.extension
	if ext == "" {
		ext = config.DefaultExtension
	}
	return pathutil.MirrorPath(path, j.root, j.outDir) + ext
}
