// Package pathutil converts between the paths a command is given and the
// paths it reports or writes.
//
// Batch runs expand a glob to absolute or cwd-relative input paths. Output
// files mirror each input's location below the glob's base directory, and
// user-facing output uses paths relative to that base for readability.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or path is already relative.
//
// Examples:
//   - ToRelative("/home/user/data/a/b.bin", "/home/user/data") → "a/b.bin"
//   - ToRelative("/other/location/c.bin", "/home/user/data") → "/other/location/c.bin" (outside root)
//   - ToRelative("a/b.bin", "/home/user/data") → "a/b.bin" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Different volumes on Windows
		return absPath
	}

	// Outside the root the absolute path is clearer
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return absPath
	}

	return relPath
}

// MirrorPath places path at the same location relative to rootDir below
// outDir. Paths that do not lie below rootDir keep only their base name.
// An empty outDir returns path unchanged.
func MirrorPath(path, rootDir, outDir string) string {
	if outDir == "" {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.Join(outDir, filepath.Base(path))
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return filepath.Join(outDir, filepath.Base(path))
	}

	rel := ToRelative(absPath, absRoot)
	if filepath.IsAbs(rel) || rel == "." {
		rel = filepath.Base(path)
	}
	return filepath.Join(outDir, rel)
}
