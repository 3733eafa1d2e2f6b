// Package testhelpers provides shared utilities for testing b64x
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
)

// VerifyTestMain runs the package tests and fails the run if goroutines leak.
// Usage:
//
//	func TestMain(m *testing.M) {
//	    testhelpers.VerifyTestMain(m)
//	}
func VerifyTestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// AssertNoLeaks verifies no goroutine leaks occurred during the test
func AssertNoLeaks(t *testing.T) {
	t.Helper()

	// Ignore goroutines started by the test runtime
	ignore := goleak.IgnoreCurrent()

	if err := goleak.Find(ignore); err != nil {
		t.Errorf("Goroutine leak detected: %v", err)
	}
}

// SkipIfShort skips the test if -short flag is provided
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("Skipping in short mode: %s", reason)
	}
}

// SkipInCI skips the test if running in CI environment
func SkipInCI(t *testing.T, reason string) {
	t.Helper()
	if os.Getenv("CI") != "" {
		t.Skipf("Skipping in CI: %s", reason)
	}
}

// WriteFiles creates files under a fresh temporary directory and returns it.
// Keys are slash-separated paths relative to the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}
