package version

import (
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Version information for b64x
const (
	// Version is the current semantic version of b64x
	Version = "0.3.0"
)

// Set during build time (use -ldflags "-X .../internal/version.GitCommit=...")
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns version information as a string
func Info() string {
	return Version
}

// FullInfo returns detailed version information
func FullInfo() string {
	return "b64x " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ", build: " + BuildID() + ")"
}

var (
	buildID     string
	buildIDOnce sync.Once
)

// BuildID returns a fingerprint of the current binary build.
// It hashes the Go version, module path/version and VCS build settings.
func BuildID() string {
	buildIDOnce.Do(func() {
		buildID = computeBuildID()
	})
	return buildID
}

func computeBuildID() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version + "-" + GitCommit
	}

	h := xxhash.New()
	_, _ = h.WriteString(info.GoVersion)
	_, _ = h.WriteString(info.Main.Path)
	_, _ = h.WriteString(info.Main.Version)

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.modified", "vcs.time":
			_, _ = h.WriteString(s.Key)
			_, _ = h.WriteString(s.Value)
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
