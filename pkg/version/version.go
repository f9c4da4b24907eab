// Package version reports which meshidx build produced a set of index
// files. The visualizer pairs index files with vertex buffers laid out by
// the same release, so the build stamp goes into --debug logs and the
// version command.
package version

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Version is the meshidx release, stamped at link time with
//
//	-X github.com/Aman-CERP/meshidx/pkg/version.Version=$(VERSION)
var Version = "dev"

// IndexFormat is the revision of the index file layout: one record per
// line, triangle vertices separated by single spaces, no header. It changes
// only when files written by older builds can no longer be read.
const IndexFormat = 1

// Link-time build stamps.
var (
	Commit    = "unknown"
	Date      = "unknown" // RFC3339
	GoVersion = runtime.Version()
)

// BuildInfo is the version command's JSON shape.
type BuildInfo struct {
	Version     string `json:"version"`
	IndexFormat int    `json:"index_format"`
	Commit      string `json:"commit"`
	Date        string `json:"date"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
}

// String returns the one-line build description.
func String() string {
	return fmt.Sprintf("meshidx %s (index format %d, commit: %s, built: %s, go: %s)",
		Version, IndexFormat, Commit, Date, GoVersion)
}

// Short returns just the release.
func Short() string {
	return Version
}

// GetInfo returns the build stamps of the running binary.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:     Version,
		IndexFormat: IndexFormat,
		Commit:      Commit,
		Date:        Date,
		GoVersion:   GoVersion,
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
}

// LogAttrs returns the build stamps as slog attributes, for a group
// attached to the first record of a run.
func LogAttrs() []any {
	return []any{
		slog.String("version", Version),
		slog.Int("index_format", IndexFormat),
		slog.String("commit", Commit),
	}
}
