// Package release locates downloadable Nim artifacts. Given a requested
// version and a target platform it walks the distribution channels —
// official prebuilt binaries, nightly builds, source archives — under a
// tiered fallback policy and returns the first verified candidate.
package release

import (
	"fmt"

	"nimfox/internal/platform"
)

// Channel identifies which distribution tier produced an artifact.
type Channel string

const (
	ChannelOfficial       Channel = "official-binary"
	ChannelExactNightly   Channel = "exact-nightly"
	ChannelGenericNightly Channel = "generic-nightly"
	ChannelSource         Channel = "source"
)

// Artifact is the terminal output of a resolution: one downloadable URL
// plus a note explaining which channel produced it. The note is the only
// observable signal distinguishing fast-path from fallback outcomes.
type Artifact struct {
	Version string
	URL     string
	Note    string
	Channel Channel
}

// SourceArchive reports whether the artifact is a source tree that needs
// the build pipeline after download.
func (a Artifact) SourceArchive() bool {
	return a.Channel == ChannelSource
}

// Request carries the immutable inputs of one resolution.
type Request struct {
	Version  string
	Platform platform.Platform
	Strategy Strategy
}

// NoBinaryError is returned when the binary-only strategy exhausts every
// prebuilt channel. Its message carries the canonical phrase callers and
// hosts match on.
type NoBinaryError struct {
	Version  string
	Platform platform.Platform
	Strategy Strategy
}

func (e *NoBinaryError) Error() string {
	return fmt.Sprintf("no prebuilt binary available for nim %s on %s (install method %q forbids building from source)",
		e.Version, e.Platform, e.Strategy)
}

// Logger receives diagnostic output from the resolver.
type Logger interface {
	Printf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
