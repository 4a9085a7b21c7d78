// Package hooks exposes the version-manager hook surface: listing
// installable versions, resolving a download for a requested version,
// finishing an extracted install, and computing the environment an
// activated toolchain needs. Hosts and the bundled CLI both drive the
// plugin through these entry points.
package hooks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nimfox/internal/build"
	"nimfox/internal/config"
	"nimfox/internal/execx"
	"nimfox/internal/paths"
	"nimfox/internal/platform"
	"nimfox/internal/release"
)

// Logger receives diagnostic output from hook execution.
type Logger interface {
	Printf(format string, v ...any)
}

// Service carries the wiring every hook shares. Fields are exported so
// callers and tests can swap the resolver, runner, or platform.
type Service struct {
	Paths    paths.DataPaths
	Config   config.Config
	Platform platform.Platform
	Resolver *release.Resolver
	Runner   execx.Runner
	Logger   Logger
}

// NewService wires a hook service against the real network and host
// platform.
func NewService(p paths.DataPaths, cfg config.Config) *Service {
	timeout := time.Duration(cfg.Network.TimeoutSeconds) * time.Second
	return &Service{
		Paths:    p,
		Config:   cfg,
		Platform: platform.Host(),
		Resolver: release.NewResolver(p.CommitsFile, timeout),
		Runner:   execx.CmdRunner{},
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.Logger == nil {
		return
	}
	s.Logger.Printf(format, args...)
}

// AvailableInput bounds the Available listing.
type AvailableInput struct {
	Limit int
}

// AvailableVersion is one installable stable version.
type AvailableVersion struct {
	Version string
}

// AvailableResult is the Available hook output.
type AvailableResult struct {
	Versions []AvailableVersion
}

// Available lists installable stable versions, newest first. Listing is
// advisory: failures are logged and an empty result returned rather than
// raised.
func (s *Service) Available(ctx context.Context, in AvailableInput) AvailableResult {
	versions, err := s.Resolver.Available(ctx, in.Limit)
	if err != nil {
		s.logf("available listing failed: %v", err)
		return AvailableResult{}
	}
	out := make([]AvailableVersion, 0, len(versions))
	for _, v := range versions {
		out = append(out, AvailableVersion{Version: v})
	}
	return AvailableResult{Versions: out}
}

// PreInstallInput names the version to resolve.
type PreInstallInput struct {
	Version string
}

// PreInstallResult is the resolved download for a version.
type PreInstallResult struct {
	Version string
	URL     string
	Note    string
}

// PreInstall resolves the download URL for a requested version under the
// active install strategy. Strategy validation happens first, so a bad
// configured value fails before any network traffic.
func (s *Service) PreInstall(ctx context.Context, in PreInstallInput) (PreInstallResult, error) {
	if strings.TrimSpace(in.Version) == "" {
		return PreInstallResult{}, fmt.Errorf("no version requested")
	}
	strategy, err := release.ResolveStrategy(s.Config.InstallMethod)
	if err != nil {
		return PreInstallResult{}, err
	}

	art, err := s.Resolver.Resolve(ctx, release.Request{
		Version:  in.Version,
		Platform: s.Platform,
		Strategy: strategy,
	})
	if err != nil {
		return PreInstallResult{}, err
	}
	s.logf("resolved %s: %s (%s)", art.Version, art.URL, art.Channel)
	return PreInstallResult{Version: art.Version, URL: art.URL, Note: art.Note}, nil
}

// PostInstallInput names the extracted install root.
type PostInstallInput struct {
	Path string
}

// PostInstall finishes an extracted install: flatten the archive layout,
// build from source when no prebuilt compiler is present, and verify the
// result. The verification gate applies to binary installs too.
func (s *Service) PostInstall(ctx context.Context, in PostInstallInput) error {
	if in.Path == "" {
		return fmt.Errorf("install path required")
	}

	b := build.New(in.Path, s.Runner, s.Paths.LogsDir)
	b.Logger = s.Logger
	if err := b.Restructure(); err != nil {
		return err
	}
	if b.NeedsBuild() {
		s.logf("no prebuilt compiler in %s, running source pipeline", in.Path)
		if err := b.Run(ctx); err != nil {
			return err
		}
	}
	return b.Verify(ctx)
}
