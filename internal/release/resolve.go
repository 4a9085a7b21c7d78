package release

import (
	"context"
	"fmt"
	"time"

	"nimfox/internal/platform"
	ver "nimfox/internal/version"
)

// Resolver walks the distribution channels for a requested version under
// the active install strategy. All channel lookups are read-only; the
// resolver never touches the filesystem beyond the commit cache.
type Resolver struct {
	GitHub  *GitHubClient
	Prober  Prober
	Commits *CommitCache
	Logger  Logger
}

// NewResolver wires a resolver against the public endpoints. commitsFile
// may be empty to run without the commit cache; timeout bounds every
// probe and API request.
func NewResolver(commitsFile string, timeout time.Duration) *Resolver {
	r := &Resolver{
		GitHub: NewGitHubClient(timeout),
		Prober: NewHeadProber(timeout),
	}
	if commitsFile != "" {
		r.Commits = &CommitCache{Path: commitsFile}
	}
	return r
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logger == nil {
		return
	}
	r.Logger.Printf(format, args...)
}

// Resolve walks the channels in the order the strategy dictates and
// returns the first artifact that checks out. Under the source strategy
// no binary channel is consulted at all. Under auto, binary channels are
// tried first and source is the fallback. Under binary, exhausting the
// prebuilt channels is a hard failure. Channel errors — network trouble,
// API refusals — demote the channel to "nothing available" and the walk
// continues.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Artifact, error) {
	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyAuto
	}
	spec := ver.Parse(req.Version)

	if strategy == StrategySource {
		return r.sourceArtifact(req, spec), nil
	}

	if art := r.officialBinary(ctx, spec, req.Platform); art != nil {
		art.Version = req.Version
		return *art, nil
	}

	var (
		art *Artifact
		err error
	)
	if spec.Kind == ver.KindStable {
		art, err = r.exactNightly(ctx, spec.Raw, req.Platform)
	} else {
		art, err = r.genericNightly(ctx, refOf(spec), req.Platform)
	}
	if err != nil {
		r.logf("nightly channel unavailable: %v", err)
	} else if art != nil {
		art.Version = req.Version
		return *art, nil
	}

	if strategy == StrategyBinary {
		return Artifact{}, &NoBinaryError{Version: req.Version, Platform: req.Platform, Strategy: strategy}
	}
	return r.sourceArtifact(req, spec), nil
}

// officialBinary probes the nim-lang.org download for the version. The
// pattern is speculative — older releases and refs have no official
// archive — so only a successful probe yields an artifact.
func (r *Resolver) officialBinary(ctx context.Context, spec ver.Spec, p platform.Platform) *Artifact {
	name := spec.Raw
	if spec.Kind != ver.KindStable {
		name = refOf(spec)
	}
	url, ok := OfficialBinaryURL(name, p)
	if !ok {
		return nil
	}
	r.logf("probing official binary %s", url)
	if !r.Prober.Exists(ctx, url) {
		return nil
	}
	archive, _ := officialArchiveName(name, p)
	return &Artifact{
		URL:     url,
		Note:    fmt.Sprintf("official prebuilt binary (%s)", archive),
		Channel: ChannelOfficial,
	}
}

// sourceArtifact builds the always-available source channel result. No
// probe: the official tarball and the repository archive endpoint are
// assumed to exist, and a stale assumption surfaces as a download error.
func (r *Resolver) sourceArtifact(req Request, spec ver.Spec) Artifact {
	if spec.Kind == ver.KindStable {
		return Artifact{
			Version: req.Version,
			URL:     SourceTarballURL(spec.Raw),
			Note:    "official source tarball; toolchain will be built from source",
			Channel: ChannelSource,
		}
	}
	ref := refOf(spec)
	return Artifact{
		Version: req.Version,
		URL:     RefArchiveURL(ref),
		Note:    fmt.Sprintf("source archive for ref %s; toolchain will be built from source", ref),
		Channel: ChannelSource,
	}
}

// refOf names the ref a non-stable spec points at. Unrecognized version
// strings are treated as bare ref names, so "devel" and "ref:devel" land
// on the same archive.
func refOf(spec ver.Spec) string {
	if spec.Kind == ver.KindRef {
		return spec.Ref
	}
	return spec.Raw
}
