package release

import (
	"context"
	"fmt"
	"time"

	"nimfox/internal/platform"
	ver "nimfox/internal/version"
)

const (
	ghOwner       = "nim-lang"
	ghSourceRepo  = "Nim"
	ghNightlyRepo = "nightlies"

	nightlyPageSize = 100
	maxNightlyPages = 4
)

// nightlyDateOffsets orders the calendar days probed around a release
// commit's date. Nightly tags are stamped when the CI run finishes, which
// is usually the day after the commit, so +1 goes first.
var nightlyDateOffsets = []int{1, 0, 2, -1, -2}

// exactNightly finds the nightly build produced from the same commit a
// stable release was tagged at. The nightly tag embeds the build date, the
// release branch, and the full commit hash; only the date is uncertain, so
// a handful of days around the commit date are probed in a fixed order. A
// nil artifact with nil error means the channel has nothing to offer.
func (r *Resolver) exactNightly(ctx context.Context, version string, p platform.Platform) (*Artifact, error) {
	filename, ok := NightlyFilename(p)
	if !ok {
		return nil, nil
	}
	branch, ok := ver.ReleaseBranch(version)
	if !ok {
		return nil, nil
	}

	info, err := r.commitInfo(ctx, version)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", info.Date)
	if err != nil {
		return nil, fmt.Errorf("parse commit date %q: %w", info.Date, err)
	}

	for _, offset := range nightlyDateOffsets {
		tag := fmt.Sprintf("%s-%s-%s", date.AddDate(0, 0, offset).Format("2006-01-02"), branch, info.Hash)
		url := nightlyDownloadURL(tag, filename)
		r.logf("probing nightly tag %s", tag)
		if r.Prober.Exists(ctx, url) {
			return &Artifact{
				URL:     url,
				Note:    fmt.Sprintf("nightly build %s matching release commit %.10s", tag, info.Hash),
				Channel: ChannelExactNightly,
			}, nil
		}
	}
	return nil, nil
}

// commitInfo resolves the commit hash and date behind a stable release
// tag, consulting the local cache before the GitHub API. Fresh lookups
// are written back; a failed write only costs a repeat lookup next time.
func (r *Resolver) commitInfo(ctx context.Context, version string) (CommitInfo, error) {
	if r.Commits != nil {
		info, ok, err := r.Commits.Lookup(version)
		if err != nil {
			r.logf("commit cache lookup: %v", err)
		} else if ok {
			return info, nil
		}
	}

	sha, err := r.GitHub.TagCommit(ctx, ghOwner, ghSourceRepo, "v"+version)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("resolve tag v%s: %w", version, err)
	}
	when, err := r.GitHub.CommitDate(ctx, ghOwner, ghSourceRepo, sha)
	if err != nil {
		return CommitInfo{}, fmt.Errorf("commit date for %s: %w", sha, err)
	}

	info := CommitInfo{Version: version, Hash: sha, Date: when.UTC().Format("2006-01-02")}
	if r.Commits != nil {
		if err := r.Commits.Store(info); err != nil {
			r.logf("commit cache store: %v", err)
		}
	}
	return info, nil
}

// genericNightly finds the rolling "latest-{ref}" nightly release and
// picks the asset published for the target platform. The listing is
// paginated newest-first; the wanted tag sits near the front, so paging
// stops after a fixed cap or the first short page.
func (r *Resolver) genericNightly(ctx context.Context, ref string, p platform.Platform) (*Artifact, error) {
	filename, ok := NightlyFilename(p)
	if !ok {
		return nil, nil
	}

	want := "latest-" + ref
	for page := 1; page <= maxNightlyPages; page++ {
		releases, err := r.GitHub.Releases(ctx, ghOwner, ghNightlyRepo, page, nightlyPageSize)
		if err != nil {
			return nil, fmt.Errorf("list nightlies page %d: %w", page, err)
		}
		for _, rel := range releases {
			if rel.TagName != want {
				continue
			}
			for _, asset := range rel.Assets {
				if asset.Name == filename {
					return &Artifact{
						URL:     asset.BrowserDownloadURL,
						Note:    fmt.Sprintf("latest nightly build for ref %s", ref),
						Channel: ChannelGenericNightly,
					}, nil
				}
			}
			// Tag exists but publishes nothing for this platform.
			return nil, nil
		}
		if len(releases) < nightlyPageSize {
			break
		}
	}
	return nil, nil
}
