package release

import (
	"context"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"

	ver "nimfox/internal/version"
)

const (
	tagPageSize = 100
	maxTagPages = 4
)

// Available lists installable stable versions, newest first. Tags that do
// not parse as strict three-part releases (candidates, ancient oddly
// named tags) are dropped. limit <= 0 means no cap.
func (r *Resolver) Available(ctx context.Context, limit int) ([]string, error) {
	var collected []*goversion.Version
	for page := 1; page <= maxTagPages; page++ {
		tags, err := r.GitHub.Tags(ctx, ghOwner, ghSourceRepo, page, tagPageSize)
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			name := strings.TrimPrefix(tag, "v")
			if !ver.IsStable(name) {
				continue
			}
			parsed, err := goversion.NewVersion(name)
			if err != nil {
				continue
			}
			collected = append(collected, parsed)
		}
		if len(tags) < tagPageSize {
			break
		}
	}

	sort.Sort(sort.Reverse(goversion.Collection(collected)))

	out := make([]string, 0, len(collected))
	for _, v := range collected {
		out = append(out, v.Original())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
