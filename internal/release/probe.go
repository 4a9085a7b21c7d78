package release

import (
	"context"
	"net/http"
	"time"
)

// Prober reports whether an artifact URL is downloadable. Failures of any
// kind count as "does not exist"; the fallback chain treats them as the
// channel being unavailable.
type Prober interface {
	Exists(ctx context.Context, url string) bool
}

// HeadProber checks existence with an HTTP HEAD request. A 200 or 302
// response means the artifact exists; redirects are not followed so the
// 302 GitHub serves for release assets is observed directly.
type HeadProber struct {
	Client *http.Client
}

// NewHeadProber returns a prober with the given request timeout.
func NewHeadProber(timeout time.Duration) HeadProber {
	return HeadProber{
		Client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (p HeadProber) Exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusFound
}
