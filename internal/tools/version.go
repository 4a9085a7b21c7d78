package tools

import (
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var versionTokenRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)+`)

// extractVersion pulls the first dotted version token out of a banner
// like "gcc (Ubuntu 13.2.0-23ubuntu4) 13.2.0" or "tar (GNU tar) 1.35".
func extractVersion(line string) string {
	return versionTokenRegex.FindString(line)
}

// meetsMinimum compares dotted versions. Values that do not parse count
// as satisfying, so an exotic vendor banner never fails the check by
// itself.
func meetsMinimum(current, minimum string) bool {
	if minimum == "" {
		return true
	}
	if current == "" {
		return false
	}
	cur, err := goversion.NewVersion(current)
	if err != nil {
		return true
	}
	min, err := goversion.NewVersion(minimum)
	if err != nil {
		return true
	}
	return cur.GreaterThanOrEqual(min)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
