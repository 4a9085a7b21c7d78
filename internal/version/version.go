// Package version classifies requested toolchain versions. A version is
// either a stable release (strict major.minor.patch), a ref (a moving
// branch or commit pointer prefixed "ref:"), or unrecognized.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const refPrefix = "ref:"

var (
	stablePattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	branchPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)
)

// Kind discriminates the parsed form of a version string.
type Kind int

const (
	KindStable Kind = iota
	KindRef
	KindUnknown
)

// Spec is the parsed, immutable form of a requested version.
type Spec struct {
	Raw   string
	Kind  Kind
	Major int
	Minor int
	Patch int
	Ref   string
}

// Parse classifies a raw version string. The ref prefix is checked first,
// so a string carrying both shapes counts as a ref. Unrecognized strings
// parse as KindUnknown with the raw value preserved.
func Parse(raw string) Spec {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, refPrefix) {
		return Spec{Raw: raw, Kind: KindRef, Ref: strings.TrimPrefix(raw, refPrefix)}
	}
	if m := stablePattern.FindString(raw); m != "" {
		parts := strings.SplitN(raw, ".", 3)
		major, _ := strconv.Atoi(parts[0])
		minor, _ := strconv.Atoi(parts[1])
		patch, _ := strconv.Atoi(parts[2])
		return Spec{Raw: raw, Kind: KindStable, Major: major, Minor: minor, Patch: patch}
	}
	return Spec{Raw: raw, Kind: KindUnknown}
}

// IsStable reports whether v is a strict major.minor.patch release string.
func IsStable(v string) bool {
	return stablePattern.MatchString(strings.TrimSpace(v))
}

// IsRef reports whether v names a moving branch or commit pointer.
func IsRef(v string) bool {
	return strings.HasPrefix(strings.TrimSpace(v), refPrefix)
}

// RefName returns the ref a "ref:" version points at, or "" when v is not
// a ref version.
func RefName(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, refPrefix) {
		return ""
	}
	return strings.TrimPrefix(v, refPrefix)
}

// ReleaseBranch derives the upstream release-branch name for a version
// that starts with two dot-separated integers, e.g. "2.2.0" yields
// "version-2-2". The second return is false when no branch can be derived.
func ReleaseBranch(v string) (string, bool) {
	m := branchPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("version-%s-%s", m[1], m[2]), true
}
