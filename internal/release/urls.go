package release

import (
	"fmt"

	"nimfox/internal/platform"
)

const (
	downloadBase  = "https://nim-lang.org/download"
	sourceRepo    = "https://github.com/nim-lang/Nim"
	nightliesRepo = "https://github.com/nim-lang/nightlies"
)

// OfficialBinaryURL builds the nim-lang.org download URL for the given
// version and platform. The second return is false for platforms without
// official binaries. Callers must probe the URL before trusting it;
// official patterns legitimately 404 for versions predating binary
// availability.
func OfficialBinaryURL(version string, p platform.Platform) (string, bool) {
	name, ok := officialArchiveName(version, p)
	if !ok {
		return "", false
	}
	return downloadBase + "/" + name, true
}

// SourceTarballURL builds the official source tarball URL for a stable
// version. Never probed; the tarball is assumed present upstream.
func SourceTarballURL(version string) string {
	return fmt.Sprintf("%s/nim-%s.tar.xz", downloadBase, version)
}

// RefArchiveURL builds the repository archive URL for a moving ref.
func RefArchiveURL(ref string) string {
	return fmt.Sprintf("%s/archive/%s.tar.gz", sourceRepo, ref)
}

func nightlyDownloadURL(tag, filename string) string {
	return fmt.Sprintf("%s/releases/download/%s/%s", nightliesRepo, tag, filename)
}
