package release

import "nimfox/internal/platform"

// nightlyFilenames maps platforms to the asset names published by the
// nightlies repository. Combinations absent here have no prebuilt
// distribution at all, which short-circuits every binary channel.
var nightlyFilenames = map[platform.OS]map[platform.Arch]string{
	platform.Linux: {
		platform.X8664:   "linux_x64.tar.xz",
		platform.I686:    "linux_x32.tar.xz",
		platform.AArch64: "linux_arm64.tar.xz",
		platform.ARMv7:   "linux_armv7l.tar.xz",
	},
	platform.MacOS: {
		platform.X8664: "macosx_x64.tar.xz",
		platform.ARM64: "macosx_arm64.tar.xz",
	},
	platform.Windows: {
		platform.X8664: "windows_x64.zip",
		platform.I686:  "windows_x32.zip",
	},
}

// NightlyFilename returns the nightly asset name for a platform. The
// second return is false when no prebuilt exists for the pair.
func NightlyFilename(p platform.Platform) (string, bool) {
	archs, ok := nightlyFilenames[p.OS]
	if !ok {
		return "", false
	}
	name, ok := archs[p.Arch]
	return name, ok
}

// officialArchiveName returns the archive published on nim-lang.org for
// the four platforms that have official binaries. Linux archives carry an
// os prefix; Windows archives do not.
func officialArchiveName(version string, p platform.Platform) (string, bool) {
	switch p.OS {
	case platform.Linux:
		switch p.Arch {
		case platform.X8664:
			return "nim-" + version + "-linux_x64.tar.xz", true
		case platform.I686:
			return "nim-" + version + "-linux_x32.tar.xz", true
		}
	case platform.Windows:
		switch p.Arch {
		case platform.X8664:
			return "nim-" + version + "_x64.zip", true
		case platform.I686:
			return "nim-" + version + "_x32.zip", true
		}
	}
	return "", false
}
