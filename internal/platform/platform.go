package platform

import (
	"runtime"
	"strings"
)

// OS is a canonical operating-system name used in artifact URLs.
type OS string

// Arch is a canonical CPU architecture name used in artifact URLs.
type Arch string

const (
	Linux   OS = "linux"
	MacOS   OS = "macos"
	Windows OS = "windows"

	X8664   Arch = "x86_64"
	I686    Arch = "i686"
	AArch64 Arch = "aarch64"
	ARMv7   Arch = "armv7"
	ARM64   Arch = "arm64"
)

// Platform pairs a canonical OS and architecture for one resolution.
type Platform struct {
	OS   OS
	Arch Arch
}

// Host returns the platform of the running process.
func Host() Platform {
	return Platform{
		OS:   NormalizeOS(runtime.GOOS),
		Arch: NormalizeArch(runtime.GOARCH),
	}
}

// NormalizeOS maps a raw OS identifier to its canonical name. Matching is
// case-insensitive and substring-based. Unrecognized values pass through
// lower-cased; callers treat unknown platforms as "no binary available"
// rather than an error.
func NormalizeOS(raw string) OS {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "darwin"), strings.Contains(lower, "macos"):
		return MacOS
	case strings.Contains(lower, "linux"):
		return Linux
	case strings.Contains(lower, "mingw"), strings.Contains(lower, "win"):
		return Windows
	default:
		return OS(lower)
	}
}

// NormalizeArch maps a raw architecture identifier to its canonical name.
// Same matching rules as NormalizeOS. arm64 stays distinct from aarch64
// because upstream names macOS arm builds differently from linux ones.
func NormalizeArch(raw string) Arch {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "x86_64"), strings.Contains(lower, "amd64"):
		return X8664
	case strings.Contains(lower, "i386"), strings.Contains(lower, "i686"), strings.Contains(lower, "x86"):
		return I686
	case strings.Contains(lower, "aarch64"):
		return AArch64
	case strings.Contains(lower, "armv7"):
		return ARMv7
	case strings.Contains(lower, "arm64"):
		return ARM64
	default:
		return Arch(lower)
	}
}

// Normalize builds a Platform from raw host-reported identifiers.
func Normalize(rawOS, rawArch string) Platform {
	return Platform{OS: NormalizeOS(rawOS), Arch: NormalizeArch(rawArch)}
}

func (p Platform) String() string {
	return string(p.OS) + "/" + string(p.Arch)
}
