package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nimfox/internal/paths"
	"nimfox/internal/release"
)

const (
	nimbleDirEnv  = "NIMBLE_DIR"
	nimbleDepsDir = "nimbledeps"
)

// EnvKey is one environment entry an activated toolchain needs.
type EnvKey struct {
	Key   string
	Value string
}

// EnvKeysInput names the install root being activated.
type EnvKeysInput struct {
	Path string
}

// EnvKeysResult is the EnvKeys hook output.
type EnvKeysResult struct {
	Keys []EnvKey
}

// EnvKeys computes the environment for an activated install: a PATH entry
// for the toolchain binaries and, subject to a three-tier priority, the
// package-manager directory. An explicit NIMBLE_DIR in the caller's
// environment is never clobbered; a project-local nimbledeps directory
// means the variable stays unset so the native default applies; otherwise
// packages are isolated per installed version.
func (s *Service) EnvKeys(in EnvKeysInput) (EnvKeysResult, error) {
	if in.Path == "" {
		return EnvKeysResult{}, fmt.Errorf("install path required")
	}

	keys := []EnvKey{{Key: "PATH", Value: filepath.Join(in.Path, "bin")}}

	nimble, ok, err := nimbleDirKey(in.Path)
	if err != nil {
		return EnvKeysResult{}, err
	}
	if ok {
		keys = append(keys, nimble)
	}
	return EnvKeysResult{Keys: keys}, nil
}

func nimbleDirKey(installPath string) (EnvKey, bool, error) {
	if os.Getenv(nimbleDirEnv) != "" {
		return EnvKey{}, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return EnvKey{}, false, fmt.Errorf("detect working directory: %w", err)
	}
	local, err := paths.DirExists(filepath.Join(cwd, nimbleDepsDir))
	if err != nil {
		return EnvKey{}, false, err
	}
	if local {
		return EnvKey{}, false, nil
	}

	return EnvKey{Key: nimbleDirEnv, Value: filepath.Join(installPath, nimbleDepsDir)}, true, nil
}

// MiseEnvInput carries the host-side configuration options.
type MiseEnvInput struct {
	InstallMethod string
}

// MiseEnvResult is the MiseEnv hook output.
type MiseEnvResult struct {
	Keys []EnvKey
}

// MiseEnv maps the install_method option onto the environment variable
// the install hooks read. An unrecognized value is a fatal configuration
// error naming the value and the valid set.
func (s *Service) MiseEnv(in MiseEnvInput) (MiseEnvResult, error) {
	method := strings.TrimSpace(in.InstallMethod)
	if method == "" {
		return MiseEnvResult{}, nil
	}
	strategy, err := release.ParseStrategy(method)
	if err != nil {
		return MiseEnvResult{}, err
	}
	return MiseEnvResult{
		Keys: []EnvKey{{Key: release.InstallMethodEnv, Value: string(strategy)}},
	}, nil
}
