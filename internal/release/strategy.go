package release

import (
	"fmt"
	"os"
	"strings"
)

// Strategy selects which artifact channels a resolution may use.
type Strategy string

const (
	StrategyAuto   Strategy = "auto"
	StrategyBinary Strategy = "binary"
	StrategySource Strategy = "source"
)

// InstallMethodEnv overrides any configured install method when set.
const InstallMethodEnv = "VFOX_NIM_INSTALL_METHOD"

// ParseStrategy validates a raw install-method value. The error names the
// offending value and the valid set; configuration failures surface before
// any network or filesystem work.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case StrategyAuto:
		return StrategyAuto, nil
	case StrategyBinary:
		return StrategyBinary, nil
	case StrategySource:
		return StrategySource, nil
	default:
		return "", fmt.Errorf("invalid install method %q (valid values: auto, binary, source)", raw)
	}
}

// ResolveStrategy determines the active strategy. The environment variable
// takes precedence over the configured default; an empty default means
// auto.
func ResolveStrategy(configured string) (Strategy, error) {
	if env := strings.TrimSpace(os.Getenv(InstallMethodEnv)); env != "" {
		return ParseStrategy(env)
	}
	if strings.TrimSpace(configured) == "" {
		return StrategyAuto, nil
	}
	return ParseStrategy(configured)
}
