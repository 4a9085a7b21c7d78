package build

import (
	"context"
	"fmt"
	"strings"

	"nimfox/internal/execx"
)

// versionMarker must appear in the compiler's --version output for an
// install to count as working.
const versionMarker = "Nim Compiler"

// Verify is the end-to-end correctness gate for both binary and source
// installs: the compiler binary must exist and its --version output must
// identify the product.
func (b *Bootstrapper) Verify(ctx context.Context) error {
	nim := b.nimPath()
	if !b.Exists(nim) {
		return fmt.Errorf("install incomplete: %s not found", nim)
	}

	res, err := b.Runner.Run(ctx, nim, []string{"--version"}, execx.RunOptions{Dir: b.Root})
	if err != nil {
		return fmt.Errorf("run %s --version: %w", nim, err)
	}
	if !strings.Contains(string(res.Stdout), versionMarker) {
		return fmt.Errorf("unexpected version output from %s: %q", nim, firstLine(string(res.Stdout)))
	}
	b.logf("verified %s: %s", nim, firstLine(string(res.Stdout)))
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
