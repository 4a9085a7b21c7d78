package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// csources pins for the synthesized build description. Upstream's
// build_all script sources this file without checking it exists; release
// tarballs ship it, repository archives of some refs do not.
const (
	csourcesDir    = "csources_v2"
	csourcesURL    = "https://github.com/nim-lang/csources_v2"
	csourcesBranch = "master"
	csourcesHash   = "86742fb02c6606ab01a532a0085784effb2e753e"
)

// Restructure hoists a nested archive directory into the install root.
// Some hosts extract archives flat, others leave the single top-level
// "nim-{version}" directory the archive was packed with; after this call
// the toolchain files sit directly in Root either way.
func (b *Bootstrapper) Restructure() error {
	nested, err := b.nestedDir()
	if err != nil {
		return err
	}
	if nested == "" {
		return nil
	}

	b.logf("flattening nested archive directory %s", filepath.Base(nested))
	entries, err := os.ReadDir(nested)
	if err != nil {
		return fmt.Errorf("read nested dir: %w", err)
	}
	for _, entry := range entries {
		src := filepath.Join(nested, entry.Name())
		dst := filepath.Join(b.Root, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("hoist %s: %w", entry.Name(), err)
		}
	}
	if err := os.Remove(nested); err != nil {
		return fmt.Errorf("remove nested dir: %w", err)
	}
	return nil
}

// nestedDir finds the version-tagged subdirectory an unflattened archive
// leaves behind. A root that already carries toolchain files is left
// alone.
func (b *Bootstrapper) nestedDir() (string, error) {
	if b.Exists(b.nimPath()) || b.Exists(filepath.Join(b.Root, "koch.nim")) {
		return "", nil
	}

	entries, err := os.ReadDir(b.Root)
	if err != nil {
		return "", fmt.Errorf("read install root: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(entry.Name()), "nim-") {
			return filepath.Join(b.Root, entry.Name()), nil
		}
	}
	return "", nil
}

// synthesizeBuildConfig writes config/build_config.txt when the archive
// did not ship one. Existing files are never touched.
func (b *Bootstrapper) synthesizeBuildConfig() error {
	path := filepath.Join(b.Root, "config", "build_config.txt")
	if b.Exists(path) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare config dir: %w", err)
	}
	content := fmt.Sprintf("nim_csourcesDir=%s\nnim_csourcesUrl=%s\nnim_csourcesBranch=%s\nnim_csourcesHash=%s\n",
		csourcesDir, csourcesURL, csourcesBranch, csourcesHash)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write build config: %w", err)
	}
	b.logf("synthesized %s", path)
	return nil
}
