package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DataPaths captures canonical locations under the nimfox data directory.
type DataPaths struct {
	Root         string
	ConfigFile   string
	CommitsFile  string
	ManifestFile string
	VersionsDir  string
	DownloadsDir string
	LogsDir      string
}

// Resolve determines the data root using the optional --data-dir flag, the
// NIMFOX_DATA_DIR environment variable, or the per-OS default, in that
// order.
func Resolve(dataDirFlag string) (DataPaths, error) {
	if dataDirFlag != "" {
		abs, err := filepath.Abs(dataDirFlag)
		if err != nil {
			return DataPaths{}, fmt.Errorf("resolve data dir: %w", err)
		}
		return newDataPaths(abs), nil
	}

	if override, ok := os.LookupEnv("NIMFOX_DATA_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return DataPaths{}, fmt.Errorf("resolve NIMFOX_DATA_DIR: %w", err)
		}
		return newDataPaths(abs), nil
	}

	root, err := defaultRoot()
	if err != nil {
		return DataPaths{}, err
	}
	return newDataPaths(root), nil
}

func defaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "nimfox"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "nimfox"), nil
		}
		return filepath.Join(home, "AppData", "Local", "nimfox"), nil
	default:
		return filepath.Join(home, ".local", "share", "nimfox"), nil
	}
}

func newDataPaths(root string) DataPaths {
	return DataPaths{
		Root:         root,
		ConfigFile:   filepath.Join(root, "config.yaml"),
		CommitsFile:  filepath.Join(root, "commits.txt"),
		ManifestFile: filepath.Join(root, "manifest.json"),
		VersionsDir:  filepath.Join(root, "versions"),
		DownloadsDir: filepath.Join(root, "downloads"),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// Rebase moves the data paths onto a different root, keeping the standard
// layout. Used when the config file overrides data_dir.
func Rebase(root string) (DataPaths, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return DataPaths{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return newDataPaths(abs), nil
}

// EnsureDirs creates the versions/downloads/logs hierarchy under the root.
func (p DataPaths) EnsureDirs() error {
	dirs := []string{p.Root, p.VersionsDir, p.DownloadsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// InstallDir returns the install root for a toolchain version, e.g.
// versions/nim-2.2.0. Characters unsafe in directory names are replaced.
func (p DataPaths) InstallDir(version string) string {
	return filepath.Join(p.VersionsDir, "nim-"+sanitizeVersionDir(version))
}

func sanitizeVersionDir(version string) string {
	version = strings.TrimSpace(version)
	version = strings.ReplaceAll(version, ":", "-")
	version = strings.ReplaceAll(version, "/", "-")
	version = strings.ReplaceAll(version, "\\", "-")
	return version
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
