package release

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CommitInfo associates a release version with the commit it was tagged
// from and that commit's date.
type CommitInfo struct {
	Version string
	Hash    string
	Date    string // YYYY-MM-DD
}

// CommitCache is an append-only text file mapping release versions to
// commit hashes and dates, one "version hash date" triple per line. It
// spares repeat GitHub API lookups for versions already resolved once.
type CommitCache struct {
	Path string
}

// Lookup scans the cache for the first entry matching version. A missing
// cache file is a plain miss, not an error. Lines that do not carry three
// fields are skipped.
func (c *CommitCache) Lookup(version string) (CommitInfo, bool, error) {
	file, err := os.Open(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CommitInfo{}, false, nil
		}
		return CommitInfo{}, false, fmt.Errorf("open commit cache: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		if fields[0] == version {
			return CommitInfo{Version: fields[0], Hash: fields[1], Date: fields[2]}, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return CommitInfo{}, false, fmt.Errorf("read commit cache: %w", err)
	}
	return CommitInfo{}, false, nil
}

// Store appends one entry to the cache. The line is written with a single
// Write call so concurrent appenders cannot interleave partial lines.
func (c *CommitCache) Store(info CommitInfo) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("create commit cache dir: %w", err)
	}
	file, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open commit cache: %w", err)
	}
	defer file.Close()

	line := fmt.Sprintf("%s %s %s\n", info.Version, info.Hash, info.Date)
	if _, err := file.Write([]byte(line)); err != nil {
		return fmt.Errorf("append commit cache: %w", err)
	}
	return nil
}
