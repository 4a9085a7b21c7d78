package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode selects how a command reports progress.
type OutputMode int

const (
	// ModeTUI renders an interactive progress table.
	ModeTUI OutputMode = iota
	// ModePlain prints a static report after the work completes.
	ModePlain
	// ModeJSON emits structured output for host runtimes and scripts.
	ModeJSON
)

// DetectMode picks the output mode for a writer. Hook hosts invoke the
// commands with pipes, so anything that is not an interactive terminal
// degrades to plain output.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if noProgress {
		return ModePlain
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
