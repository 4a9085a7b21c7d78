package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"nimfox/internal/execx"
	"nimfox/internal/platform"
)

// Status captures the detected state of one host command.
type Status struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum,omitempty"`
	Path      string   `json:"path,omitempty"`
	Purpose   string   `json:"purpose,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Error     string   `json:"error,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// Checker locates host commands and reads their versions. LookPath and
// Runner are swappable so tests run without the real binaries.
type Checker struct {
	OS       platform.OS
	LookPath func(string) (string, error)
	Runner   execx.Runner
}

// NewChecker returns a Checker backed by the real PATH and os/exec.
func NewChecker(os platform.OS) *Checker {
	return &Checker{OS: os, LookPath: exec.LookPath, Runner: execx.CmdRunner{}}
}

// Detect reports the status of every command the pipeline may need on
// the checker's platform, in definition order.
func (c *Checker) Detect(ctx context.Context) []Status {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	defs := Definitions(c.OS)
	statuses := make([]Status, 0, len(defs))
	for _, def := range defs {
		statuses = append(statuses, c.detectOne(ctx, def))
	}
	return statuses
}

func (c *Checker) detectOne(ctx context.Context, def Definition) Status {
	status := Status{Tool: def.Name, Minimum: def.Minimum, Purpose: def.Purpose}

	path, err := c.locate(def)
	if err != nil {
		status.Error = err.Error()
		status.Hints = installHints(def.Name, c.OS)
		return status
	}
	status.Path = path

	if len(def.VersionArgs) == 0 {
		status.Satisfied = true
		return status
	}

	version, err := c.readVersion(ctx, path, def)
	if err != nil {
		// The binary exists; a failing version switch is worth noting
		// but not disqualifying.
		status.Satisfied = true
		status.Error = err.Error()
		return status
	}

	status.Version = version
	status.Satisfied = meetsMinimum(version, def.Minimum)
	if !status.Satisfied {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, def.Minimum)
		status.Hints = installHints(def.Name, c.OS)
	}
	return status
}

func (c *Checker) locate(def Definition) (string, error) {
	for _, name := range def.Executables {
		if path, err := c.LookPath(name); err == nil {
			return path, nil
		}
	}
	if len(def.Executables) == 1 {
		return "", fmt.Errorf("%s not found in PATH", def.Executables[0])
	}
	return "", fmt.Errorf("none of %s found in PATH", strings.Join(def.Executables, ", "))
}

func (c *Checker) readVersion(ctx context.Context, path string, def Definition) (string, error) {
	res, err := c.Runner.Run(ctx, path, def.VersionArgs, execx.RunOptions{})
	if err != nil {
		return "", fmt.Errorf("%s %s: %v", def.Name, strings.Join(def.VersionArgs, " "), err)
	}
	line := firstLine(strings.TrimSpace(string(res.Stdout)))
	if v := extractVersion(line); v != "" {
		return v, nil
	}
	return line, nil
}
