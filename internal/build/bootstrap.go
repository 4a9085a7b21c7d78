// Package build drives the from-source bootstrap of a toolchain install
// root: restructure the extracted archive, synthesize the build
// description the upstream scripts expect, then walk the staged pipeline
// (bootstrap compiler, koch, boot, tools, nimble) with per-stage
// idempotency markers and per-stage log files.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nimfox/internal/execx"
	"nimfox/internal/platform"
)

// Logger receives diagnostic output from the pipeline.
type Logger interface {
	Printf(format string, v ...any)
}

// Bootstrapper runs the source build pipeline inside one install root.
// Runner and Exists are injectable so the stage ordering is testable
// without a compiler or real files.
type Bootstrapper struct {
	Root    string
	OS      platform.OS
	Runner  execx.Runner
	Exists  func(path string) bool
	Logger  Logger
	LogsDir string
	Verbose bool
}

// New wires a bootstrapper for the host platform. Verbose tracks the
// MISE_VERBOSE toggle; when on, stage output streams to stderr as well as
// the stage log.
func New(root string, runner execx.Runner, logsDir string) *Bootstrapper {
	return &Bootstrapper{
		Root:    root,
		OS:      platform.Host().OS,
		Runner:  runner,
		Exists:  fileExists,
		LogsDir: logsDir,
		Verbose: verboseEnv(),
	}
}

func verboseEnv() bool {
	v := os.Getenv("MISE_VERBOSE")
	return v != "" && v != "0"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (b *Bootstrapper) logf(format string, args ...any) {
	if b.Logger == nil {
		return
	}
	b.Logger.Printf(format, args...)
}

func (b *Bootstrapper) exe(name string) string {
	if b.OS == platform.Windows {
		return name + ".exe"
	}
	return name
}

func (b *Bootstrapper) nimPath() string   { return filepath.Join(b.Root, "bin", b.exe("nim")) }
func (b *Bootstrapper) kochPath() string  { return filepath.Join(b.Root, b.exe("koch")) }
func (b *Bootstrapper) toolsPath() string { return filepath.Join(b.Root, "bin", b.exe("nimsuggest")) }
func (b *Bootstrapper) nimblePath() string {
	return filepath.Join(b.Root, "bin", b.exe("nimble"))
}

// The stage predicates: each stage is skipped when its output marker
// already exists, so an interrupted install resumes where it stopped.

func (b *Bootstrapper) isBootstrapped() bool { return b.Exists(b.nimPath()) }
func (b *Bootstrapper) isKochBuilt() bool    { return b.Exists(b.kochPath()) }
func (b *Bootstrapper) isToolsBuilt() bool   { return b.Exists(b.toolsPath()) }
func (b *Bootstrapper) isNimbleBuilt() bool  { return b.Exists(b.nimblePath()) }

// NeedsBuild reports whether the root still lacks a compiler binary,
// which is how a freshly extracted source tree is told apart from a
// prebuilt one.
func (b *Bootstrapper) NeedsBuild() bool { return !b.isBootstrapped() }

// Run executes the full source pipeline. Every stage is fatal except the
// final nimble build, which older toolchains cannot run at all; its
// failure is logged and installation continues.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := b.Restructure(); err != nil {
		return err
	}
	if err := b.synthesizeBuildConfig(); err != nil {
		return err
	}

	if b.isBootstrapped() {
		b.logf("bootstrap compiler present, skipping build script")
	} else {
		if err := b.runBootstrapScript(ctx); err != nil {
			return err
		}
	}

	if b.isKochBuilt() {
		b.logf("koch present, skipping compile")
	} else {
		if err := b.compileKoch(ctx); err != nil {
			return err
		}
	}

	if err := b.kochBoot(ctx); err != nil {
		return err
	}

	if b.isToolsBuilt() {
		b.logf("tools present, skipping koch tools")
	} else {
		if err := b.kochTools(ctx); err != nil {
			return err
		}
	}

	if b.isNimbleBuilt() {
		b.logf("nimble present, skipping koch nimble")
	} else if err := b.kochNimble(ctx); err != nil {
		b.logf("warning: koch nimble failed, continuing without package manager: %v", err)
	}

	return nil
}

// runBootstrapScript runs the upstream build script, preferring the
// current name and falling back to the one older releases shipped.
func (b *Bootstrapper) runBootstrapScript(ctx context.Context) error {
	script, err := b.bootstrapScript()
	if err != nil {
		return err
	}
	if b.OS == platform.Windows {
		return b.runStage(ctx, "bootstrap", "bootstrap.log", "cmd", "/C", filepath.Join(b.Root, script))
	}
	return b.runStage(ctx, "bootstrap", "bootstrap.log", "sh", filepath.Join(b.Root, script))
}

func (b *Bootstrapper) bootstrapScript() (string, error) {
	candidates := []string{"build_all.sh", "build.sh"}
	if b.OS == platform.Windows {
		candidates = []string{"build_all.bat", "build.bat"}
	}
	for _, name := range candidates {
		if b.Exists(filepath.Join(b.Root, name)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no bootstrap script in %s (tried %s)", b.Root, strings.Join(candidates, ", "))
}

// compileKoch builds the meta-build tool with the bootstrap compiler.
// Parent configuration is skipped so a user-level nim.cfg cannot leak
// into the toolchain being built.
func (b *Bootstrapper) compileKoch(ctx context.Context) error {
	return b.runStage(ctx, "koch compile", "koch_compile.log",
		b.nimPath(), "c", "-d:release", "--skipParentCfg:on", "koch")
}

func (b *Bootstrapper) kochBoot(ctx context.Context) error {
	return b.runStage(ctx, "koch boot", "koch_boot.log", b.kochPath(), "boot", "-d:release")
}

func (b *Bootstrapper) kochTools(ctx context.Context) error {
	return b.runStage(ctx, "koch tools", "koch_tools.log", b.kochPath(), "tools")
}

func (b *Bootstrapper) kochNimble(ctx context.Context) error {
	return b.runStage(ctx, "koch nimble", "koch_nimble.log", b.kochPath(), "nimble")
}

// runStage executes one pipeline command with its output redirected to a
// stage log. Failures carry the log path so the user can read the build
// output that a quiet install hid.
func (b *Bootstrapper) runStage(ctx context.Context, name, logName, command string, args ...string) error {
	var stdout, stderr io.Writer = io.Discard, io.Discard
	logPath := ""
	if b.LogsDir != "" {
		if err := os.MkdirAll(b.LogsDir, 0o755); err != nil {
			return fmt.Errorf("prepare logs dir: %w", err)
		}
		logPath = filepath.Join(b.LogsDir, logName)
		logFile, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("create stage log: %w", err)
		}
		defer logFile.Close()
		stdout, stderr = logFile, logFile
	}
	if b.Verbose {
		stdout = io.MultiWriter(stdout, os.Stderr)
		stderr = io.MultiWriter(stderr, os.Stderr)
	}

	b.logf("%s: %s %s", name, command, strings.Join(args, " "))
	_, err := b.Runner.Run(ctx, command, args, execx.RunOptions{
		Dir:    b.Root,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		if logPath != "" {
			return fmt.Errorf("%s failed: %w (see %s)", name, err, logPath)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
