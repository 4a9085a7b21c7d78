package cli

import (
	"bytes"
	"strings"
	"testing"

	"nimfox/internal/release"
)

func TestResolveCommandSourceStrategy(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false
	t.Setenv(release.InstallMethodEnv, "source")

	cmd := newResolveCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"2.0.0"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve command returned error: %v", err)
	}

	got := stdout.String()
	if !strings.Contains(got, "https://nim-lang.org/download/nim-2.0.0.tar.xz") {
		t.Fatalf("expected source tarball URL in output, got %q", got)
	}
	if !strings.Contains(got, "built from source") {
		t.Fatalf("expected source note in output, got %q", got)
	}
}

func TestResolveCommandRefJSON(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = true
	t.Setenv(release.InstallMethodEnv, "source")

	cmd := newResolveCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ref:devel"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve command returned error: %v", err)
	}

	got := stdout.String()
	if !strings.Contains(got, "\"version\": \"ref:devel\"") {
		t.Fatalf("expected requested version in JSON output, got %q", got)
	}
	if !strings.Contains(got, "https://github.com/nim-lang/Nim/archive/devel.tar.gz") {
		t.Fatalf("expected ref archive URL in JSON output, got %q", got)
	}
}

func TestResolveCommandInvalidMethod(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false
	t.Setenv(release.InstallMethodEnv, "fastest")

	cmd := newResolveCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"2.0.0"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for invalid install method")
	}
	if !strings.Contains(err.Error(), "invalid install method") {
		t.Fatalf("expected install method error, got %v", err)
	}
}
