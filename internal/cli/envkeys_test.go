package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nimfox/internal/release"
)

// chdir changes the working directory for the duration of the test and
// restores the previous one on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestEnvKeysCommandPathFlag(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false
	t.Setenv("NIMBLE_DIR", "")
	chdir(t, t.TempDir())

	installDir := filepath.Join(dataDir, "versions", "nim-2.0.0")
	if err := os.MkdirAll(filepath.Join(installDir, "bin"), 0o755); err != nil {
		t.Fatalf("seed install dir: %v", err)
	}

	cmd := newEnvKeysCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--path", installDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("env-keys command returned error: %v", err)
	}

	got := stdout.String()
	if !strings.Contains(got, "PATH="+filepath.Join(installDir, "bin")) {
		t.Fatalf("expected PATH entry, got %q", got)
	}
	if !strings.Contains(got, "NIMBLE_DIR="+filepath.Join(installDir, "nimbledeps")) {
		t.Fatalf("expected version-scoped NIMBLE_DIR entry, got %q", got)
	}
}

func TestEnvKeysCommandVersionFlag(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = true
	t.Setenv("NIMBLE_DIR", "")
	chdir(t, t.TempDir())

	cmd := newEnvKeysCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--version", "2.0.0"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("env-keys command returned error: %v", err)
	}

	got := stdout.String()
	if !strings.Contains(got, "\"keys\"") {
		t.Fatalf("expected JSON output, got %q", got)
	}
	wantBin := filepath.Join(dataDir, "versions", "nim-2.0.0", "bin")
	if !strings.Contains(got, wantBin) {
		t.Fatalf("expected derived install path %q in output, got %q", wantBin, got)
	}
}

func TestEnvKeysCommandRequiresPathOrVersion(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false

	cmd := newEnvKeysCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "either --path or --version") {
		t.Fatalf("expected missing-flag error, got %v", err)
	}
}

func TestMiseEnvCommand(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false

	cmd := newMiseEnvCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--install-method", "binary"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("mise-env command returned error: %v", err)
	}
	want := release.InstallMethodEnv + "=binary"
	if !strings.Contains(stdout.String(), want) {
		t.Fatalf("expected %q in output, got %q", want, stdout.String())
	}
}

func TestMiseEnvCommandEmptyMethod(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false

	cmd := newMiseEnvCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("mise-env command returned error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no output for empty install method, got %q", stdout.String())
	}
}

func TestMiseEnvCommandInvalidMethod(t *testing.T) {
	prevData := dataDir
	prevJSON := outputJSON
	defer func() {
		dataDir = prevData
		outputJSON = prevJSON
	}()
	dataDir = t.TempDir()
	outputJSON = false

	cmd := newMiseEnvCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--install-method", "fastest"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid install method") {
		t.Fatalf("expected invalid method error, got %v", err)
	}
}
