package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"nimfox/internal/config"
	"nimfox/internal/paths"
)

func TestJoinComma(t *testing.T) {
	tests := []struct {
		input []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{"a", "b", "c"}, "a, b, c"},
	}

	for _, tt := range tests {
		got := joinComma(tt.input)
		if got != tt.want {
			t.Errorf("joinComma(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCheckConfigWithError(t *testing.T) {
	result := checkConfig(config.Config{}, errors.New("unmarshal config: yaml: bad"))

	if result.Status != "error" {
		t.Errorf("got status=%q, want error", result.Status)
	}
	if result.Name != "Config" {
		t.Errorf("got name=%q, want Config", result.Name)
	}
}

func TestCheckConfigInvalidMethod(t *testing.T) {
	cfg := config.Default()
	cfg.InstallMethod = "fastest"

	result := checkConfig(cfg, nil)
	if result.Status != "error" {
		t.Errorf("got status=%q, want error", result.Status)
	}
	if !strings.Contains(result.Summary, "invalid install method") {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestCheckConfigValid(t *testing.T) {
	result := checkConfig(config.Default(), nil)

	if result.Status != "ok" {
		t.Errorf("got status=%q, want ok", result.Status)
	}
	if !strings.Contains(result.Summary, "install method auto") {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestCheckToolchainsEmpty(t *testing.T) {
	pp, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}

	result := checkToolchains(pp)
	if result.Status != "ok" || result.Summary != "none installed" {
		t.Errorf("got %+v, want ok/none installed", result)
	}
}

func TestCheckToolchainsMissingDir(t *testing.T) {
	root := t.TempDir()
	pp, err := paths.Resolve(root)
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}
	seedManifest(t, root, "2.0.0", "1.6.20")
	if err := os.MkdirAll(pp.InstallDir("2.0.0"), 0o755); err != nil {
		t.Fatalf("mkdir install dir: %v", err)
	}

	result := checkToolchains(pp)
	if result.Status != "warning" {
		t.Errorf("got status=%q, want warning", result.Status)
	}
	if !strings.Contains(result.Summary, "1 missing on disk") {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
}

func TestCheckToolchainsAllPresent(t *testing.T) {
	root := t.TempDir()
	pp, err := paths.Resolve(root)
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}
	seedManifest(t, root, "2.0.0")
	if err := os.MkdirAll(pp.InstallDir("2.0.0"), 0o755); err != nil {
		t.Fatalf("mkdir install dir: %v", err)
	}

	result := checkToolchains(pp)
	if result.Status != "ok" || result.Summary != "1 installed" {
		t.Errorf("got %+v, want ok/1 installed", result)
	}
}

func TestDoctorCommandOutput(t *testing.T) {
	origDataDir := dataDir
	defer func() { dataDir = origDataDir }()
	dataDir = t.TempDir()

	swapToolChecker(t, allToolsChecker(&stubRunner{output: "gcc (GNU suite) 13.2.0"}))

	cmd := newDoctorCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}

	rendered := out.String()
	for _, want := range []string{"DATA DIR HEALTH:", "Tools:", "Config:", "Toolchains:", "none installed"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, rendered)
		}
	}
}
