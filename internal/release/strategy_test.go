package release

import (
	"strings"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		raw  string
		want Strategy
	}{
		{raw: "auto", want: StrategyAuto},
		{raw: "binary", want: StrategyBinary},
		{raw: "source", want: StrategySource},
		{raw: "  Binary  ", want: StrategyBinary},
		{raw: "SOURCE", want: StrategySource},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %s, got %s", tt.raw, tt.want, got)
		}
	}
}

func TestParseStrategyInvalid(t *testing.T) {
	_, err := ParseStrategy("fastest")
	if err == nil {
		t.Fatal("expected error for invalid install method")
	}
	if !strings.Contains(err.Error(), "fastest") {
		t.Fatalf("expected offending value in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "auto, binary, source") {
		t.Fatalf("expected valid set in error, got %q", err.Error())
	}
}

func TestResolveStrategyEnvPrecedence(t *testing.T) {
	t.Setenv(InstallMethodEnv, "source")
	got, err := ResolveStrategy("binary")
	if err != nil {
		t.Fatalf("resolve strategy: %v", err)
	}
	if got != StrategySource {
		t.Fatalf("expected env to win, got %s", got)
	}
}

func TestResolveStrategyConfiguredFallback(t *testing.T) {
	t.Setenv(InstallMethodEnv, "")
	got, err := ResolveStrategy("binary")
	if err != nil {
		t.Fatalf("resolve strategy: %v", err)
	}
	if got != StrategyBinary {
		t.Fatalf("expected configured value, got %s", got)
	}
}

func TestResolveStrategyDefaultsToAuto(t *testing.T) {
	t.Setenv(InstallMethodEnv, "")
	got, err := ResolveStrategy("")
	if err != nil {
		t.Fatalf("resolve strategy: %v", err)
	}
	if got != StrategyAuto {
		t.Fatalf("expected auto default, got %s", got)
	}
}

func TestResolveStrategyInvalidEnv(t *testing.T) {
	t.Setenv(InstallMethodEnv, "quick")
	if _, err := ResolveStrategy("auto"); err == nil {
		t.Fatal("expected error for invalid env value")
	}
}
