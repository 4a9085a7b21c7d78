package version

import "testing"

func TestIsStable(t *testing.T) {
	stable := []string{"2.2.0", "1.6.14", "0.20.2", "10.0.100"}
	for _, v := range stable {
		if !IsStable(v) {
			t.Errorf("IsStable(%q): got false, want true", v)
		}
	}

	unstable := []string{"2.2", "2.2.0.1", "v2.2.0", "2.2.0-rc1", "ref:devel", "devel", ""}
	for _, v := range unstable {
		if IsStable(v) {
			t.Errorf("IsStable(%q): got true, want false", v)
		}
	}
}

func TestIsRef(t *testing.T) {
	if !IsRef("ref:devel") {
		t.Fatal("IsRef(ref:devel): got false, want true")
	}
	if IsRef("2.2.0") {
		t.Fatal("IsRef(2.2.0): got true, want false")
	}
	if IsRef("devel") {
		t.Fatal("IsRef(devel): got true, want false")
	}
}

func TestStableAndRefMutuallyExclusive(t *testing.T) {
	for _, v := range []string{"2.2.0", "ref:devel", "ref:version-2-2", "garbage"} {
		if IsStable(v) && IsRef(v) {
			t.Errorf("version %q classified both stable and ref", v)
		}
	}
}

func TestRefName(t *testing.T) {
	if got := RefName("ref:devel"); got != "devel" {
		t.Fatalf("RefName(ref:devel): got %q, want %q", got, "devel")
	}
	if got := RefName("2.2.0"); got != "" {
		t.Fatalf("RefName(2.2.0): got %q, want empty", got)
	}
}

func TestReleaseBranch(t *testing.T) {
	got, ok := ReleaseBranch("2.2.0")
	if !ok {
		t.Fatal("ReleaseBranch(2.2.0): expected a branch")
	}
	if got != "version-2-2" {
		t.Fatalf("ReleaseBranch(2.2.0): got %q, want %q", got, "version-2-2")
	}

	if _, ok := ReleaseBranch("not-a-version"); ok {
		t.Fatal("ReleaseBranch(not-a-version): expected no branch")
	}
}

func TestReleaseBranchPartialVersions(t *testing.T) {
	// Two leading dot-separated integers are enough.
	got, ok := ReleaseBranch("1.6")
	if !ok || got != "version-1-6" {
		t.Fatalf("ReleaseBranch(1.6): got %q/%v, want version-1-6/true", got, ok)
	}
	if _, ok := ReleaseBranch("2"); ok {
		t.Fatal("ReleaseBranch(2): expected no branch")
	}
}

func TestParseStable(t *testing.T) {
	spec := Parse("2.2.0")
	if spec.Kind != KindStable {
		t.Fatalf("kind: got %d, want KindStable", spec.Kind)
	}
	if spec.Major != 2 || spec.Minor != 2 || spec.Patch != 0 {
		t.Fatalf("parts: got %d.%d.%d, want 2.2.0", spec.Major, spec.Minor, spec.Patch)
	}
}

func TestParseRef(t *testing.T) {
	spec := Parse("ref:devel")
	if spec.Kind != KindRef {
		t.Fatalf("kind: got %d, want KindRef", spec.Kind)
	}
	if spec.Ref != "devel" {
		t.Fatalf("ref: got %q, want %q", spec.Ref, "devel")
	}
}

func TestParseUnknown(t *testing.T) {
	spec := Parse("nightly-build")
	if spec.Kind != KindUnknown {
		t.Fatalf("kind: got %d, want KindUnknown", spec.Kind)
	}
	if spec.Raw != "nightly-build" {
		t.Fatalf("raw: got %q, want %q", spec.Raw, "nightly-build")
	}
}
