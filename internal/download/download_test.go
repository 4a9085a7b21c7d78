package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://nim-lang.org/download/nim-2.0.0-linux_x64.tar.xz", want: "nim-2.0.0-linux_x64.tar.xz"},
		{url: "https://github.com/nim-lang/Nim/archive/devel.tar.gz", want: "devel.tar.gz"},
		{url: "https://example.com/path/nim-2.0.0_x64.zip?token=abc", want: "nim-2.0.0_x64.zip"},
	}
	for _, tt := range tests {
		got, err := Filename(tt.url)
		if err != nil {
			t.Fatalf("filename %s: %v", tt.url, err)
		}
		if got != tt.want {
			t.Fatalf("filename %s: expected %s, got %s", tt.url, tt.want, got)
		}
	}
}

func TestFilenameRejectsBareHost(t *testing.T) {
	if _, err := Filename("https://example.com/"); err == nil {
		t.Fatal("expected error for url without a file component")
	}
}

func TestFetchWritesAndChecksums(t *testing.T) {
	body := []byte("archive-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Error("expected user agent header")
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "downloads", "archive.tar.xz")
	sum, err := Fetch(context.Background(), srv.URL+"/archive.tar.xz", dest)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("expected body %q, got %q", body, got)
	}

	wantSum := sha256.Sum256(body)
	if sum != hex.EncodeToString(wantSum[:]) {
		t.Fatalf("expected checksum %x, got %s", wantSum, sum)
	}

	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatalf("read downloads dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "archive.tar.xz")
	if _, err := Fetch(context.Background(), srv.URL+"/missing.tar.xz", dest); err == nil {
		t.Fatal("expected error for 404 download")
	}
	if _, err := os.Stat(dest); err == nil {
		t.Fatal("expected no file after failed download")
	}
}

func TestEnsureSkipsExisting(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "archive.tar.xz")
	if err := os.WriteFile(dest, []byte("cached"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sum, err := Ensure(context.Background(), srv.URL+"/archive.tar.xz", dest)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected no download for existing file, got %d hits", hits)
	}
	wantSum := sha256.Sum256([]byte("cached"))
	if sum != hex.EncodeToString(wantSum[:]) {
		t.Fatalf("expected checksum of existing file, got %s", sum)
	}
}
