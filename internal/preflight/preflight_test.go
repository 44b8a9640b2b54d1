package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/catalog"
	"portfolio/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadableDirectory(t *testing.T) {
	dir := t.TempDir()
	result := CheckReadableDirectory("source", dir)
	if !result.Passed || !strings.Contains(result.Detail, "readable") {
		t.Fatalf("expected readable pass, got %+v", result)
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	base := t.TempDir()
	missing := filepath.Join(base, "public", "images")
	result := CheckCreatableDirectory("output", missing)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected creatable pass, got %+v", result)
	}

	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckCreatableDirectory("output", filepath.Join(blocker, "images")); result.Passed {
		t.Fatalf("expected failure beneath a file, got %+v", result)
	}
}

func TestCheckSourceCategories(t *testing.T) {
	root := t.TempDir()
	c, err := catalog.New(catalog.Category{Name: "wildlife"}, catalog.Category{Name: "Hampi"})
	if err != nil {
		t.Fatal(err)
	}
	walker := catalog.NewWalker(root)
	if result := CheckSourceCategories(c, walker); result.Passed {
		t.Fatalf("expected failure with no source folders, got %+v", result)
	}
	if err := os.MkdirAll(filepath.Join(root, "wildlife"), 0o755); err != nil {
		t.Fatal(err)
	}
	result := CheckSourceCategories(c, walker)
	if !result.Passed || result.Detail != "1 of 2 categories have a source folder" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckPublicBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result := CheckPublicBaseURL(context.Background(), srv.URL+"/")
	if !result.Passed {
		t.Fatalf("expected pass for 403 bucket prefix, got: %s", result.Detail)
	}
}

func TestCheckPublicBaseURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if result := CheckPublicBaseURL(context.Background(), srv.URL); result.Passed {
		t.Fatal("expected failure for 5xx")
	}
}

func TestCheckPublicBaseURL_Unconfigured(t *testing.T) {
	if result := CheckPublicBaseURL(context.Background(), ""); !result.Passed {
		t.Fatalf("expected pass when unset, got %+v", result)
	}
}

func TestCheckHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	if result := CheckHistory(path); !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "original")
	cfg.Paths.OutputDir = filepath.Join(base, "images")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.History.Enabled = true
	if err := os.MkdirAll(filepath.Join(cfg.Paths.SourceDir, "wildlife"), 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), &cfg, catalog.Default())
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if failed := Failed(results); failed != 0 {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}
