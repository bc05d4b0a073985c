package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("failed to create FileStore: %v", err)
	}
	if store.DataRoot() != dir {
		t.Errorf("DataRoot: got %q, want %q", store.DataRoot(), dir)
	}

	// The notebooks directory is created up front so a fresh data root is
	// immediately listable.
	info, err := os.Stat(store.NotebooksRoot())
	if err != nil {
		t.Fatalf("notebooks root not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("notebooks root is not a directory")
	}

	// Reopening an existing root is fine.
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("failed to reopen FileStore: %v", err)
	}
}

func TestFileStoreLayout(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("failed to create FileStore: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"NotebooksRoot", store.NotebooksRoot(), filepath.Join(root, "notebooks")},
		{"NotebookDir", store.NotebookDir("n1"), filepath.Join(root, "notebooks", "n1")},
		{"NotebookMetaFile", store.NotebookMetaFile("n1"), filepath.Join(root, "notebooks", "n1", "meta.json")},
		{"PagesDir", store.PagesDir("n1"), filepath.Join(root, "notebooks", "n1", "pages")},
		{"PageDir", store.PageDir("n1", "p1"), filepath.Join(root, "notebooks", "n1", "pages", "p1")},
		{"PageMetaFile", store.PageMetaFile("n1", "p1"), filepath.Join(root, "notebooks", "n1", "pages", "p1", "meta.json")},
		{"StrokesFile", store.StrokesFile("n1", "p1"), filepath.Join(root, "notebooks", "n1", "pages", "p1", "strokes.json")},
		{"PageIndexFile", store.PageIndexFile(), filepath.Join(root, "page-index.json")},
		{"SettingsFile", store.SettingsFile(), filepath.Join(root, "settings.json")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
