package importer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		fullPath := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"note1.md":               "# Test",
		"folder/note2.md":        "# Test",
		"folder/deeper/note3.md": "# Test",
		"readme.txt":             "not markdown",
		".obsidian/config.md":    "# hidden",
		".git/notes.md":          "# hidden",
	})

	files, err := Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.RelPath)
		if f.AbsPath != filepath.Join(root, filepath.FromSlash(f.RelPath)) {
			t.Errorf("Scan() AbsPath = %s, want it under %s", f.AbsPath, root)
		}
	}
	sort.Strings(got)

	want := []string{"folder/deeper/note3.md", "folder/note2.md", "note1.md"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scan() paths mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("Scan() expected error for missing root, got nil")
	}
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"note.md": "# Test"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Scan(ctx, root); err == nil {
		t.Error("Scan() expected error for cancelled context, got nil")
	}
}
