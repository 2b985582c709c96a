package atomicfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.json")
	if err := WriteFile(name, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Errorf("got %q, want []", b)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1 (no leftover temp files)", len(entries))
	}
}

func TestAbortKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.json")
	if err := os.WriteFile(name, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("new, but partial"); err != nil {
		t.Fatal(err)
	}
	if err := f.Abort(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "old" {
		t.Errorf("got %q, want old", b)
	}
	if err := f.Close(); err != nil {
		t.Errorf("close after abort: %v", err)
	}
}

func TestCreateInMissingDirectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "a.json")
	if _, err := New(name); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
