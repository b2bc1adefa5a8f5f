package locate

import (
	"path/filepath"
	"testing"
)

func TestPathLayout(t *testing.T) {
	got := Path("/root", 0x00000001_0000002A)
	want := filepath.Join("/root", "00000001", "0000002a.mchan")
	if got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestPathZeroID(t *testing.T) {
	got := Path("/root", 0)
	want := filepath.Join("/root", "00000000", "00000000.mchan")
	if got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}

func TestEnsureCreatesDir(t *testing.T) {
	root := t.TempDir()
	path, err := Ensure(root, 42)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if filepath.Dir(path) == root {
		t.Fatalf("expected a subdirectory, got path %q directly under root", path)
	}
}
