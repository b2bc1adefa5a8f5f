package mmap

import (
	"path/filepath"
	"testing"
)

func TestCreateThenOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chan.dat")

	w, err := Create(path, 4096)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	copy(w.Bytes(), []byte("hello"))
	if err := w.Flush(false); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(path, 4096, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	if got := string(r.Bytes()[:5]); got != "hello" {
		t.Fatalf("read back %q, want %q", got, "hello")
	}
}

func TestCreateRejectsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chan.dat")
	w, err := Create(path, 64)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	if _, err := Create(path, 64); err == nil {
		t.Fatal("expected error creating over an existing file")
	}
}

func TestOpenRejectsSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chan.dat")
	w, err := Create(path, 64)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w.Close()

	_, err = Open(path, 128, false)
	if err == nil {
		t.Fatal("expected InconsistentError")
	}
	if _, ok := err.(*InconsistentError); !ok {
		t.Fatalf("err = %v (%T), want *InconsistentError", err, err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chan.dat")
	w, err := Create(path, 64)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
