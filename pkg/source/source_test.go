package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadFile(t *testing.T) {
	m := Map{"a.js": "x = 1"}

	content, err := m.ReadFile("a.js")
	if err != nil {
		t.Fatal(err)
	}
	if content != "x = 1" {
		t.Errorf("content = %q, want %q", content, "x = 1")
	}

	_, err = m.ReadFile("missing.js")
	if !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestFSReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.js")
	if err := os.WriteFile(path, []byte("var x"), 0644); err != nil {
		t.Fatal(err)
	}

	content, err := NewFS().ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "var x" {
		t.Errorf("content = %q, want %q", content, "var x")
	}
}

func TestFSReadFileMissing(t *testing.T) {
	_, err := NewFS().ReadFile(filepath.Join(t.TempDir(), "nope.js"))
	if !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path == "" {
		t.Errorf("NotFoundError should carry the path: %v", err)
	}
}

func TestIsNotFoundWrapped(t *testing.T) {
	wrapped := fmt.Errorf("validate: %w", &NotFoundError{Path: "x"})
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound matched an unrelated error")
	}
}
