// Package source defines the file-reading boundary used by the analyzers.
// Analyzers depend on the Reader interface so callers can substitute virtual
// filesystems or in-memory fixtures.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Reader provides file content to the analyzers.
type Reader interface {
	ReadFile(path string) (string, error)
}

// NotFoundError reports a path that does not exist or is unreadable.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FS reads files from the local filesystem.
type FS struct{}

// NewFS returns a filesystem-backed reader.
func NewFS() *FS { return &FS{} }

// ReadFile reads the file at path, returning a NotFoundError for missing or
// unreadable paths.
func (*FS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return "", &NotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Map is an in-memory Reader keyed by path, used in tests and by callers
// that already hold content.
type Map map[string]string

// ReadFile returns the mapped content or a NotFoundError.
func (m Map) ReadFile(path string) (string, error) {
	content, ok := m[path]
	if !ok {
		return "", &NotFoundError{Path: path}
	}
	return content, nil
}
