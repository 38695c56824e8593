package snapshot

import "errors"

// ErrMalformed marks a snapshot file that exists but could not be read
// or decoded.
var ErrMalformed = errors.New("snapshot: malformed data")

// File is a typed handle on one snapshot file.
type File[T any] struct {
	Path string
}

func NewFile[T any](path string) File[T] {
	return File[T]{Path: path}
}

func (f File[T]) Load() ([]T, error) {
	return Load[T](f.Path)
}

func (f File[T]) Write(items []T) error {
	return Write(f.Path, items)
}
