// Package mmapio provides read-only file content access backed by
// memory mapping, with a buffered fallback and a size-based selector.
package mmapio

import (
	"os"
	"path/filepath"
)

// Advice hints the OS about the expected access pattern. Hints are
// best-effort and never affect correctness.
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceDontNeed
)

// Region is a read-only view over a file's bytes, tied to one open
// file handle. The byte slice returned by Bytes is only valid until
// Close; callers wanting a longer-lived buffer must copy out.
type Region struct {
	data   []byte
	f      *os.File
	mapped bool
	closed bool
}

// Open maps the file at path. Zero-length files yield an empty,
// validly closable region rather than an error.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		return &Region{f: f}, nil
	}
	r, err := mapFile(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// OpenAt maps the file name inside dir.
func OpenAt(dir, name string) (*Region, error) {
	return Open(filepath.Join(dir, name))
}

// Bytes returns the mapped contents. The slice must not be retained
// past Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Mapped reports whether the region is backed by an OS mapping rather
// than a heap buffer.
func (r *Region) Mapped() bool {
	return r.mapped
}

// Close releases the mapping and the underlying file handle together.
// Closing twice is a no-op.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var unmapErr error
	if r.mapped {
		unmapErr = unmapRegion(r.data)
	}
	r.data = nil

	closeErr := r.f.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
