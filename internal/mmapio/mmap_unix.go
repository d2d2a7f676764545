//go:build unix

package mmapio

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile mmaps size bytes of f read-only. size must be positive.
func mapFile(f *os.File, size int64) (*Region, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: err}
	}
	return &Region{data: data, f: f, mapped: true}, nil
}

func unmapRegion(data []byte) error {
	return unix.Munmap(data)
}

// Advise forwards the access-pattern hint to madvise. Errors are
// reported but harmless; empty and unmapped regions accept any hint.
func (r *Region) Advise(a Advice) error {
	if !r.mapped || r.closed || len(r.data) == 0 {
		return nil
	}
	advice := unix.MADV_NORMAL
	switch a {
	case AdviceSequential:
		advice = unix.MADV_SEQUENTIAL
	case AdviceDontNeed:
		advice = unix.MADV_DONTNEED
	}
	return unix.Madvise(r.data, advice)
}
