//go:build !unix

package mmapio

import (
	"io"
	"os"
)

// mapFile falls back to a full buffered read on platforms without a
// usable mmap wrapper. The Region contract is unchanged; only the
// backing storage differs.
func mapFile(f *os.File, size int64) (*Region, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return &Region{data: data, f: f, mapped: false}, nil
}

func unmapRegion([]byte) error {
	return nil
}

// Advise is a no-op without a real mapping.
func (r *Region) Advise(Advice) error {
	return nil
}
