package scan

import (
	"sync/atomic"
	"time"
)

// Stats tallies walk outcomes. Counters are typed atomics because the
// parallel walker updates them from several goroutines; reading them
// mid-scan gives a consistent-enough progress view, and after the walk
// returns they are stable.
type Stats struct {
	FilesKept       atomic.Uint64
	BytesKept       atomic.Uint64
	SkippedBinary   atomic.Uint64
	SkippedOversize atomic.Uint64
	SkippedIgnored  atomic.Uint64
	SkippedHidden   atomic.Uint64
	SkippedUnread   atomic.Uint64
	MmapReads       atomic.Uint64
	BufferedReads   atomic.Uint64

	elapsedNanos atomic.Int64
}

// Snapshot is a plain-value copy of Stats for callers that want to
// hold or serialize the numbers.
type Snapshot struct {
	FilesKept       uint64
	BytesKept       uint64
	SkippedBinary   uint64
	SkippedOversize uint64
	SkippedIgnored  uint64
	SkippedHidden   uint64
	SkippedUnread   uint64
	MmapReads       uint64
	BufferedReads   uint64
	Elapsed         time.Duration
}

// Elapsed returns the wall-clock duration of the last walk.
func (s *Stats) Elapsed() time.Duration {
	return time.Duration(s.elapsedNanos.Load())
}

func (s *Stats) setElapsed(d time.Duration) {
	s.elapsedNanos.Store(int64(d))
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		FilesKept:       s.FilesKept.Load(),
		BytesKept:       s.BytesKept.Load(),
		SkippedBinary:   s.SkippedBinary.Load(),
		SkippedOversize: s.SkippedOversize.Load(),
		SkippedIgnored:  s.SkippedIgnored.Load(),
		SkippedHidden:   s.SkippedHidden.Load(),
		SkippedUnread:   s.SkippedUnread.Load(),
		MmapReads:       s.MmapReads.Load(),
		BufferedReads:   s.BufferedReads.Load(),
		Elapsed:         s.Elapsed(),
	}
}

func (s *Stats) reset() {
	s.FilesKept.Store(0)
	s.BytesKept.Store(0)
	s.SkippedBinary.Store(0)
	s.SkippedOversize.Store(0)
	s.SkippedIgnored.Store(0)
	s.SkippedHidden.Store(0)
	s.SkippedUnread.Store(0)
	s.MmapReads.Store(0)
	s.BufferedReads.Store(0)
	s.elapsedNanos.Store(0)
}
