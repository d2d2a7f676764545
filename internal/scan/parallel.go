package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// maxWorkers caps the pool; directory walks stop scaling well past a
// handful of threads on most filesystems.
const maxWorkers = 8

// dirWork is one pending directory.
type dirWork struct {
	abs string
	rel string
}

// walkState carries the shared bookkeeping of a parallel walk. The
// termination condition is two-part: the queue is empty AND no worker
// is mid-directory. inFlight counts queued-plus-processing
// directories; whoever decrements it to zero closes the queue, which
// releases every blocked worker.
type walkState struct {
	queue     chan dirWork
	inFlight  atomic.Int64
	closeOnce sync.Once
}

func (ws *walkState) done() {
	if ws.inFlight.Add(-1) == 0 {
		ws.closeOnce.Do(func() { close(ws.queue) })
	}
}

// WalkParallel scans the tree with a bounded worker pool. The final
// file set and aggregate counts equal a serial Walk over the same
// tree; only discovery order differs.
func (s *Scanner) WalkParallel(root string) error {
	absRoot, err := s.prepare(root)
	if err != nil {
		return err
	}
	start := time.Now()

	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}

	ws := &walkState{queue: make(chan dirWork, 4096)}
	ws.inFlight.Add(1)
	ws.queue <- dirWork{abs: absRoot, rel: ""}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ws)
		}()
	}
	wg.Wait()

	s.stats.setElapsed(time.Since(start))
	return nil
}

// worker drains the shared queue. Each discovered subdirectory is
// pushed as a new work item instead of recursed into, keeping stack
// depth bounded and letting idle workers pick it up. When the queue
// backs up, overflow lands on a worker-local stack so pushing can
// never deadlock against a full channel.
func (s *Scanner) worker(ws *walkState) {
	var local []dirWork
	for {
		var work dirWork
		if n := len(local); n > 0 {
			work = local[n-1]
			local = local[:n-1]
		} else {
			var ok bool
			work, ok = <-ws.queue
			if !ok {
				return
			}
		}
		local = s.processDir(ws, work, local)
		ws.done()
	}
}

// processDir handles one directory, appending overflow subdirectory
// work to local and returning it.
func (s *Scanner) processDir(ws *walkState, work dirWork, local []dirWork) []dirWork {
	entries, err := os.ReadDir(work.abs)
	if err != nil {
		s.stats.SkippedUnread.Add(1)
		s.opts.logger().Debug("unreadable directory", zap.String("path", work.abs), zap.Error(err))
		return local
	}
	for _, d := range entries {
		childAbs := filepath.Join(work.abs, d.Name())
		childRel := joinRel(work.rel, d.Name())
		if !s.admitEntry(childRel, d.Name(), d.IsDir()) {
			continue
		}
		if d.IsDir() {
			ws.inFlight.Add(1)
			select {
			case ws.queue <- dirWork{abs: childAbs, rel: childRel}:
			default:
				local = append(local, dirWork{abs: childAbs, rel: childRel})
			}
		} else if d.Type().IsRegular() {
			s.processFile(childAbs, childRel)
		}
	}
	return local
}
