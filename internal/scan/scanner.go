package scan

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/homotopylabs/infiniloom/internal/detect"
	"github.com/homotopylabs/infiniloom/internal/ignore"
	"github.com/homotopylabs/infiniloom/internal/mmapio"
)

// sniffLimit bounds the leading-bytes read used for binary
// classification when full content is not being loaded.
const sniffLimit = 8192

// Scanner walks a tree and accumulates FileRecords. A Scanner may be
// reused; each Walk/WalkParallel starts from a clean result set.
// Individual methods are not safe to call concurrently with each
// other.
type Scanner struct {
	opts   *Options
	reader *mmapio.SmartReader

	// matcher is built once per walk and only read afterwards, so
	// the parallel workers can share it without locking.
	matcher *ignore.Matcher

	mu    sync.Mutex
	files []FileRecord

	stats Stats
}

// New creates a scanner. nil opts selects DefaultOptions.
func New(opts *Options) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Scanner{
		opts:   opts,
		reader: mmapio.NewSmartReader(opts.MmapThreshold, opts.UseMmap),
	}
}

// Files returns the records collected by the last walk.
func (s *Scanner) Files() []FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files
}

// Stats exposes the tallies of the last (or in-progress) walk.
func (s *Scanner) Stats() *Stats {
	return &s.stats
}

// prepare resets result state and builds the ignore matcher for a new
// walk rooted at root. It returns the absolute root path.
func (s *Scanner) prepare(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving scan root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", fmt.Errorf("opening scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scan root %s is not a directory", root)
	}

	m := ignore.NewMatcher()
	m.AddDefaults()
	if s.opts.RespectIgnore {
		// Root-level ignore file only; nested files are not
		// inherited.
		m.ParseFile(filepath.Join(absRoot, ".gitignore"))
		m.ParseFile(filepath.Join(absRoot, ".infiniloomignore"))
	}
	s.matcher = m

	s.mu.Lock()
	s.files = nil
	s.mu.Unlock()
	s.stats.reset()
	return absRoot, nil
}

// Walk scans the tree serially. Per-file problems are tallied and
// skipped; only an unusable root is an error.
func (s *Scanner) Walk(root string) error {
	absRoot, err := s.prepare(root)
	if err != nil {
		return err
	}
	start := time.Now()
	s.walkDir(absRoot, "")
	s.stats.setElapsed(time.Since(start))
	return nil
}

// walkDir is the serial recursive descent. rel is "" for the root.
func (s *Scanner) walkDir(abs, rel string) {
	entries, err := os.ReadDir(abs)
	if err != nil {
		// Unreadable directory: skip, never fatal.
		s.stats.SkippedUnread.Add(1)
		s.opts.logger().Debug("unreadable directory", zap.String("path", abs), zap.Error(err))
		return
	}
	for _, d := range entries {
		childAbs := filepath.Join(abs, d.Name())
		childRel := joinRel(rel, d.Name())
		if !s.admitEntry(childRel, d.Name(), d.IsDir()) {
			continue
		}
		if d.IsDir() {
			s.walkDir(childAbs, childRel)
		} else if d.Type().IsRegular() {
			s.processFile(childAbs, childRel)
		}
	}
}

// admitEntry applies the pre-I/O policy shared by both walkers:
// hidden entries first, then ignore rules. Returns false when the
// entry (and, for directories, everything below it) is skipped.
func (s *Scanner) admitEntry(rel, name string, isDir bool) bool {
	if !s.opts.IncludeHidden && isHidden(name) {
		s.stats.SkippedHidden.Add(1)
		return false
	}
	if s.matcher.Match(rel, isDir) {
		s.stats.SkippedIgnored.Add(1)
		return false
	}
	return true
}

// processFile runs the per-file pipeline: size check, extension
// filter, binary classification, then record construction with
// optional content loading.
func (s *Scanner) processFile(abs, rel string) {
	info, err := os.Stat(abs)
	if err != nil {
		s.stats.SkippedUnread.Add(1)
		s.opts.logger().Debug("stat failed", zap.String("path", abs), zap.Error(err))
		return
	}
	size := info.Size()
	if size > s.opts.maxFileSize() {
		s.stats.SkippedOversize.Add(1)
		return
	}

	ext := strings.ToLower(filepath.Ext(rel))
	if !s.opts.extensionAllowed(ext) {
		s.stats.SkippedIgnored.Add(1)
		return
	}

	rec := FileRecord{
		Path:      abs,
		RelPath:   filepath.ToSlash(rel),
		Size:      size,
		Extension: ext,
	}
	if lang, ok := detect.LanguageForFile(rel); ok {
		rec.Language = lang
	}

	if s.opts.LoadContent {
		content, err := s.reader.ReadFile(abs)
		if err != nil {
			s.stats.SkippedUnread.Add(1)
			s.opts.logger().Debug("read failed", zap.String("path", abs), zap.Error(err))
			return
		}
		if content.Mapped() {
			s.stats.MmapReads.Add(1)
		} else {
			s.stats.BufferedReads.Add(1)
		}
		if detect.IsBinary(content.Bytes()) {
			s.stats.SkippedBinary.Add(1)
			content.Close()
			return
		}
		// Copy out before Close: a mapped slice dies with the
		// region.
		rec.Content = content.Copy()
		rec.Lines = bytes.Count(rec.Content, []byte{'\n'})
		content.Close()
	} else {
		head, err := readHead(abs, sniffLimit)
		if err != nil {
			s.stats.SkippedUnread.Add(1)
			s.opts.logger().Debug("sniff failed", zap.String("path", abs), zap.Error(err))
			return
		}
		if detect.IsBinary(head) {
			s.stats.SkippedBinary.Add(1)
			return
		}
	}

	s.mu.Lock()
	s.files = append(s.files, rec)
	s.mu.Unlock()
	s.stats.FilesKept.Add(1)
	s.stats.BytesKept.Add(uint64(size))
}

// readHead reads at most limit leading bytes of the file.
func readHead(path string, limit int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + string(os.PathSeparator) + name
}
