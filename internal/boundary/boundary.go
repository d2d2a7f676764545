// Package boundary is the embedding surface of the engine: an opaque
// context handle, flat result records, and negative sentinel codes
// instead of Go errors. The cgo layer is a thin veneer over this
// package, so everything here sticks to types that cross a C boundary
// cleanly.
package boundary

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/homotopylabs/infiniloom/internal/compress"
	"github.com/homotopylabs/infiniloom/internal/scan"
	"github.com/homotopylabs/infiniloom/internal/token"
)

// Version is reported through the version export.
const Version = "0.1.0"

// Sentinel codes. Zero is success; failures are negative so a length
// return can share the channel.
const (
	OK                 int32 = 0
	CodeInvalid        int32 = -1
	CodeFailed         int32 = -2
	CodeBufferTooSmall int32 = -3
)

// ScanResult is the fixed-shape summary returned by Scan and
// ScanParallel. Code is OK on success; on failure the other fields are
// zero and the error message is held on the context.
type ScanResult struct {
	FileCount   uint32
	TotalBytes  uint64
	TotalTokens uint64
	ScanTimeMS  int64
	Code        int32
}

// FileView is one scanned file in boundary shape: flat strings and
// counts, no slices of content.
type FileView struct {
	Path         string
	RelPath      string
	Size         uint64
	TokensClaude uint32
	TokensGPT4o  uint32
	Language     string
	Importance   float32
}

// CompressConfig mirrors the C-side compression configuration.
type CompressConfig struct {
	// Level is 0=none, 1=minimal, 2=balanced, 3=aggressive, 4=extreme.
	Level            uint8
	RemoveComments   bool
	RemoveEmptyLines bool
	PreserveImports  bool
}

// Context is the opaque handle. One context holds the results of its
// last scan plus the last error message; the message stays valid until
// the next operation on the same context.
type Context struct {
	mu        sync.Mutex
	estimator *token.Estimator
	files     []scan.FileRecord
	views     []FileView
	lastErr   string
	closed    bool
}

// NewContext creates a fresh handle.
func NewContext() *Context {
	return &Context{estimator: token.NewEstimator()}
}

// Close releases the handle. Further operations return CodeInvalid.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.files = nil
	c.views = nil
	c.estimator.Close()
}

// LastError returns the message of the most recent failed operation,
// or "" when the last operation succeeded.
func (c *Context) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Context) setErr(msg string) {
	c.lastErr = msg
}

// Scan walks path serially and retains the results on the context.
func (c *Context) Scan(path string, includeHidden, respectIgnore bool, maxFileSize uint64) ScanResult {
	return c.runScan(path, includeHidden, respectIgnore, maxFileSize, false)
}

// ScanParallel is Scan with the bounded worker pool walker.
func (c *Context) ScanParallel(path string, includeHidden, respectIgnore bool, maxFileSize uint64) ScanResult {
	return c.runScan(path, includeHidden, respectIgnore, maxFileSize, true)
}

func (c *Context) runScan(path string, includeHidden, respectIgnore bool, maxFileSize uint64, parallel bool) ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ScanResult{Code: CodeInvalid}
	}
	c.setErr("")

	opts := scan.DefaultOptions().
		WithIncludeHidden(includeHidden).
		WithRespectIgnore(respectIgnore)
	if maxFileSize > 0 {
		opts.WithMaxFileSize(int64(maxFileSize))
	}

	s := scan.New(opts)
	start := time.Now()
	var err error
	if parallel {
		err = s.WalkParallel(path)
	} else {
		err = s.Walk(path)
	}
	if err != nil {
		c.setErr(err.Error())
		c.files, c.views = nil, nil
		return ScanResult{Code: CodeFailed}
	}

	c.files = s.Files()
	c.views = make([]FileView, len(c.files))
	var totalBytes, totalTokens uint64
	for i, f := range c.files {
		counts := c.estimator.EstimateAll(string(f.Content))
		c.views[i] = FileView{
			Path:         f.Path,
			RelPath:      f.RelPath,
			Size:         uint64(f.Size),
			TokensClaude: counts.Claude,
			TokensGPT4o:  counts.GPT4o,
			Language:     f.Language,
			Importance:   fileImportance(f.RelPath),
		}
		totalBytes += uint64(f.Size)
		totalTokens += uint64(counts.Claude)
	}

	return ScanResult{
		FileCount:   uint32(len(c.files)),
		TotalBytes:  totalBytes,
		TotalTokens: totalTokens,
		ScanTimeMS:  time.Since(start).Milliseconds(),
		Code:        OK,
	}
}

// FileCount reports how many files the last scan retained.
func (c *Context) FileCount() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}
	return uint32(len(c.views))
}

// File returns the record at index. The second return is false when
// the index is out of range or no scan has run.
func (c *Context) File(index uint32) (FileView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || index >= uint32(len(c.views)) {
		return FileView{}, false
	}
	return c.views[index], true
}

// CountTokens estimates data under the given model id. Unrecognized
// ids fall back to the Claude estimate.
func (c *Context) CountTokens(data []byte, model uint8) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0
	}
	m := token.Model(model)
	if !m.Valid() {
		m = token.Claude
	}
	return c.estimator.Estimate(string(data), m).Tokens
}

// CountTokensAll estimates data for every supported model at once.
func (c *Context) CountTokensAll(data []byte) token.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return token.Counts{}
	}
	return c.estimator.EstimateAll(string(data))
}

// Compress writes the compressed form of data into buf and returns the
// number of bytes written. A negative return is a sentinel code;
// CodeBufferTooSmall means the caller should retry with a buffer of at
// least the size reported through LastError.
func (c *Context) Compress(data []byte, cfg CompressConfig, language uint8, buf []byte) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return int64(CodeInvalid)
	}
	c.setErr("")

	out := compress.CompressWith(string(data), cfg.options(), compress.Language(language))
	if len(out) > len(buf) {
		c.setErr(fmt.Sprintf("buffer too small: need %d bytes, have %d", len(out), len(buf)))
		return int64(CodeBufferTooSmall)
	}
	copy(buf, out)
	return int64(len(out))
}

// CompressBytes is the context-free variant of Compress for hosts that
// only embed the transform surface. Same buffer contract, but no
// handle and no retrievable message.
func CompressBytes(data []byte, cfg CompressConfig, language uint8, buf []byte) int64 {
	out := compress.CompressWith(string(data), cfg.options(), compress.Language(language))
	if len(out) > len(buf) {
		return int64(CodeBufferTooSmall)
	}
	copy(buf, out)
	return int64(len(out))
}

// options lowers the flat config onto the compressor's option set. The
// level picks the preset, then the explicit toggles override it.
func (cfg CompressConfig) options() compress.Options {
	opts := compress.OptionsForLevel(compress.Level(cfg.Level))
	if opts.Level == compress.None || opts.Level == compress.Extreme {
		return opts
	}
	opts.StripLineComments = cfg.RemoveComments
	opts.StripBlockComments = cfg.RemoveComments
	opts.CollapseBlankLines = cfg.RemoveEmptyLines
	opts.PreserveImports = cfg.PreserveImports
	return opts
}

// fileImportance is a coarse prior used for context ranking: entry
// points and documentation rate above generated or test files.
func fileImportance(rel string) float32 {
	lower := strings.ToLower(rel)
	base := filepathBase(lower)
	switch {
	case strings.HasPrefix(base, "readme"):
		return 0.8
	case base == "main.go" || base == "main.py" || base == "index.js" || base == "index.ts" || base == "lib.rs" || base == "main.rs":
		return 0.7
	case strings.Contains(base, "_test.") || strings.HasSuffix(base, ".test.js") || strings.HasSuffix(base, ".spec.ts") || strings.Contains(lower, "test/"):
		return 0.3
	case strings.Contains(lower, "generated") || strings.HasSuffix(base, ".lock"):
		return 0.2
	}
	return 0.5
}

func filepathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
