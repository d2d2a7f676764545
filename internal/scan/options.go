package scan

import (
	"strings"

	"go.uber.org/zap"

	"github.com/homotopylabs/infiniloom/internal/mmapio"
)

// DefaultMaxFileSize skips anything over 50MB; files that large are
// never useful model context.
const DefaultMaxFileSize = 50 * 1024 * 1024

// Options configures a walk. Supplied once per scan and never mutated
// during it.
type Options struct {
	// MaxFileSize skips larger files. Zero means DefaultMaxFileSize.
	MaxFileSize int64

	// IncludeHidden keeps dot-prefixed entries instead of skipping
	// them.
	IncludeHidden bool

	// RespectIgnore loads the ignore file at the scan root. The
	// built-in default ignore set applies regardless.
	RespectIgnore bool

	// LoadContent reads full file content into each record.
	LoadContent bool

	// MmapThreshold is the minimum size for memory-mapped reads.
	// Zero selects the reader default.
	MmapThreshold int64

	// UseMmap enables memory mapping above the threshold.
	UseMmap bool

	// IncludeExts, when non-empty, is an allow-list of extensions
	// (with or without the leading dot). ExcludeExts takes
	// precedence over it.
	IncludeExts []string
	ExcludeExts []string

	// Workers bounds the parallel walker's pool. Zero sizes it to
	// available parallelism.
	Workers int

	// Logger receives per-file skip diagnostics. Nil means no
	// logging.
	Logger *zap.Logger
}

// DefaultOptions returns the configuration used when callers pass
// nil.
func DefaultOptions() *Options {
	return &Options{
		MaxFileSize:   DefaultMaxFileSize,
		RespectIgnore: true,
		LoadContent:   true,
		MmapThreshold: mmapio.DefaultThreshold,
		UseMmap:       true,
	}
}

// WithMaxFileSize sets the per-file size cap.
func (o *Options) WithMaxFileSize(n int64) *Options {
	o.MaxFileSize = n
	return o
}

// WithIncludeHidden controls whether dot-entries are walked.
func (o *Options) WithIncludeHidden(v bool) *Options {
	o.IncludeHidden = v
	return o
}

// WithRespectIgnore controls root ignore-file loading.
func (o *Options) WithRespectIgnore(v bool) *Options {
	o.RespectIgnore = v
	return o
}

// WithLoadContent controls full content loading.
func (o *Options) WithLoadContent(v bool) *Options {
	o.LoadContent = v
	return o
}

// WithMmap configures the mapped-read strategy.
func (o *Options) WithMmap(enabled bool, threshold int64) *Options {
	o.UseMmap = enabled
	o.MmapThreshold = threshold
	return o
}

// WithExtensions sets the include allow-list and exclude list.
func (o *Options) WithExtensions(include, exclude []string) *Options {
	o.IncludeExts = include
	o.ExcludeExts = exclude
	return o
}

// WithWorkers bounds the parallel pool size.
func (o *Options) WithWorkers(n int) *Options {
	o.Workers = n
	return o
}

// WithLogger attaches a diagnostics logger.
func (o *Options) WithLogger(l *zap.Logger) *Options {
	o.Logger = l
	return o
}

func (o *Options) maxFileSize() int64 {
	if o.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return o.MaxFileSize
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// normalizeExt lowercases and dot-prefixes an extension so "py",
// ".py" and ".PY" all compare equal.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// extensionAllowed applies the exclude-then-include policy.
func (o *Options) extensionAllowed(ext string) bool {
	for _, e := range o.ExcludeExts {
		if normalizeExt(e) == ext {
			return false
		}
	}
	if len(o.IncludeExts) == 0 {
		return true
	}
	for _, e := range o.IncludeExts {
		if normalizeExt(e) == ext {
			return true
		}
	}
	return false
}
