// Package scan walks a directory tree honoring ignore rules and
// collects qualifying files into records plus aggregate statistics.
// It comes in a serial and a parallel flavor that agree on the final
// file set.
package scan

// FileRecord describes one accepted file. Records are owned by the
// scanner's result collection; Content, when loaded, is an owned copy
// independent of any mapping the reader used.
type FileRecord struct {
	// Path is the absolute path on disk.
	Path string

	// RelPath is the path relative to the scan root, slash-separated.
	RelPath string

	// Size is the file size in bytes.
	Size int64

	// IsBinary is false for every kept record; binary files are
	// skipped during the walk. The flag travels across the boundary
	// layer, which also exposes single-file probes.
	IsBinary bool

	// Language is the detected language tag, "" when unknown.
	Language string

	// Extension is the lowercase filename extension including the
	// dot, "" when absent.
	Extension string

	// Lines counts newline characters; populated only when content
	// loading is enabled.
	Lines int

	// Content is the full file content when loading is enabled,
	// nil otherwise.
	Content []byte
}
