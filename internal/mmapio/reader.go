package mmapio

import "os"

// DefaultThreshold is the file size at which mapping starts paying
// for itself; smaller files are cheaper to read outright.
const DefaultThreshold = 64 * 1024

// Content is a uniform handle over file bytes regardless of how they
// were obtained. The release path differs between a heap buffer and a
// mapping, so callers must always Close instead of reasoning about
// which strategy was used.
type Content struct {
	data   []byte
	region *Region
}

// Bytes returns the content. For mapped content the slice dies with
// Close.
func (c *Content) Bytes() []byte {
	return c.data
}

// Len returns the content length in bytes.
func (c *Content) Len() int {
	return len(c.data)
}

// Mapped reports whether the content is backed by an OS mapping.
func (c *Content) Mapped() bool {
	return c.region != nil
}

// Copy returns an owned copy of the bytes that survives Close.
func (c *Content) Copy() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Close releases whichever backing resource the content holds.
func (c *Content) Close() error {
	if c.region != nil {
		r := c.region
		c.region = nil
		c.data = nil
		return r.Close()
	}
	c.data = nil
	return nil
}

// SmartReader chooses between memory-mapped and buffered reads based
// on file size.
type SmartReader struct {
	threshold int64
	useMmap   bool
}

// NewSmartReader builds a reader that maps files of at least
// threshold bytes. threshold <= 0 selects DefaultThreshold; useMmap
// false forces buffered reads everywhere.
func NewSmartReader(threshold int64, useMmap bool) *SmartReader {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &SmartReader{threshold: threshold, useMmap: useMmap}
}

// ReadFile returns the file's content under the strategy picked for
// its size.
func (sr *SmartReader) ReadFile(path string) (*Content, error) {
	if sr.useMmap {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() >= sr.threshold {
			region, err := Open(path)
			if err != nil {
				return nil, err
			}
			// The scanner reads each file front to back exactly once.
			_ = region.Advise(AdviceSequential)
			return &Content{data: region.Bytes(), region: region}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Content{data: data}, nil
}
