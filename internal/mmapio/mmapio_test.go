package mmapio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRegionRoundTrip(t *testing.T) {
	payload := []byte("Hello, World!\nSecond line\n")
	path := writeFixture(t, "plain.txt", payload)

	r, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, payload, r.Bytes())
	assert.Equal(t, len(payload), r.Len())
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "double close is a no-op")
}

func TestRegionEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty", nil)

	r, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Mapped())
	require.NoError(t, r.Close())
}

func TestRegionMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOpenAt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))

	r, err := OpenAt(dir, "f.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), r.Bytes())
	require.NoError(t, r.Close())
}

func TestAdviseNeverFailsLogic(t *testing.T) {
	path := writeFixture(t, "advise.txt", bytes.Repeat([]byte("ab"), 4096))

	r, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, r.Advise(AdviceSequential))
	assert.NoError(t, r.Advise(AdviceDontNeed))
	require.NoError(t, r.Close())
	// Hints after close are ignored.
	assert.NoError(t, r.Advise(AdviceSequential))
}

func TestSmartReaderMappedAndBufferedAgree(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 16KB
	path := writeFixture(t, "agree.bin", payload)

	mapped := NewSmartReader(1, true) // everything above 1 byte maps
	buffered := NewSmartReader(1, false)

	mc, err := mapped.ReadFile(path)
	require.NoError(t, err)
	bc, err := buffered.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, mc.Mapped())
	assert.False(t, bc.Mapped())
	assert.Equal(t, bc.Bytes(), mc.Bytes(), "both strategies yield identical content")

	require.NoError(t, mc.Close())
	require.NoError(t, bc.Close())
}

func TestSmartReaderThreshold(t *testing.T) {
	small := writeFixture(t, "small.txt", []byte("tiny"))
	sr := NewSmartReader(1024, true)

	c, err := sr.ReadFile(small)
	require.NoError(t, err)
	assert.False(t, c.Mapped(), "below threshold stays buffered")
	assert.Equal(t, []byte("tiny"), c.Bytes())
	require.NoError(t, c.Close())
}

func TestContentCopySurvivesClose(t *testing.T) {
	payload := bytes.Repeat([]byte("z"), 8192)
	path := writeFixture(t, "copy.bin", payload)

	sr := NewSmartReader(1, true)
	c, err := sr.ReadFile(path)
	require.NoError(t, err)

	owned := c.Copy()
	require.NoError(t, c.Close())
	assert.Equal(t, payload, owned)
	assert.Nil(t, c.Bytes())
}
