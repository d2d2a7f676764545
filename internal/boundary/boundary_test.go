package boundary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.go":    "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n",
		"README.md":  "# demo\n\nSome words here.\n",
		"util/io.py": "def read(path):\n    return open(path).read()\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScanReportsTotals(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	res := ctx.Scan(fixtureRepo(t), false, true, 0)
	assert.Equal(t, OK, res.Code)
	assert.Equal(t, uint32(3), res.FileCount)
	assert.NotZero(t, res.TotalBytes)
	assert.NotZero(t, res.TotalTokens)
	assert.Empty(t, ctx.LastError())
}

func TestScanParallelMatchesSerial(t *testing.T) {
	root := fixtureRepo(t)
	ctx := NewContext()
	defer ctx.Close()

	serial := ctx.Scan(root, false, true, 0)
	parallel := ctx.ScanParallel(root, false, true, 0)

	assert.Equal(t, serial.FileCount, parallel.FileCount)
	assert.Equal(t, serial.TotalBytes, parallel.TotalBytes)
	assert.Equal(t, serial.TotalTokens, parallel.TotalTokens)
}

func TestScanFailureSetsError(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	res := ctx.Scan(filepath.Join(t.TempDir(), "nope"), false, true, 0)
	assert.Equal(t, CodeFailed, res.Code)
	assert.NotEmpty(t, ctx.LastError())
	assert.Zero(t, ctx.FileCount())

	// The next successful operation clears the message.
	res = ctx.Scan(fixtureRepo(t), false, true, 0)
	assert.Equal(t, OK, res.Code)
	assert.Empty(t, ctx.LastError())
}

func TestFileIteration(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	res := ctx.Scan(fixtureRepo(t), false, true, 0)
	require.Equal(t, OK, res.Code)
	require.Equal(t, res.FileCount, ctx.FileCount())

	seen := map[string]FileView{}
	for i := uint32(0); i < ctx.FileCount(); i++ {
		v, ok := ctx.File(i)
		require.True(t, ok)
		seen[v.RelPath] = v
	}
	_, ok := ctx.File(ctx.FileCount())
	assert.False(t, ok)

	main, ok := seen["main.go"]
	require.True(t, ok)
	assert.Equal(t, "go", main.Language)
	assert.NotZero(t, main.TokensClaude)
	assert.NotZero(t, main.TokensGPT4o)
	assert.InDelta(t, 0.7, main.Importance, 0.001)

	readme := seen["README.md"]
	assert.InDelta(t, 0.8, readme.Importance, 0.001)
}

func TestCountTokens(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	text := []byte("def hello():\n    print('Hello, World!')\n")
	n := ctx.CountTokens(text, 0)
	assert.Greater(t, n, uint32(5))
	assert.Less(t, n, uint32(30))

	assert.Zero(t, ctx.CountTokens(nil, 0))

	// Unknown model ids degrade to the default model's estimate.
	assert.Equal(t, ctx.CountTokens(text, 0), ctx.CountTokens(text, 99))

	all := ctx.CountTokensAll(text)
	assert.NotZero(t, all.Claude)
	assert.NotZero(t, all.GPT4o)
	assert.NotZero(t, all.Gemini)
}

func TestCompressRoundTrip(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := []byte("x = 1  # comment\n\n\n\ny = 2\n")
	buf := make([]byte, len(src)+64)

	n := ctx.Compress(src, CompressConfig{Level: 2, RemoveComments: true, RemoveEmptyLines: true}, 0, buf)
	require.Greater(t, n, int64(0))
	assert.Equal(t, "x = 1\n\ny = 2\n", string(buf[:n]))

	// Level zero copies the input through untouched.
	n = ctx.Compress(src, CompressConfig{Level: 0}, 0, buf)
	require.Equal(t, int64(len(src)), n)
	assert.Equal(t, string(src), string(buf[:n]))
}

func TestCompressBufferTooSmall(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := []byte("x = 1\ny = 2\nz = 3\n")
	small := make([]byte, 2)
	n := ctx.Compress(src, CompressConfig{Level: 0}, 0, small)
	assert.Equal(t, int64(CodeBufferTooSmall), n)
	assert.NotEmpty(t, ctx.LastError())

	// Retry with a big enough buffer succeeds.
	big := make([]byte, len(src))
	n = ctx.Compress(src, CompressConfig{Level: 0}, 0, big)
	assert.Equal(t, int64(len(src)), n)
	assert.Empty(t, ctx.LastError())
}

func TestClosedContext(t *testing.T) {
	ctx := NewContext()
	ctx.Close()
	ctx.Close()

	res := ctx.Scan(t.TempDir(), false, true, 0)
	assert.Equal(t, CodeInvalid, res.Code)
	assert.Zero(t, ctx.FileCount())
	_, ok := ctx.File(0)
	assert.False(t, ok)
	assert.Zero(t, ctx.CountTokens([]byte("text"), 0))
	assert.Equal(t, int64(CodeInvalid), ctx.Compress([]byte("text"), CompressConfig{}, 0, make([]byte, 16)))
}
