package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureTree builds a small repository-shaped tree exercising every
// skip path: hidden entries, default and user ignore rules, and a
// binary file.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, root, "README.md", "# readme\n")
	writeFile(t, root, "src/lib.py", "def lib():\n    return 1\n")
	writeFile(t, root, "src/sub/deep.txt", "deep\n")
	writeFile(t, root, "assets/logo.bin", "\x00\x01\x02binary")
	writeFile(t, root, ".hidden.txt", "hidden\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = 1\n")
	writeFile(t, root, "notes.pyc", "compiled\n")
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "debug.log", "log line\n")
	return root
}

func relPaths(files []FileRecord) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	sort.Strings(out)
	return out
}

func TestWalkBasic(t *testing.T) {
	root := fixtureTree(t)
	s := New(nil)
	require.NoError(t, s.Walk(root))

	assert.Equal(t, []string{"README.md", "main.go", "src/lib.py", "src/sub/deep.txt"}, relPaths(s.Files()))

	snap := s.Stats().Snapshot()
	assert.Equal(t, uint64(4), snap.FilesKept)
	// .hidden.txt, .git, .gitignore
	assert.Equal(t, uint64(3), snap.SkippedHidden)
	// node_modules (default rule), notes.pyc (default rule), debug.log (user rule)
	assert.Equal(t, uint64(3), snap.SkippedIgnored)
	assert.Equal(t, uint64(1), snap.SkippedBinary)
	assert.Equal(t, uint64(0), snap.SkippedOversize)
}

func TestWalkLoadsContent(t *testing.T) {
	root := fixtureTree(t)
	s := New(nil)
	require.NoError(t, s.Walk(root))

	byRel := map[string]FileRecord{}
	for _, f := range s.Files() {
		byRel[f.RelPath] = f
	}
	rec, ok := byRel["main.go"]
	require.True(t, ok)
	assert.Equal(t, "package main\n\nfunc main() {}\n", string(rec.Content))
	assert.Equal(t, 3, rec.Lines)
	assert.Equal(t, ".go", rec.Extension)
	assert.Equal(t, "go", rec.Language)
	assert.Equal(t, int64(len(rec.Content)), rec.Size)
}

func TestWalkParallelMatchesSerial(t *testing.T) {
	root := t.TempDir()
	// A wider tree than the workers, so the queue and the local
	// overflow stacks both see traffic.
	for d := 0; d < 6; d++ {
		for sub := 0; sub < 4; sub++ {
			for f := 0; f < 3; f++ {
				rel := filepath.Join(fmt.Sprintf("dir%d", d), fmt.Sprintf("sub%d", sub), fmt.Sprintf("file%d.txt", f))
				writeFile(t, root, rel, fmt.Sprintf("content %d/%d/%d\n", d, sub, f))
			}
		}
	}
	writeFile(t, root, "top.md", "top\n")
	writeFile(t, root, "skip.pyc", "skip\n")
	writeFile(t, root, ".hidden", "h\n")

	serial := New(nil)
	require.NoError(t, serial.Walk(root))
	serialPaths := relPaths(serial.Files())
	serialSnap := serial.Stats().Snapshot()

	for _, workers := range []int{1, 2, 8} {
		parallel := New(DefaultOptions().WithWorkers(workers))
		require.NoError(t, parallel.WalkParallel(root))

		assert.Equal(t, serialPaths, relPaths(parallel.Files()), "workers=%d", workers)

		snap := parallel.Stats().Snapshot()
		serialSnap.Elapsed, snap.Elapsed = 0, 0
		assert.Equal(t, serialSnap, snap, "workers=%d", workers)
	}
}

func TestOversizeSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.txt", "ok\n")
	writeFile(t, root, "big.txt", "0123456789012345678901234567890123456789\n")

	s := New(DefaultOptions().WithMaxFileSize(16))
	require.NoError(t, s.Walk(root))

	assert.Equal(t, []string{"small.txt"}, relPaths(s.Files()))
	assert.Equal(t, uint64(1), s.Stats().Snapshot().SkippedOversize)
}

func TestExtensionFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n")
	writeFile(t, root, "b.py", "x = 1\n")
	writeFile(t, root, "c.md", "# c\n")

	s := New(DefaultOptions().WithExtensions([]string{"go", ".py"}, nil))
	require.NoError(t, s.Walk(root))
	assert.Equal(t, []string{"a.go", "b.py"}, relPaths(s.Files()))

	// Exclude wins over include.
	s = New(DefaultOptions().WithExtensions([]string{"go", "py"}, []string{".py"}))
	require.NoError(t, s.Walk(root))
	assert.Equal(t, []string{"a.go"}, relPaths(s.Files()))
}

func TestIncludeHidden(t *testing.T) {
	root := fixtureTree(t)
	s := New(DefaultOptions().WithIncludeHidden(true))
	require.NoError(t, s.Walk(root))

	paths := relPaths(s.Files())
	assert.Contains(t, paths, ".hidden.txt")
	assert.Contains(t, paths, ".gitignore")
	// Hidden no longer skips .git, but the default rules still do.
	assert.NotContains(t, paths, ".git/config")
	assert.Equal(t, uint64(0), s.Stats().Snapshot().SkippedHidden)
}

func TestRespectIgnoreDisabled(t *testing.T) {
	root := fixtureTree(t)
	s := New(DefaultOptions().WithRespectIgnore(false))
	require.NoError(t, s.Walk(root))

	paths := relPaths(s.Files())
	// The root .gitignore's *.log rule is not loaded.
	assert.Contains(t, paths, "debug.log")
	// Built-in defaults still apply.
	assert.NotContains(t, paths, "notes.pyc")
}

func TestProjectIgnoreFile(t *testing.T) {
	root := fixtureTree(t)
	writeFile(t, root, ".infiniloomignore", "src/\n")

	s := New(nil)
	require.NoError(t, s.Walk(root))
	assert.Equal(t, []string{"README.md", "main.go"}, relPaths(s.Files()))
}

func TestNoLoadContentStillSniffsBinary(t *testing.T) {
	root := fixtureTree(t)
	s := New(DefaultOptions().WithLoadContent(false))
	require.NoError(t, s.Walk(root))

	for _, f := range s.Files() {
		assert.Nil(t, f.Content)
	}
	assert.Equal(t, uint64(1), s.Stats().Snapshot().SkippedBinary)
	assert.Equal(t, uint64(4), s.Stats().Snapshot().FilesKept)
}

func TestMmapThresholdRouting(t *testing.T) {
	root := fixtureTree(t)

	// Threshold of one byte maps every non-empty read, including the
	// binary file inspected and then dropped.
	s := New(DefaultOptions().WithMmap(true, 1))
	require.NoError(t, s.Walk(root))
	snap := s.Stats().Snapshot()
	assert.Equal(t, uint64(5), snap.MmapReads)
	assert.Equal(t, uint64(0), snap.BufferedReads)

	s = New(DefaultOptions().WithMmap(false, 0))
	require.NoError(t, s.Walk(root))
	snap = s.Stats().Snapshot()
	assert.Equal(t, uint64(0), snap.MmapReads)
	assert.Equal(t, uint64(5), snap.BufferedReads)
}

func TestWalkRootErrors(t *testing.T) {
	s := New(nil)
	assert.Error(t, s.Walk(filepath.Join(t.TempDir(), "missing")))

	root := t.TempDir()
	writeFile(t, root, "plain.txt", "x\n")
	assert.Error(t, s.Walk(filepath.Join(root, "plain.txt")))
	assert.Error(t, s.WalkParallel(filepath.Join(root, "plain.txt")))
}

func TestScannerReuseResets(t *testing.T) {
	root := fixtureTree(t)
	s := New(nil)
	require.NoError(t, s.Walk(root))
	first := s.Stats().Snapshot()

	require.NoError(t, s.Walk(root))
	second := s.Stats().Snapshot()

	assert.Equal(t, first.FilesKept, second.FilesKept)
	assert.Equal(t, first.BytesKept, second.BytesKept)
	assert.Len(t, s.Files(), int(first.FilesKept))
}
