package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.py", "main.py", true},
		{"*.py", "test.py", true},
		{"*.py", "main.js", false},
		{"test_*", "test_main", true},
		{"test_*", "main_test", false},
		{"*.min.js", "bundle.min.js", true},
		{"*.min.js", "bundle.js", false},
		{"?at", "cat", true},
		{"?at", "hat", true},
		{"?at", "at", false},
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a*c", "abdc", true},
		{"a*c", "abd", false},
		{"*", "anything", true},
		{"*", "", true},
		{"src/*.go", "src/main.go", true},
		{"src/*.go", "src/sub/main.go", false}, // * stops at separator
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, globMatch(tt.pattern, tt.name),
			"globMatch(%q, %q)", tt.pattern, tt.name)
	}
}

func TestMatcherLastRuleWins(t *testing.T) {
	m := NewMatcher()
	m.Parse("*.pyc\nnode_modules/\n!important.pyc\n")

	assert.True(t, m.Match("main.pyc", false))
	assert.True(t, m.Match("src/test.pyc", false))
	assert.False(t, m.Match("important.pyc", false), "negation overrides earlier exclude")

	// Directory-only rule: matches the directory but not a plain
	// file with the same name.
	assert.True(t, m.Match("node_modules", true))
	assert.False(t, m.Match("node_modules", false))
}

func TestMatcherRootedPatterns(t *testing.T) {
	m := NewMatcher()
	m.Parse("/build\nsrc/generated\n")

	assert.True(t, m.Match("build", true))
	assert.False(t, m.Match("sub/build", true), "rooted pattern only matches at the root")
	assert.True(t, m.Match("src/generated", true))
	assert.False(t, m.Match("generated", true))
}

func TestMatcherDoubleStar(t *testing.T) {
	m := NewMatcher()
	m.Parse("**/logs\ndocs/**\nsrc/**/fixtures\n")

	assert.True(t, m.Match("logs", true))
	assert.True(t, m.Match("a/b/logs", true))
	assert.False(t, m.Match("logstash", true))

	assert.True(t, m.Match("docs/index.md", false))
	assert.True(t, m.Match("docs/a/b.md", false))
	assert.False(t, m.Match("docs", true), "trailing /** matches contents, not the prefix itself")

	assert.True(t, m.Match("src/fixtures", true))
	assert.True(t, m.Match("src/a/b/fixtures", true))
	assert.False(t, m.Match("other/fixtures", true))
}

func TestMatcherCommentsAndBlanks(t *testing.T) {
	m := NewMatcher()
	m.Parse("# a comment\n\n  \n*.log\n")
	require.Equal(t, 1, m.Len())
	assert.True(t, m.Match("debug.log", false))
}

func TestMatcherDefaults(t *testing.T) {
	m := NewMatcher()
	m.AddDefaults()

	assert.True(t, m.Match(".git", true))
	assert.True(t, m.Match("node_modules", true))
	assert.True(t, m.Match("src/__pycache__", true))
	assert.True(t, m.Match("a/b/cache.pyc", false))
	assert.True(t, m.Match(".DS_Store", false))
	assert.False(t, m.Match("main.go", false))

	// User rules appended after the defaults can re-include.
	m.Parse("!keep.pyc\n")
	assert.False(t, m.Match("keep.pyc", false))
}

func TestParseFileUnreadable(t *testing.T) {
	m := NewMatcher()
	m.ParseFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, 0, m.Len())
}

func TestParseFileFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("*.tmp\n!keep.tmp\n"), 0o644))

	m := NewMatcher()
	m.ParseFile(path)
	assert.True(t, m.Match("scratch.tmp", false))
	assert.False(t, m.Match("keep.tmp", false))
}
