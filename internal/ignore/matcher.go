// Package ignore implements gitignore-style path exclusion: glob
// patterns with negation, directory-only and root-anchored modifiers,
// evaluated last-match-wins against paths relative to a scan root.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Matcher holds an ordered list of ignore rules. It is not safe for
// concurrent mutation; parse everything before sharing it between
// goroutines, after which Match is read-only.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher returns an empty matcher that matches nothing.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Parse appends rules from ignore-file text. Comment lines ("#") and
// blank lines are skipped. Parse never fails: a malformed line simply
// contributes no rule.
func (m *Matcher) Parse(text string) {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		if p, ok := parseLine(sc.Text()); ok {
			m.patterns = append(m.patterns, p)
		}
	}
}

// ParseFile loads rules from an ignore file on disk. An unreadable
// file is treated as "no additional rules".
func (m *Matcher) ParseFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	m.Parse(string(data))
}

// AddDefaults appends the built-in ignore set: version-control
// metadata, common dependency and build output directories, and
// OS/editor droppings. User rules parsed afterwards take precedence
// because later rules win.
func (m *Matcher) AddDefaults() {
	m.Parse(defaultRules)
}

// Len reports the number of parsed rules.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match evaluates every rule in order against relPath and returns the
// final negation-aware verdict: true means the path is ignored.
// relPath is relative to the scan root; both slash styles are
// accepted.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	relPath = strings.TrimPrefix(relPath, "./")

	ignored := false
	for _, p := range m.patterns {
		if p.match(relPath, isDir) {
			ignored = !p.Negate
		}
	}
	return ignored
}

// defaultRules mirrors the exclusions nearly every repository wants
// even without an ignore file of its own.
const defaultRules = `
# Version control
.git/
.svn/
.hg/
.bzr/

# Dependencies
node_modules/
bower_components/
.venv/
venv/
.tox/
.bundle/

# Build output
target/
build/
dist/
out/
bin/
obj/
__pycache__/
*.pyc
*.pyo
*.class
*.o
*.a
*.so
*.dylib

# Caches and coverage
.cache/
.pytest_cache/
.mypy_cache/
.ruff_cache/
coverage/
.nyc_output/

# OS artifacts
.DS_Store
Thumbs.db
desktop.ini

# Editors
.idea/
.vscode/
*.swp
*.swo
*~
`
