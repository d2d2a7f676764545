package ignore

import "strings"

// Pattern is a single parsed ignore rule. Rules are evaluated in file
// order and the last rule that matches a path decides its fate, so a
// later "!important.pyc" can rescue a file excluded by "*.pyc".
type Pattern struct {
	// Raw is the pattern text with negation and trailing-slash
	// markers stripped.
	Raw string

	// Negate re-includes a path that an earlier rule excluded.
	Negate bool

	// DirOnly rules (trailing "/" in source syntax) never match
	// plain files.
	DirOnly bool

	// Rooted rules match against the full path relative to the scan
	// root instead of the basename.
	Rooted bool

	// DoubleStar marks rules containing the recursive "**" wildcard.
	DoubleStar bool
}

// parseLine turns one ignore-file line into a Pattern. It returns
// false for blank lines and comments.
func parseLine(line string) (Pattern, bool) {
	// Trailing whitespace is insignificant unless escaped; we don't
	// support the escape form, matching the root-only loader.
	line = strings.TrimRight(line, " \t")
	line = strings.TrimLeft(line, " \t")

	if line == "" || strings.HasPrefix(line, "#") {
		return Pattern{}, false
	}

	var p Pattern

	if strings.HasPrefix(line, "!") {
		p.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.Rooted = true
		line = strings.TrimLeft(line, "/")
	}
	if line == "" {
		return Pattern{}, false
	}

	// A separator anywhere in the body anchors the pattern to the
	// scan root, same as a leading slash.
	if strings.Contains(line, "/") {
		p.Rooted = true
	}
	p.DoubleStar = strings.Contains(line, "**")
	p.Raw = line
	return p, true
}

// match reports whether the pattern matches the given slash-separated
// relative path.
func (p Pattern) match(relPath string, isDir bool) bool {
	if p.DirOnly && !isDir {
		return false
	}
	if p.DoubleStar {
		return p.matchDoubleStar(relPath)
	}
	if p.Rooted {
		return globMatch(p.Raw, relPath)
	}
	// Non-rooted patterns match the basename anywhere in the tree.
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	return globMatch(p.Raw, base)
}

// matchDoubleStar handles the three recursive-wildcard forms: a
// leading "**/" (any depth prefix), a trailing "/**" (everything below
// a prefix) and an embedded "/**/" (fixed prefix and suffix separated
// by any depth).
func (p Pattern) matchDoubleStar(relPath string) bool {
	pat := p.Raw

	switch {
	case pat == "**":
		return true

	case strings.HasPrefix(pat, "**/") && !strings.Contains(pat[3:], "**"):
		suffix := pat[3:]
		// The suffix may match at the root or after any number of
		// leading segments.
		if globMatch(suffix, relPath) {
			return true
		}
		for i := 0; i < len(relPath); i++ {
			if relPath[i] == '/' && globMatch(suffix, relPath[i+1:]) {
				return true
			}
		}
		return false

	case strings.HasSuffix(pat, "/**") && !strings.Contains(pat[:len(pat)-3], "**"):
		prefix := pat[:len(pat)-3]
		if !strings.Contains(relPath, "/") {
			return false
		}
		for i := 0; i < len(relPath); i++ {
			if relPath[i] == '/' && globMatch(prefix, relPath[:i]) {
				return true
			}
		}
		return false

	default:
		// Embedded "/**/": fixed head, fixed tail, any depth between.
		idx := strings.Index(pat, "/**/")
		if idx < 0 {
			// Degenerate use of "**" inside a segment; treat it as a
			// plain "*" glob.
			return globMatch(strings.ReplaceAll(pat, "**", "*"), relPath)
		}
		head := pat[:idx]
		tail := pat[idx+4:]
		for i := 0; i < len(relPath); i++ {
			if relPath[i] != '/' || !globMatch(head, relPath[:i]) {
				continue
			}
			rest := relPath[i+1:]
			if globMatch(tail, rest) {
				return true
			}
			for j := 0; j < len(rest); j++ {
				if rest[j] == '/' && globMatch(tail, rest[j+1:]) {
					return true
				}
			}
		}
		return false
	}
}
