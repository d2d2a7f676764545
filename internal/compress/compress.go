package compress

import "strings"

// Compress applies the named level's preset to text. None is the
// identity transform. Compression never fails on well-formed UTF-8;
// unterminated comments or strings close implicitly at end of input.
func Compress(text string, level Level, lang Language) string {
	return CompressWith(text, OptionsForLevel(level), lang)
}

// CompressWith applies an explicit Options set.
func CompressWith(text string, opts Options, lang Language) string {
	if opts.Level == None {
		return text
	}
	if opts.Level == Extreme {
		// Extreme discards the body and keeps only the outline of
		// original lines.
		return outline(text, lang, opts)
	}

	out := text
	if opts.StripLineComments || opts.StripBlockComments || opts.StripDocstrings {
		out = stripComments(out, lang.syntax(), opts.StripLineComments, opts.StripBlockComments, opts.StripDocstrings)
	}

	maxBlank := opts.MaxBlankLines
	if maxBlank < 0 {
		maxBlank = 0
	}
	out = trimAndCollapse(out, maxBlank, opts.CollapseBlankLines)

	if opts.NormalizeSpaces {
		out = normalizeSpaces(out)
	}
	return out
}

// trimAndCollapse drops trailing whitespace on every line and, when
// collapse is set, bounds runs of blank lines at maxBlank.
func trimAndCollapse(text string, maxBlank int, collapse bool) string {
	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if hadTrailingNewline {
		lines = lines[:len(lines)-1]
	}

	kept := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			blanks++
			if collapse && blanks > maxBlank {
				continue
			}
		} else {
			blanks = 0
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	if hadTrailingNewline && len(kept) > 0 {
		out += "\n"
	}
	return out
}

// normalizeSpaces collapses interior runs of spaces and tabs to one
// space. Newlines are never touched.
func normalizeSpaces(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inRun := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' || c == '\t' {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteByte(c)
	}
	return b.String()
}
