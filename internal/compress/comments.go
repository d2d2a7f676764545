package compress

import "strings"

// stripComments removes comments from text while tracking
// string-literal state, so a comment marker inside a quoted string is
// never treated as a comment. A backslash escapes the following
// character inside a string. Unterminated comments and strings close
// implicitly at end of input.
func stripComments(text string, syn syntax, stripLine, stripBlock, stripDoc bool) string {
	var out strings.Builder
	out.Grow(len(text))

	n := len(text)
	var quote byte      // active string delimiter, 0 when outside
	var tripleCh byte   // active docstring delimiter
	inTriple := false   // inside a triple-quoted block being stripped
	inBlock := false    // inside a block comment
	inLine := false     // inside a line comment

	for i := 0; i < n; {
		c := text[i]

		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				out.WriteByte(c)
			}
			i++

		case inBlock:
			if strings.HasPrefix(text[i:], syn.blockClose) {
				inBlock = false
				i += len(syn.blockClose)
				continue
			}
			// Keep line structure so later blank collapsing sees the
			// comment's footprint as empty lines.
			if c == '\n' {
				out.WriteByte(c)
			}
			i++

		case inTriple:
			if c == tripleCh && isTriple(text[i:], tripleCh) {
				inTriple = false
				i += 3
				continue
			}
			if c == '\n' {
				out.WriteByte(c)
			}
			i++

		case quote != 0:
			out.WriteByte(c)
			if c == '\\' && i+1 < n {
				out.WriteByte(text[i+1])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++

		default:
			if stripDoc && syn.tripleQuotes && (c == '"' || c == '\'') && isTriple(text[i:], c) {
				inTriple = true
				tripleCh = c
				i += 3
				continue
			}
			if stripBlock && syn.blockOpen != "" && strings.HasPrefix(text[i:], syn.blockOpen) {
				inBlock = true
				i += len(syn.blockOpen)
				continue
			}
			if stripLine && startsLineComment(text[i:], syn) {
				inLine = true
				i++
				continue
			}
			if isQuoteByte(c, syn.quotes) {
				quote = c
				out.WriteByte(c)
				i++
				continue
			}
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

func startsLineComment(rest string, syn syntax) bool {
	for _, lc := range syn.lineComments {
		if strings.HasPrefix(rest, lc) {
			return true
		}
	}
	return false
}

func isQuoteByte(c byte, quotes []byte) bool {
	for _, q := range quotes {
		if c == q {
			return true
		}
	}
	return false
}

func isTriple(rest string, q byte) bool {
	return len(rest) >= 3 && rest[0] == q && rest[1] == q && rest[2] == q
}
