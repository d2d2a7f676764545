package compress

import "strings"

// importPrefixes and definitionPrefixes drive the extreme level: a
// line whose trimmed form starts with one of these survives, nothing
// else does.
var importPrefixes = map[Language][]string{
	Python:     {"import ", "from "},
	JavaScript: {"import ", "export ", "const ", "require("},
	TypeScript: {"import ", "export "},
	Rust:       {"use ", "extern crate ", "mod "},
	Go:         {"package ", "import ", "import("},
	Java:       {"import ", "package "},
	C:          {"#include"},
	CPP:        {"#include", "using namespace "},
	Ruby:       {"require ", "require_relative "},
	Unknown:    {"import ", "#include", "use ", "from "},
}

var definitionPrefixes = map[Language][]string{
	Python:     {"def ", "async def ", "class "},
	JavaScript: {"function ", "async function ", "class "},
	TypeScript: {"function ", "async function ", "class ", "interface ", "type ", "enum "},
	Rust:       {"fn ", "struct ", "enum ", "trait ", "impl ", "type ", "mod "},
	Go:         {"func ", "type "},
	Java:       {"class ", "interface ", "enum "},
	Ruby:       {"def ", "class ", "module "},
}

// modifierPrefixes are stripped before definition matching so
// "pub fn" and "public static class" still classify.
var modifierPrefixes = []string{
	"pub(crate) ", "pub ", "public ", "private ", "protected ",
	"static ", "final ", "abstract ", "export ", "default ", "async ",
}

// outline keeps only lines classified as imports or definition
// openers, verbatim. Everything kept is a subset of the original
// lines.
func outline(text string, lang Language, opts Options) string {
	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if hadTrailingNewline {
		lines = lines[:len(lines)-1]
	}

	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if opts.PreserveImports && isImportLine(trimmed, lang) {
			kept = append(kept, line)
			continue
		}
		if opts.PreserveSignatures && isDefinitionLine(trimmed, lang) {
			kept = append(kept, line)
		}
	}

	out := strings.Join(kept, "\n")
	if hadTrailingNewline && len(kept) > 0 {
		out += "\n"
	}
	return out
}

func isImportLine(trimmed string, lang Language) bool {
	for _, p := range importPrefixes[lang] {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

func isDefinitionLine(trimmed string, lang Language) bool {
	stripped := stripModifiers(trimmed)
	for _, p := range definitionPrefixes[lang] {
		if strings.HasPrefix(stripped, p) {
			return true
		}
	}
	switch lang {
	case Java, C, CPP, JavaScript, TypeScript, Unknown:
		// Curly-brace languages: a definition opener has a parameter
		// list and opens a block on the same line.
		return strings.Contains(trimmed, "(") && strings.HasSuffix(trimmed, "{")
	}
	return false
}

func stripModifiers(s string) string {
	for changed := true; changed; {
		changed = false
		for _, m := range modifierPrefixes {
			if strings.HasPrefix(s, m) {
				s = s[len(m):]
				changed = true
			}
		}
	}
	return s
}
