// Package compress applies graduated lossy reduction to source text,
// from whitespace cleanup through comment stripping down to an
// imports-and-signatures outline.
package compress

import "strings"

// Language selects comment syntax and outline patterns. The numeric
// values are part of the boundary ABI and must not be reordered.
type Language uint8

const (
	Python     Language = 0
	JavaScript Language = 1
	TypeScript Language = 2
	Rust       Language = 3
	Go         Language = 4
	Java       Language = 5
	C          Language = 6
	CPP        Language = 7
	Ruby       Language = 8
	Unknown    Language = 255
)

// LanguageFromString maps detector tags and common aliases to a
// Language.
func LanguageFromString(s string) Language {
	switch strings.ToLower(s) {
	case "python", "py":
		return Python
	case "javascript", "js", "jsx":
		return JavaScript
	case "typescript", "ts", "tsx":
		return TypeScript
	case "rust", "rs":
		return Rust
	case "go", "golang":
		return Go
	case "java":
		return Java
	case "c":
		return C
	case "cpp", "c++":
		return CPP
	case "ruby", "rb":
		return Ruby
	default:
		return Unknown
	}
}

func (l Language) String() string {
	switch l {
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case Rust:
		return "rust"
	case Go:
		return "go"
	case Java:
		return "java"
	case C:
		return "c"
	case CPP:
		return "cpp"
	case Ruby:
		return "ruby"
	default:
		return "unknown"
	}
}

// syntax describes how a language writes comments and strings.
type syntax struct {
	lineComments []string
	blockOpen    string
	blockClose   string
	// tripleQuotes marks languages with docstring-style quoted
	// blocks.
	tripleQuotes bool
	// quotes are the string delimiters whose interiors must never be
	// scanned for comment markers.
	quotes []byte
}

func (l Language) syntax() syntax {
	switch l {
	case Python:
		return syntax{
			lineComments: []string{"#"},
			tripleQuotes: true,
			quotes:       []byte{'"', '\''},
		}
	case Ruby:
		return syntax{
			lineComments: []string{"#"},
			quotes:       []byte{'"', '\''},
		}
	case Go:
		return syntax{
			lineComments: []string{"//"},
			blockOpen:    "/*",
			blockClose:   "*/",
			quotes:       []byte{'"', '\'', '`'},
		}
	case JavaScript, TypeScript:
		return syntax{
			lineComments: []string{"//"},
			blockOpen:    "/*",
			blockClose:   "*/",
			quotes:       []byte{'"', '\'', '`'},
		}
	case Rust, Java, C, CPP:
		return syntax{
			lineComments: []string{"//"},
			blockOpen:    "/*",
			blockClose:   "*/",
			quotes:       []byte{'"', '\''},
		}
	default:
		// Conservative default: C-style comments, double and single
		// quoted strings.
		return syntax{
			lineComments: []string{"//", "#"},
			blockOpen:    "/*",
			blockClose:   "*/",
			quotes:       []byte{'"', '\''},
		}
	}
}
