package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtin extension table. Lowercase extensions including the dot.
var extensionLanguages = map[string]string{
	".py": "python", ".pyw": "python", ".pyi": "python",
	".js": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".jsx": "jsx",
	".ts":  "typescript", ".mts": "typescript", ".cts": "typescript",
	".tsx": "tsx",
	".rs":  "rust",
	".go":  "go",
	".java": "java",
	".c":    "c", ".h": "c",
	".cpp": "cpp", ".hpp": "cpp", ".cc": "cpp", ".cxx": "cpp", ".hh": "cpp",
	".cs": "csharp",
	".rb": "ruby",
	".php": "php",
	".swift": "swift",
	".kt":    "kotlin", ".kts": "kotlin",
	".scala": "scala",
	".sh":    "bash", ".bash": "bash", ".zsh": "bash",
	".lua": "lua",
	".zig": "zig",
	".ex":  "elixir", ".exs": "elixir",
	".erl": "erlang",
	".hs":  "haskell",
	".ml":  "ocaml", ".mli": "ocaml",
	".r":   "r",
	".pl":  "perl", ".pm": "perl",
	".md": "markdown", ".markdown": "markdown",
	".json": "json",
	".yaml": "yaml", ".yml": "yaml",
	".toml": "toml",
	".xml":  "xml",
	".html": "html", ".htm": "html",
	".css":  "css",
	".scss": "scss", ".sass": "scss",
	".sql":   "sql",
	".proto": "protobuf",
	".tf":    "terraform",
	".vue":   "vue",
	".svelte": "svelte",
	".dart":  "dart",
}

// builtin exact-filename table. Checked before extensions, matching
// how linguist treats Makefile-style names.
var filenameLanguages = map[string]string{
	"Makefile":       "make",
	"makefile":       "make",
	"GNUmakefile":    "make",
	"Dockerfile":     "dockerfile",
	"Containerfile":  "dockerfile",
	"CMakeLists.txt": "cmake",
	"Rakefile":       "ruby",
	"Gemfile":        "ruby",
	"Vagrantfile":    "ruby",
	"BUILD":          "bazel",
	"WORKSPACE":      "bazel",
	"Justfile":       "just",
	"justfile":       "just",
	"go.mod":         "gomod",
	"go.sum":         "gosum",
}

// LanguageForFile resolves a language tag from a path. Exact filename
// matches take precedence over extensions. The second return value is
// false when the file is not recognized.
func LanguageForFile(path string) (string, bool) {
	base := filepath.Base(path)
	if lang, ok := filenameLanguages[base]; ok {
		return lang, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return "", false
	}
	lang, ok := extensionLanguages[ext]
	return lang, ok
}

// languageDef is one entry in a user-supplied language definition
// file, shaped like a slimmed-down languages.yml.
type languageDef struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LoadLanguageDefinitions merges definitions from a YAML file into the
// builtin tables. Later loads win over builtins, letting deployments
// teach the classifier project-specific extensions.
func LoadLanguageDefinitions(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading language definitions %s: %w", path, err)
	}

	var defs map[string]languageDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parsing language definitions %s: %w", path, err)
	}

	for name, def := range defs {
		tag := strings.ToLower(name)
		for _, ext := range def.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensionLanguages[ext] = tag
		}
		for _, fname := range def.Filenames {
			filenameLanguages[fname] = tag
		}
	}
	return nil
}
