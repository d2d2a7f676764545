package detect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBinaryNullByte(t *testing.T) {
	assert.True(t, IsBinary([]byte("Hello\x00World")))
	assert.True(t, IsBinary([]byte{0, 1, 2, 3}))
	assert.False(t, IsBinary([]byte("Hello, World!")))
	assert.False(t, IsBinary(nil))
}

func TestIsBinarySignatures(t *testing.T) {
	assert.True(t, IsBinary([]byte{0x7F, 'E', 'L', 'F', 2, 1, 1}), "ELF header")
	assert.True(t, IsBinary([]byte{0x89, 'P', 'N', 'G', '\r', '\n'}), "PNG header")
	assert.True(t, IsBinary([]byte{0xFF, 0xD8, 0xFF, 0xE0}), "JPEG header")
	assert.True(t, IsBinary(append([]byte("PK\x03\x04"), []byte("payload")...)), "ZIP header")
	assert.True(t, IsBinary([]byte("%PDF-1.7\n")), "PDF header")
	assert.True(t, IsBinary([]byte{0x1F, 0x8B, 0x08}), "gzip header")
}

func TestIsBinaryControlRatio(t *testing.T) {
	// >10% of the sample is control characters outside tab/newline/CR.
	data := append([]byte("abc"), bytes.Repeat([]byte{0x01}, 10)...)
	assert.True(t, IsBinary(data))

	// Tabs, newlines and carriage returns are fine.
	assert.False(t, IsBinary([]byte("a\tb\r\nc\td\r\ne\n")))
}

func TestIsBinaryUTF8(t *testing.T) {
	assert.False(t, IsBinary([]byte("héllo wörld — ünïcode")))
	assert.False(t, IsBinary([]byte("日本語のテキスト")))

	// High bytes that are not valid UTF-8 sequences.
	assert.True(t, IsBinary([]byte{'a', 'b', 0xC3, 0x28, 0xA0, 0xA1, 'c'}))
}

func TestSignatureKind(t *testing.T) {
	assert.Equal(t, "elf", SignatureKind([]byte{0x7F, 'E', 'L', 'F'}))
	assert.Equal(t, "sqlite", SignatureKind([]byte("SQLite format 3\x00more")))
	assert.Equal(t, "", SignatureKind([]byte("plain text")))
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Encoding
	}{
		{"utf8", []byte("plain ascii"), EncodingUTF8},
		{"utf8 multibyte", []byte("héllo"), EncodingUTF8},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, EncodingUTF8BOM},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0}, EncodingUTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h'}, EncodingUTF16BE},
		{"utf32le", []byte{0xFF, 0xFE, 0, 0}, EncodingUTF32LE},
		{"utf32be", []byte{0, 0, 0xFE, 0xFF}, EncodingUTF32BE},
		{"latin1", []byte{'c', 'a', 'f', 0xE9, ' ', 'a', 'u', ' ', 'l', 'a', 'i', 't'}, EncodingLatin1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEncoding(tt.data))
		})
	}
}

func TestLanguageForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"main.py", "python", true},
		{"src/lib.rs", "rust", true},
		{"a/b/c/index.tsx", "tsx", true},
		{"server.go", "go", true},
		{"Makefile", "make", true},
		{"deep/path/Dockerfile", "dockerfile", true},
		{"go.mod", "gomod", true},
		{"README", "", false},
		{"data.unknownext", "", false},
	}
	for _, tt := range tests {
		lang, ok := LanguageForFile(tt.path)
		assert.Equal(t, tt.ok, ok, "path %q", tt.path)
		assert.Equal(t, tt.want, lang, "path %q", tt.path)
	}
}

func TestLoadLanguageDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "languages.yml")
	content := `
Gleam:
  type: programming
  extensions:
    - ".gleam"
Custom:
  type: data
  filenames:
    - "PIPELINE"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadLanguageDefinitions(path))

	lang, ok := LanguageForFile("app.gleam")
	assert.True(t, ok)
	assert.Equal(t, "gleam", lang)

	lang, ok = LanguageForFile("ci/PIPELINE")
	assert.True(t, ok)
	assert.Equal(t, "custom", lang)
}

func TestLoadLanguageDefinitionsMissing(t *testing.T) {
	err := LoadLanguageDefinitions(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
