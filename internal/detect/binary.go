// Package detect classifies raw file content: binary versus text,
// text encoding, and source language from a file name. Everything in
// this package is pure and does no I/O.
package detect

import (
	"bytes"
	"unicode/utf8"
)

// sampleLimit bounds how much of a buffer the heuristics inspect.
// 8KB of leading bytes is enough to classify any real-world file.
const sampleLimit = 8192

// signature is a magic-number prefix identifying a known binary
// format.
type signature struct {
	magic []byte
	kind  string
}

var signatures = []signature{
	// Images
	{[]byte{0x89, 'P', 'N', 'G'}, "png"},
	{[]byte{0xFF, 0xD8, 0xFF}, "jpeg"},
	{[]byte("GIF87a"), "gif"},
	{[]byte("GIF89a"), "gif"},
	{[]byte("BM"), "bmp"},
	{[]byte("RIFF"), "riff"},
	{[]byte{0x00, 0x00, 0x01, 0x00}, "ico"},

	// Archives
	{[]byte{'P', 'K', 0x03, 0x04}, "zip"},
	{[]byte{0x1F, 0x8B}, "gzip"},
	{[]byte{'B', 'Z', 'h'}, "bzip2"},
	{[]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, "xz"},
	{[]byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}, "7z"},
	{[]byte("Rar!"), "rar"},
	{[]byte{0x28, 0xB5, 0x2F, 0xFD}, "zstd"},

	// Executables and object code
	{[]byte{0x7F, 'E', 'L', 'F'}, "elf"},
	{[]byte("MZ"), "pe"},
	{[]byte{0xFE, 0xED, 0xFA, 0xCE}, "macho"},
	{[]byte{0xFE, 0xED, 0xFA, 0xCF}, "macho"},
	{[]byte{0xCF, 0xFA, 0xED, 0xFE}, "macho"},
	{[]byte{0xCA, 0xFE, 0xBA, 0xBE}, "macho-fat"},
	{[]byte{0x00, 'a', 's', 'm'}, "wasm"},

	// Fonts
	{[]byte("wOFF"), "woff"},
	{[]byte("wOF2"), "woff2"},
	{[]byte("OTTO"), "otf"},
	{[]byte{0x00, 0x01, 0x00, 0x00}, "ttf"},

	// Documents and databases
	{[]byte("%PDF"), "pdf"},
	{[]byte("SQLite format 3\x00"), "sqlite"},

	// Media
	{[]byte("ID3"), "mp3"},
	{[]byte("OggS"), "ogg"},
	{[]byte("fLaC"), "flac"},
}

// IsBinary reports whether data looks like binary rather than text.
// Checks run in order of cost: known magic numbers, any null byte in
// the leading sample (conclusive), a >10% ratio of disallowed control
// characters, and finally UTF-8 validity for samples carrying high
// bytes.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.magic) {
			return true
		}
	}

	sample := data
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	control := 0
	highBytes := false
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
		if b >= 0x80 {
			highBytes = true
		}
	}
	if control*10 > len(sample) {
		return true
	}

	if highBytes && !validSampleUTF8(sample, len(sample) == len(data)) {
		return true
	}
	return false
}

// validSampleUTF8 checks multi-byte validity. When the sample was
// truncated, a partial rune at the cut is not held against the file.
func validSampleUTF8(sample []byte, complete bool) bool {
	if !complete {
		// Drop up to three trailing continuation bytes plus one
		// possible leader so a mid-rune cut doesn't look invalid.
		end := len(sample)
		for i := 0; i < 3 && end > 0 && sample[end-1]&0xC0 == 0x80; i++ {
			end--
		}
		if end > 0 && sample[end-1] >= 0xC0 {
			end--
		}
		sample = sample[:end]
	}
	return utf8.Valid(sample)
}

// SignatureKind returns the name of the recognized binary format, or
// "" when no magic number matches.
func SignatureKind(data []byte) string {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.kind
		}
	}
	return ""
}
