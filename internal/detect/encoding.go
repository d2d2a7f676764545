package detect

import (
	"bytes"
	"unicode/utf8"
)

// Encoding identifies the detected text encoding of a buffer.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32LE
	EncodingUTF32BE
	EncodingLatin1
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	case EncodingUTF32LE:
		return "utf-32le"
	case EncodingUTF32BE:
		return "utf-32be"
	case EncodingLatin1:
		return "latin-1"
	default:
		return "unknown"
	}
}

// DetectEncoding distinguishes byte-order-mark variants, plain UTF-8
// and a Latin-1/unknown fallback. The UTF-32 checks run before UTF-16
// because their BOMs share a prefix.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return EncodingUTF32LE
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return EncodingUTF32BE
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	}

	sample := data
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	if utf8.Valid(sample) {
		return EncodingUTF8
	}

	// Not valid UTF-8 but mostly printable single bytes: call it
	// Latin-1 rather than refusing to classify.
	printable := 0
	for _, b := range sample {
		if b >= 0x20 || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	if len(sample) > 0 && printable*10 >= len(sample)*9 {
		return EncodingLatin1
	}
	return EncodingUnknown
}
