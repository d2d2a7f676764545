// C ABI for embedding the engine from other languages. Build with
// -buildmode=c-shared or -buildmode=c-archive; the generated header
// declares every infiniloom_* symbol below.
//
// Ownership rules: strings returned inside infiniloom_file_info are
// allocated here and released only by infiniloom_free_file_info. The
// pointer from infiniloom_get_error stays valid until the next call on
// the same context. Callers own every buffer they pass in.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	uint32_t file_count;
	uint64_t total_bytes;
	uint64_t total_tokens;
	int64_t  scan_time_ms;
	int32_t  error_code;
} infiniloom_scan_result;

typedef struct {
	const char* path;
	uint32_t    path_len;
	const char* relative_path;
	uint32_t    relative_path_len;
	uint64_t    size_bytes;
	uint32_t    token_count_claude;
	uint32_t    token_count_gpt4o;
	const char* language;
	uint8_t     language_len;
	float       importance;
} infiniloom_file_info;

typedef struct {
	uint32_t claude;
	uint32_t gpt4o;
	uint32_t gpt4;
	uint32_t gemini;
	uint32_t llama;
} infiniloom_token_counts;

typedef struct {
	uint8_t level;
	bool    remove_comments;
	bool    remove_empty_lines;
	bool    preserve_imports;
} infiniloom_compression_config;
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/homotopylabs/infiniloom/internal/boundary"
	"github.com/homotopylabs/infiniloom/internal/detect"
	"github.com/homotopylabs/infiniloom/internal/token"
)

// handleState pairs the context with its C-side error buffer so the
// error pointer can outlive the Go call that produced it.
type handleState struct {
	ctx    *boundary.Context
	errBuf *C.char
}

func resolve(p unsafe.Pointer) *handleState {
	if p == nil {
		return nil
	}
	h := cgo.Handle(uintptr(p))
	st, ok := h.Value().(*handleState)
	if !ok {
		return nil
	}
	return st
}

func goBytes(data *C.uint8_t, n C.size_t) []byte {
	if data == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(n))
}

//export infiniloom_init
func infiniloom_init() unsafe.Pointer {
	h := cgo.NewHandle(&handleState{ctx: boundary.NewContext()})
	return unsafe.Pointer(uintptr(h))
}

//export infiniloom_free
func infiniloom_free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	h := cgo.Handle(uintptr(p))
	if st, ok := h.Value().(*handleState); ok {
		st.ctx.Close()
		if st.errBuf != nil {
			C.free(unsafe.Pointer(st.errBuf))
			st.errBuf = nil
		}
	}
	h.Delete()
}

//export infiniloom_get_error
func infiniloom_get_error(p unsafe.Pointer) *C.char {
	st := resolve(p)
	if st == nil {
		return nil
	}
	if st.errBuf != nil {
		C.free(unsafe.Pointer(st.errBuf))
	}
	st.errBuf = C.CString(st.ctx.LastError())
	return st.errBuf
}

//export infiniloom_scan
func infiniloom_scan(p unsafe.Pointer, path *C.char, includeHidden C.bool, respectGitignore C.bool, maxFileSize C.uint64_t) C.infiniloom_scan_result {
	st := resolve(p)
	if st == nil || path == nil {
		return C.infiniloom_scan_result{error_code: C.int32_t(boundary.CodeInvalid)}
	}
	res := st.ctx.Scan(C.GoString(path), bool(includeHidden), bool(respectGitignore), uint64(maxFileSize))
	return C.infiniloom_scan_result{
		file_count:   C.uint32_t(res.FileCount),
		total_bytes:  C.uint64_t(res.TotalBytes),
		total_tokens: C.uint64_t(res.TotalTokens),
		scan_time_ms: C.int64_t(res.ScanTimeMS),
		error_code:   C.int32_t(res.Code),
	}
}

//export infiniloom_get_file_count
func infiniloom_get_file_count(p unsafe.Pointer) C.uint32_t {
	st := resolve(p)
	if st == nil {
		return 0
	}
	return C.uint32_t(st.ctx.FileCount())
}

//export infiniloom_get_file
func infiniloom_get_file(p unsafe.Pointer, index C.uint32_t, out *C.infiniloom_file_info) C.bool {
	st := resolve(p)
	if st == nil || out == nil {
		return C.bool(false)
	}
	v, ok := st.ctx.File(uint32(index))
	if !ok {
		return C.bool(false)
	}

	out.path = C.CString(v.Path)
	out.path_len = C.uint32_t(len(v.Path))
	out.relative_path = C.CString(v.RelPath)
	out.relative_path_len = C.uint32_t(len(v.RelPath))
	out.size_bytes = C.uint64_t(v.Size)
	out.token_count_claude = C.uint32_t(v.TokensClaude)
	out.token_count_gpt4o = C.uint32_t(v.TokensGPT4o)
	if v.Language != "" {
		out.language = C.CString(v.Language)
		out.language_len = C.uint8_t(len(v.Language))
	} else {
		out.language = nil
		out.language_len = 0
	}
	out.importance = C.float(v.Importance)
	return C.bool(true)
}

//export infiniloom_free_file_info
func infiniloom_free_file_info(info *C.infiniloom_file_info) {
	if info == nil {
		return
	}
	if info.path != nil {
		C.free(unsafe.Pointer(info.path))
		info.path = nil
	}
	if info.relative_path != nil {
		C.free(unsafe.Pointer(info.relative_path))
		info.relative_path = nil
	}
	if info.language != nil {
		C.free(unsafe.Pointer(info.language))
		info.language = nil
	}
}

//export infiniloom_count_tokens
func infiniloom_count_tokens(p unsafe.Pointer, text *C.uint8_t, textLen C.size_t, model C.uint8_t) C.uint32_t {
	st := resolve(p)
	if st == nil {
		return 0
	}
	return C.uint32_t(st.ctx.CountTokens(goBytes(text, textLen), uint8(model)))
}

//export infiniloom_count_tokens_all
func infiniloom_count_tokens_all(p unsafe.Pointer, text *C.uint8_t, textLen C.size_t, out *C.infiniloom_token_counts) {
	st := resolve(p)
	if st == nil || out == nil {
		return
	}
	counts := st.ctx.CountTokensAll(goBytes(text, textLen))
	out.claude = C.uint32_t(counts.Claude)
	out.gpt4o = C.uint32_t(counts.GPT4o)
	out.gpt4 = C.uint32_t(counts.GPT4)
	out.gemini = C.uint32_t(counts.Gemini)
	out.llama = C.uint32_t(counts.Llama)
}

func goConfig(cfg C.infiniloom_compression_config) boundary.CompressConfig {
	return boundary.CompressConfig{
		Level:            uint8(cfg.level),
		RemoveComments:   bool(cfg.remove_comments),
		RemoveEmptyLines: bool(cfg.remove_empty_lines),
		PreserveImports:  bool(cfg.preserve_imports),
	}
}

//export infiniloom_compress
func infiniloom_compress(p unsafe.Pointer, text *C.uint8_t, textLen C.size_t, cfg C.infiniloom_compression_config, language C.uint8_t, outBuffer *C.uint8_t, bufferSize C.size_t) C.int64_t {
	st := resolve(p)
	if st == nil || outBuffer == nil {
		return C.int64_t(boundary.CodeInvalid)
	}
	buf := goBytes(outBuffer, bufferSize)
	return C.int64_t(st.ctx.Compress(goBytes(text, textLen), goConfig(cfg), uint8(language), buf))
}

//export infiniloom_version
func infiniloom_version() *C.char {
	return versionString
}

var versionString = C.CString(boundary.Version)

// ---------------------------------------------------------------------------
// Context-free byte surface. No filesystem, no handle: pointer and
// length in, caller buffer out. Useful for hosts that only want the
// estimator or the compressor.
// ---------------------------------------------------------------------------

//export infiniloom_estimate_bytes
func infiniloom_estimate_bytes(text *C.uint8_t, textLen C.size_t, model C.uint8_t) C.uint32_t {
	m := token.Model(model)
	if !m.Valid() {
		m = token.Claude
	}
	return C.uint32_t(token.Estimate(string(goBytes(text, textLen)), m))
}

//export infiniloom_is_binary
func infiniloom_is_binary(data *C.uint8_t, dataLen C.size_t) C.bool {
	return C.bool(detect.IsBinary(goBytes(data, dataLen)))
}

//export infiniloom_language_for_filename
func infiniloom_language_for_filename(name *C.char, outBuffer *C.char, bufferSize C.size_t) C.int32_t {
	if name == nil || outBuffer == nil {
		return C.int32_t(boundary.CodeInvalid)
	}
	lang, ok := detect.LanguageForFile(C.GoString(name))
	if !ok {
		lang = ""
	}
	if C.size_t(len(lang)+1) > bufferSize {
		return C.int32_t(boundary.CodeBufferTooSmall)
	}
	out := unsafe.Slice((*byte)(unsafe.Pointer(outBuffer)), int(bufferSize))
	copy(out, lang)
	out[len(lang)] = 0
	return C.int32_t(len(lang))
}

//export infiniloom_compress_bytes
func infiniloom_compress_bytes(text *C.uint8_t, textLen C.size_t, cfg C.infiniloom_compression_config, language C.uint8_t, outBuffer *C.uint8_t, bufferSize C.size_t) C.int64_t {
	if outBuffer == nil {
		return C.int64_t(boundary.CodeInvalid)
	}
	buf := goBytes(outBuffer, bufferSize)
	return C.int64_t(boundary.CompressBytes(goBytes(text, textLen), goConfig(cfg), uint8(language), buf))
}

func main() {}
