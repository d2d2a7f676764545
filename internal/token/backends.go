package token

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Counter is an exact token-counting backend.
type Counter interface {
	CountTokens(text string) (int, error)
	Close()
}

// --- tiktoken (OpenAI encodings) ---

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter resolves the BPE encoding for an OpenAI model
// name ("gpt-4o", "gpt-4", ...).
func NewTiktokenCounter(model string) (Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("resolving tiktoken encoding for %s: %w", model, err)
	}
	return &tiktokenCounter{enc: enc}, nil
}

func (c *tiktokenCounter) CountTokens(text string) (int, error) {
	return len(c.enc.EncodeOrdinary(text)), nil
}

func (c *tiktokenCounter) Close() {}

// --- HuggingFace tokenizer.json ---

type hfCounter struct {
	tk *hf.Tokenizer
}

// NewHFCounterFromFile loads a tokenizer.json from disk, covering
// models whose vocabulary ships as a HuggingFace tokenizer file.
func NewHFCounterFromFile(path string) (Counter, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer file %s: %w", path, err)
	}
	return &hfCounter{tk: tk}, nil
}

func (c *hfCounter) CountTokens(text string) (int, error) {
	en, err := c.tk.EncodeSingle(text)
	if err != nil {
		return 0, fmt.Errorf("encoding text: %w", err)
	}
	return len(en.Tokens), nil
}

func (c *hfCounter) Close() {}

// --- encoder cache ---

// Building a BPE encoder parses a multi-megabyte vocabulary, so
// instances are cached per model name. Cached counters are shared;
// their Close is a no-op.
const encoderCacheSize = 8

var encoderCache, _ = lru.New[string, Counter](encoderCacheSize)

// CachedTiktokenCounter returns a shared tiktoken counter for the
// model, constructing it on first use.
func CachedTiktokenCounter(model string) (Counter, error) {
	if c, ok := encoderCache.Get(model); ok {
		return c, nil
	}
	c, err := NewTiktokenCounter(model)
	if err != nil {
		return nil, err
	}
	encoderCache.Add(model, c)
	return c, nil
}
