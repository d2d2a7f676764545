// Package token estimates per-model token counts from raw text. The
// default path is a single-pass character-class heuristic; loading a
// vocabulary and merge table switches a model to exact BPE counting,
// and well-known encoders can be plugged in as exact backends.
package token

import "strings"

// Model identifies a target language model family. The numeric values
// are part of the boundary ABI and must not be reordered.
type Model uint8

const (
	Claude Model = iota
	GPT4o
	GPT4
	Gemini
	Llama
	CodeLlama
)

// AllModels lists the models reported by EstimateAll, in ABI order.
var AllModels = []Model{Claude, GPT4o, GPT4, Gemini, Llama}

func (m Model) String() string {
	switch m {
	case Claude:
		return "claude"
	case GPT4o:
		return "gpt-4o"
	case GPT4:
		return "gpt-4"
	case Gemini:
		return "gemini"
	case Llama:
		return "llama"
	case CodeLlama:
		return "codellama"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined model ids.
func (m Model) Valid() bool {
	return m <= CodeLlama
}

// ModelFromName resolves common spellings ("gpt4o", "gpt-4o") to a
// Model.
func ModelFromName(name string) (Model, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "claude":
		return Claude, true
	case "gpt4o", "gpt-4o":
		return GPT4o, true
	case "gpt4", "gpt-4", "gpt-3.5-turbo":
		return GPT4, true
	case "gemini":
		return Gemini, true
	case "llama":
		return Llama, true
	case "codellama", "code-llama":
		return CodeLlama, true
	default:
		return Claude, false
	}
}

// CharsPerToken is the average run length of letter characters per
// token for the model's vocabulary. Code-leaning vocabularies sit
// lower.
func (m Model) CharsPerToken() float64 {
	switch m {
	case Claude:
		return 3.5
	case GPT4o:
		return 4.0
	case GPT4:
		return 3.7
	case Gemini:
		return 3.8
	case Llama:
		return 3.5
	case CodeLlama:
		return 3.2
	default:
		return 4.0
	}
}

// DigitsPerToken is the analogous constant for digit runs; most
// vocabularies chunk numbers into two-to-three digit pieces.
func (m Model) DigitsPerToken() float64 {
	switch m {
	case GPT4o:
		return 3.0
	case GPT4, Gemini:
		return 2.8
	default:
		return 2.5
	}
}
