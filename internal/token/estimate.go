package token

import "math"

// charClass buckets bytes for both the heuristic scanner and the BPE
// pre-segmentation. Multi-byte UTF-8 sequences count as letters.
type charClass int

const (
	classLetter charClass = iota
	classDigit
	classSpace
	classNewline
	classTab
	classPunct
	classOther
)

func classify(b byte) charClass {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= 0x80:
		return classLetter
	case b >= '0' && b <= '9':
		return classDigit
	case b == ' ':
		return classSpace
	case b == '\n':
		return classNewline
	case b == '\t':
		return classTab
	case b == '\r':
		return classOther
	default:
		return classPunct
	}
}

// twoCharOps are operators most vocabularies encode as one token.
var twoCharOps = map[string]struct{}{
	"==": {}, "!=": {}, "<=": {}, ">=": {},
	"&&": {}, "||": {}, "++": {}, "--": {},
	"->": {}, "=>": {},
}

// Estimate approximates the token count of text for a model in one
// pass. Deterministic: same text and model always give the same
// count. Empty input is zero; any non-empty input is at least one.
func Estimate(text string, m Model) uint32 {
	if text == "" {
		return 0
	}

	cpt := m.CharsPerToken()
	dpt := m.DigitsPerToken()
	total := 0.0

	n := len(text)
	for i := 0; i < n; {
		switch classify(text[i]) {
		case classLetter:
			j := i + 1
			for j < n && classify(text[j]) == classLetter {
				j++
			}
			// Short words are almost always a single token; longer
			// runs split at the model's average width.
			if j-i <= 3 {
				total++
			} else {
				total += float64(j-i) / cpt
			}
			i = j

		case classDigit:
			j := i + 1
			for j < n && classify(text[j]) == classDigit {
				j++
			}
			total += float64(j-i) / dpt
			i = j

		case classSpace:
			// Most vocabularies fuse a leading space into the next
			// word, so that space is nearly free.
			if i+1 < n && classify(text[i+1]) == classLetter {
				total += 0.25
			} else {
				total += 0.5
			}
			i++

		case classNewline:
			j := i + 1
			for j < n && text[j] == '\n' {
				j++
			}
			// Repeated blank lines compress; cap the run.
			run := j - i
			if run > 3 {
				run = 3
			}
			total += float64(run)
			i = j

		case classTab:
			total += 0.5
			i++

		case classOther:
			i++

		default: // punctuation and operators
			if i+1 < n {
				if _, ok := twoCharOps[text[i:i+2]]; ok {
					total++
					i += 2
					continue
				}
			}
			total++
			i++
		}
	}

	count := uint32(math.Ceil(total))
	if count < 1 {
		count = 1
	}
	return count
}

// Estimator resolves counts through the best available path per
// model: a loaded vocabulary (exact BPE), a plugged-in encoder
// backend, or the heuristic.
type Estimator struct {
	vocab    *Vocabulary
	backends map[Model]Counter
}

// NewEstimator returns a heuristic-only estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// WithVocabulary installs a vocabulary/merge table used for every
// model. Exact counting is substantially slower than the heuristic;
// callers opt in when accuracy beats throughput.
func (e *Estimator) WithVocabulary(v *Vocabulary) *Estimator {
	e.vocab = v
	return e
}

// WithBackend installs an exact encoder for one model.
func (e *Estimator) WithBackend(m Model, c Counter) *Estimator {
	if e.backends == nil {
		e.backends = make(map[Model]Counter)
	}
	e.backends[m] = c
	return e
}

// Close releases any plugged-in encoder resources.
func (e *Estimator) Close() {
	for _, c := range e.backends {
		c.Close()
	}
	e.backends = nil
}

// Estimate returns the count and confidence for one model.
func (e *Estimator) Estimate(text string, m Model) Count {
	if text == "" {
		return Count{Tokens: 0, Confidence: 1.0}
	}
	if e.vocab != nil {
		return Count{Tokens: uint32(e.vocab.CountTokens(text)), Confidence: 1.0}
	}
	if c, ok := e.backends[m]; ok {
		if n, err := c.CountTokens(text); err == nil {
			return Count{Tokens: uint32(n), Confidence: 1.0}
		}
		// A failing backend degrades to the heuristic rather than
		// surfacing an error for a pure counting call.
	}
	return Count{Tokens: Estimate(text, m), Confidence: heuristicConfidence}
}

// EstimateAll counts for every reported model.
func (e *Estimator) EstimateAll(text string) Counts {
	return Counts{
		Claude: e.Estimate(text, Claude).Tokens,
		GPT4o:  e.Estimate(text, GPT4o).Tokens,
		GPT4:   e.Estimate(text, GPT4).Tokens,
		Gemini: e.Estimate(text, Gemini).Tokens,
		Llama:  e.Estimate(text, Llama).Tokens,
	}
}
