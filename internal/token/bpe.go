package token

import (
	"bufio"
	"fmt"
	"strings"
)

// Vocabulary is a token table plus an ordered merge-pair table,
// enabling exact BPE token counting. Merged tokens are looked up as
// real vocabulary strings, so a token produced by one merge keeps
// participating in later, lower-priority merges; synthetic ids
// derived from pair hashes would stall multi-step merges.
type Vocabulary struct {
	ranks  map[string]int
	merges map[mergePair]int
}

type mergePair struct {
	left  string
	right string
}

// NewVocabulary builds a vocabulary from a token-to-id table.
func NewVocabulary(tokens map[string]int) *Vocabulary {
	v := &Vocabulary{
		ranks:  make(map[string]int, len(tokens)),
		merges: make(map[mergePair]int),
	}
	for tok, id := range tokens {
		v.ranks[tok] = id
	}
	return v
}

// AddMerge appends a merge pair; earlier additions have higher
// priority, mirroring a merges.txt file read top to bottom.
func (v *Vocabulary) AddMerge(left, right string) {
	p := mergePair{left, right}
	if _, ok := v.merges[p]; !ok {
		v.merges[p] = len(v.merges)
	}
}

// ParseMerges loads merge pairs from merges.txt-style text: one
// "left right" pair per line, "#" comments and blanks skipped.
func (v *Vocabulary) ParseMerges(text string) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		parts := strings.Fields(s)
		if len(parts) != 2 {
			return fmt.Errorf("merges line %d: expected two fields, got %d", line, len(parts))
		}
		v.AddMerge(parts[0], parts[1])
	}
	return nil
}

// TokenID resolves a token string to its vocabulary id.
func (v *Vocabulary) TokenID(tok string) (int, bool) {
	id, ok := v.ranks[tok]
	return id, ok
}

// CountTokens encodes text and returns the total token count.
func (v *Vocabulary) CountTokens(text string) int {
	n := 0
	for _, chunk := range splitChunks(text) {
		n += len(v.encodeChunk(chunk))
	}
	return n
}

// Encode returns the vocabulary ids for text. Bytes and merged
// strings missing from the token table get id -1; counting is still
// exact because the merge loop operates on strings, not ids.
func (v *Vocabulary) Encode(text string) []int {
	var ids []int
	for _, chunk := range splitChunks(text) {
		for _, tok := range v.encodeChunk(chunk) {
			if id, ok := v.ranks[tok]; ok {
				ids = append(ids, id)
			} else {
				ids = append(ids, -1)
			}
		}
	}
	return ids
}

// encodeChunk seeds one token per byte and repeatedly merges the
// adjacent pair with the lowest merge rank until no known pair
// remains. Worst case is quadratic in the chunk length, which the
// character-class pre-segmentation keeps small.
func (v *Vocabulary) encodeChunk(chunk string) []string {
	if chunk == "" {
		return nil
	}
	tokens := make([]string, len(chunk))
	for i := 0; i < len(chunk); i++ {
		tokens[i] = chunk[i : i+1]
	}

	for len(tokens) > 1 {
		bestIdx := -1
		bestRank := int(^uint(0) >> 1)
		for i := 0; i < len(tokens)-1; i++ {
			if rank, ok := v.merges[mergePair{tokens[i], tokens[i+1]}]; ok && rank < bestRank {
				bestRank = rank
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		merged := tokens[bestIdx] + tokens[bestIdx+1]
		tokens[bestIdx] = merged
		tokens = append(tokens[:bestIdx+1], tokens[bestIdx+2:]...)
	}
	return tokens
}

// splitChunks pre-segments text by character class the way common
// tokenizers do before BPE: letter runs, digit runs, whitespace runs
// and punctuation runs never merge across each other.
func splitChunks(text string) []string {
	var chunks []string
	n := len(text)
	for i := 0; i < n; {
		cls := chunkClass(text[i])
		j := i + 1
		for j < n && chunkClass(text[j]) == cls {
			j++
		}
		chunks = append(chunks, text[i:j])
		i = j
	}
	return chunks
}

// chunkClass collapses the scanner classes into the four BPE
// pre-segmentation groups.
func chunkClass(b byte) charClass {
	switch classify(b) {
	case classLetter:
		return classLetter
	case classDigit:
		return classDigit
	case classSpace, classNewline, classTab, classOther:
		return classSpace
	default:
		return classPunct
	}
}
