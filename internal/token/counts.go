package token

// Count is one model's token count plus how much to trust it:
// 1.0 means an exact encoder produced it, anything lower is the
// heuristic estimate.
type Count struct {
	Tokens     uint32
	Confidence float64
}

// heuristicConfidence reflects the observed accuracy band of the
// character-class estimator against real encoders.
const heuristicConfidence = 0.85

// Counts carries one count per reported model. Field order matches
// the boundary ABI record.
type Counts struct {
	Claude uint32
	GPT4o  uint32
	GPT4   uint32
	Gemini uint32
	Llama  uint32
}

// Get returns the count for a model; CodeLlama shares the Llama slot.
func (c Counts) Get(m Model) uint32 {
	switch m {
	case Claude:
		return c.Claude
	case GPT4o:
		return c.GPT4o
	case GPT4:
		return c.GPT4
	case Gemini:
		return c.Gemini
	default:
		return c.Llama
	}
}

// Add accumulates other into c.
func (c *Counts) Add(other Counts) {
	c.Claude += other.Claude
	c.GPT4o += other.GPT4o
	c.GPT4 += other.GPT4
	c.Gemini += other.Gemini
	c.Llama += other.Llama
}
