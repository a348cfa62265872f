package dataset

// Vocab is a token/id mapping built from the loaded corpus. Id 0 is reserved
// for unknown tokens.
type Vocab struct {
	ids    map[string]int
	tokens []string
}

const unkToken = "[unk]"

// NewVocab creates a vocabulary holding only the unknown token.
func NewVocab() *Vocab {
	return &Vocab{
		ids:    map[string]int{unkToken: 0},
		tokens: []string{unkToken},
	}
}

// Add registers tokens in first-seen order.
func (v *Vocab) Add(tokens []string) {
	for _, tok := range tokens {
		if _, ok := v.ids[tok]; !ok {
			v.ids[tok] = len(v.tokens)
			v.tokens = append(v.tokens, tok)
		}
	}
}

// Encode maps tokens to ids; unknown tokens map to 0.
func (v *Vocab) Encode(tokens []string) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		out[i] = v.ids[tok]
	}
	return out
}

// Decode maps ids back to tokens; out-of-range ids decode to the unknown
// token.
func (v *Vocab) Decode(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(v.tokens) {
			out[i] = unkToken
			continue
		}
		out[i] = v.tokens[id]
	}
	return out
}

// Size is the number of known tokens including the unknown slot.
func (v *Vocab) Size() int { return len(v.tokens) }
