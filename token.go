package sieve

// TokenFrequency maps a lowercased alphanumeric token to the number of
// times it occurs in one document. Counts are always positive.
type TokenFrequency map[string]int

// CountOnce returns a new TokenFrequency counting the given tokens.
func CountOnce(tokens []string) TokenFrequency {
	f := make(TokenFrequency, len(tokens))
	f.Accumulate(tokens)
	return f
}

// Accumulate adds the given tokens to the receiver's counts.
// It is used while a document is streamed through the tokenizer in blocks.
func (f TokenFrequency) Accumulate(tokens []string) {
	for _, tok := range tokens {
		f[tok]++
	}
}

// Distinct returns the number of distinct tokens.
func (f TokenFrequency) Distinct() int {
	return len(f)
}

// Total returns the sum of all token counts.
func (f TokenFrequency) Total() int {
	var n int
	for _, c := range f {
		n += c
	}
	return n
}

// Similarity returns the weighted multiset similarity of two documents.
// The shared weight of a token is the smaller of its two counts; the score
// is the shared weight divided by the combined weight minus the shared
// weight. The result lies in [0, 1] and does not depend on argument order.
func Similarity(a, b TokenFrequency) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var shared int
	for tok, ca := range small {
		if cb, ok := large[tok]; ok {
			shared += min(ca, cb)
		}
	}

	union := a.Total() + b.Total() - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
