package crawl

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/fwojciec/sieve"
)

// tokenPattern matches maximal runs of ASCII letters and digits.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// Tokenizer turns text into token frequencies.
// Text is read word by word and tokenized in blocks of roughly BlockLimit
// bytes, so memory use is bounded by the block size and the vocabulary
// rather than by the input size.
type Tokenizer struct {
	stopWords  map[string]struct{}
	blockLimit int
}

// NewTokenizer creates a Tokenizer discarding the given stop-words.
// A non-positive blockLimit selects sieve.DefaultBlockLimit.
func NewTokenizer(stopWords []string, blockLimit int) *Tokenizer {
	if blockLimit <= 0 {
		blockLimit = sieve.DefaultBlockLimit
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopWords: set, blockLimit: blockLimit}
}

// Tokenize reads r to the end and returns the token frequencies.
// Returns EUNREADABLE if r fails; no partial result is returned.
func (t *Tokenizer) Tokenize(r io.Reader) (sieve.TokenFrequency, error) {
	sc := bufio.NewScanner(r)
	// Words longer than the block limit are kept whole.
	sc.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	sc.Split(bufio.ScanWords)

	freq := sieve.TokenFrequency{}
	var block []string
	size := 0
	for sc.Scan() {
		word := sc.Text()
		block = append(block, word)
		size += len(word) + 1
		if size >= t.blockLimit {
			freq.Accumulate(t.tokens(block))
			block = block[:0]
			size = 0
		}
	}
	if err := sc.Err(); err != nil {
		return nil, sieve.Errorf(sieve.EUNREADABLE, "read text: %v", err)
	}
	if len(block) > 0 {
		freq.Accumulate(t.tokens(block))
	}
	return freq, nil
}

// TokenizeString is a convenience wrapper around Tokenize.
func (t *Tokenizer) TokenizeString(text string) (sieve.TokenFrequency, error) {
	return t.Tokenize(strings.NewReader(text))
}

// tokens extracts the lowercased non-stop-word tokens of a block of words.
func (t *Tokenizer) tokens(words []string) []string {
	var out []string
	for _, word := range words {
		for _, m := range tokenPattern.FindAllString(word, -1) {
			tok := strings.ToLower(m)
			if _, stop := t.stopWords[tok]; stop {
				continue
			}
			out = append(out, tok)
		}
	}
	return out
}
