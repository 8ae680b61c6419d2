package mock

import "github.com/fwojciec/sieve"

var _ sieve.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of sieve.TextExtractor.
type TextExtractor struct {
	ExtractFn func(body []byte) (*sieve.ExtractResult, error)
}

func (e *TextExtractor) Extract(body []byte) (*sieve.ExtractResult, error) {
	return e.ExtractFn(body)
}
