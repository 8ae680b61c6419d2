package crawl

import (
	"io"
	"log/slog"

	"github.com/fwojciec/sieve"
)

// LowValueFilter rejects documents with too few or too many distinct tokens.
type LowValueFilter struct {
	Min    int
	Max    int
	Logger *slog.Logger
}

// NewLowValueFilter creates a LowValueFilter accepting [min, max] distinct tokens.
func NewLowValueFilter(min, max int, logger *slog.Logger) *LowValueFilter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LowValueFilter{Min: min, Max: max, Logger: logger}
}

// IsLowValue reports whether the document should be rejected.
func (f *LowValueFilter) IsLowValue(url string, freq sieve.TokenFrequency) bool {
	n := freq.Distinct()
	if n < f.Min || n > f.Max {
		f.Logger.Info("low information value", "url", url, "tokens", n)
		return true
	}
	return false
}
