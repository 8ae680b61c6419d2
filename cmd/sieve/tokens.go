package main

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/fwojciec/sieve"
)

// Run executes the tokens command.
func (c *TokensCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	freq, err := deps.Tokenizer.Tokenize(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sieve.ErrorMessage(err))
		return err
	}

	entries := SortByFrequency(freq)
	if c.Top > 0 && len(entries) > c.Top {
		entries = entries[:c.Top]
	}
	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s\t%d\n", e.Token, e.Count)
	}
	return nil
}

// TokenCount is one row of a frequency listing.
type TokenCount struct {
	Token string
	Count int
}

// SortByFrequency lists tokens by decreasing count, ties in token order.
func SortByFrequency(freq sieve.TokenFrequency) []TokenCount {
	entries := make([]TokenCount, 0, len(freq))
	for token, count := range freq {
		entries = append(entries, TokenCount{Token: token, Count: count})
	}
	slices.SortFunc(entries, func(a, b TokenCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Token, b.Token)
	})
	return entries
}
