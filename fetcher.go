package sieve

import "context"

// FetchResult is the response to a page request.
type FetchResult struct {
	// URL is the address the body was retrieved from.
	URL string

	// Status is the HTTP status code.
	Status int

	// Body holds the raw response bytes.
	Body []byte

	// Truncated reports that the body was cut at the fetcher's size limit
	// and Body holds only a prefix of the response.
	Truncated bool
}

// Fetcher retrieves pages.
type Fetcher interface {
	// Fetch requests the URL and returns the response.
	// Non-200 responses are returned as results, not errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
