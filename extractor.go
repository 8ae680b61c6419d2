package sieve

// ExtractResult holds the plain text and raw links of an HTML page.
type ExtractResult struct {
	// Text is the visible text of the page.
	Text string

	// Hrefs lists the raw href attribute of every anchor, in document order.
	// Anchors without an href attribute are omitted.
	Hrefs []string
}

// TextExtractor turns raw page bytes into plain text and anchor hrefs.
type TextExtractor interface {
	Extract(body []byte) (*ExtractResult, error)
}
