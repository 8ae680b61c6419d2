// Package goquery implements sieve.TextExtractor using PuerkitoBio/goquery.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sieve"
)

// Ensure Extractor implements sieve.TextExtractor at compile time.
var _ sieve.TextExtractor = (*Extractor)(nil)

// Extractor pulls the text content and anchor hrefs out of an HTML document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses body as HTML. Text is the concatenated text of every node
// in the document. Hrefs holds the href attribute of each anchor that has
// one, in document order and including empty values.
func (e *Extractor) Extract(body []byte) (*sieve.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sieve.Errorf(sieve.EINVALID, "failed to parse HTML: %v", err)
	}

	var hrefs []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})

	return &sieve.ExtractResult{
		Text:  doc.Text(),
		Hrefs: hrefs,
	}, nil
}
