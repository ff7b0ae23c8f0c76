// Package acquirer turns user input into raw article text, either as typed or
// scraped from the paragraphs of a web page.
package acquirer

import (
	"context"
	"fmt"
	"strings"

	"newscheck/internal/crawler"
	"newscheck/internal/models"
	"newscheck/internal/parser"
)

// DefaultMinChars is the shortest scraped text worth classifying.
const DefaultMinChars = 50

// InsufficientContentError means the page was fetched but carried too little
// paragraph text to classify. It is never returned for transport failures.
// NoWords marks text that normalized to zero tokens.
type InsufficientContentError struct {
	URL     string
	Chars   int
	Min     int
	NoWords bool
}

func (e *InsufficientContentError) Error() string {
	where := "insufficient content"
	if e.URL != "" {
		where += " at " + e.URL
	}
	if e.NoWords {
		return fmt.Sprintf("%s: no classifiable words in %d characters", where, e.Chars)
	}
	return fmt.Sprintf("%s: %d characters of paragraph text, need %d", where, e.Chars, e.Min)
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*crawler.Response, error)
}

type Acquirer struct {
	fetcher  Fetcher
	parser   *parser.Parser
	minChars int
}

func New(f Fetcher, minChars int) *Acquirer {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Acquirer{fetcher: f, parser: parser.New(), minChars: minChars}
}

// FromText is the direct-entry path; emptiness is checked after normalization.
func (a *Acquirer) FromText(raw string) string { return raw }

// FromURL fetches rawURL and returns its paragraph text. Fetch failures come
// back as *crawler.FetchError, thin pages as *InsufficientContentError.
func (a *Acquirer) FromURL(ctx context.Context, rawURL string) (models.Page, error) {
	resp, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return models.Page{}, err
	}
	defer resp.Body.Close()

	page, err := a.parser.Extract(resp.Body, resp.ContentType)
	if err != nil {
		return models.Page{}, &crawler.FetchError{URL: rawURL, Err: fmt.Errorf("parse html: %w", err)}
	}
	page.SourceURL = resp.FinalURL
	page.FetchMs = resp.Elapsed.Milliseconds()

	if n := len([]rune(strings.TrimSpace(page.Content.Text))); n < a.minChars {
		return page, &InsufficientContentError{URL: rawURL, Chars: n, Min: a.minChars}
	}
	return page, nil
}
