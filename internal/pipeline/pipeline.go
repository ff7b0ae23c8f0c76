// Package pipeline wires acquisition, normalization and classification into a
// single per-request analysis.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"newscheck/internal/acquirer"
	"newscheck/internal/crawler"
	"newscheck/internal/models"
	"newscheck/internal/normalize"
	"newscheck/pkg/logger"
)

var (
	ErrEmptyInput = errors.New("empty input")
	// ErrAnalysisFailed hides transformer/model detail from end users.
	ErrAnalysisFailed = errors.New("analysis failed")
)

const (
	textPreviewChars  = 500
	tokenPreviewCount = 50
)

type Predictor interface {
	Predict(tokens []string) (models.Prediction, error)
}

type Analyzer struct {
	acq  *acquirer.Acquirer
	pred Predictor
	log  *logger.Logger
}

func New(acq *acquirer.Acquirer, pred Predictor, l *logger.Logger) *Analyzer {
	return &Analyzer{acq: acq, pred: pred, log: l}
}

// AnalyzeText classifies operator-entered text.
func (a *Analyzer) AnalyzeText(ctx context.Context, raw string) (models.Analysis, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Analysis{}, ErrEmptyInput
	}
	text := a.acq.FromText(raw)
	an := models.Analysis{Source: models.SourceText, Input: raw}
	return a.classify(ctx, an, text)
}

// AnalyzeURL scrapes rawURL and classifies its paragraph text. Fetch and
// thin-content failures are returned unchanged so callers can tell them apart.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (models.Analysis, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return models.Analysis{}, ErrEmptyInput
	}
	page, err := a.acq.FromURL(ctx, rawURL)
	if err != nil {
		a.log.Warnf("acquire %s: %v", rawURL, err)
		return models.Analysis{}, err
	}
	an := models.Analysis{Source: models.SourceURL, Input: rawURL, Page: &page}
	return a.classify(ctx, an, page.Content.Text)
}

func (a *Analyzer) classify(ctx context.Context, an models.Analysis, text string) (models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return models.Analysis{}, err
	}
	an.TextPreview = preview(text, textPreviewChars)

	tokens := normalize.Normalize(text)
	if len(tokens) == 0 {
		return models.Analysis{}, &acquirer.InsufficientContentError{
			URL:     pageURL(an),
			Chars:   utf8.RuneCountInString(strings.TrimSpace(text)),
			NoWords: true,
		}
	}
	an.TokenCount = len(tokens)
	an.TokenPreview = normalize.Join(tokens[:min(len(tokens), tokenPreviewCount)])

	p, err := a.pred.Predict(tokens)
	if err != nil {
		a.log.Errorf("classify %s input (%d tokens): %v", an.Source, len(tokens), err)
		return models.Analysis{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	an.Prediction = p
	an.Features = p.Features
	an.Confidence = p.ConfidencePercent()
	a.log.Debugf("classified %s input as %s (%s)", an.Source, p.Label, an.Confidence)
	return an, nil
}

func pageURL(an models.Analysis) string {
	if an.Source == models.SourceURL {
		return an.Input
	}
	return ""
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ErrorKind names the user-facing category of a pipeline error.
type ErrorKind string

const (
	KindFetch               ErrorKind = "fetch"
	KindInsufficientContent ErrorKind = "insufficient_content"
	KindAnalysisFailed      ErrorKind = "analysis_failed"
	KindInvalidInput        ErrorKind = "invalid_input"
)

func KindOf(err error) ErrorKind {
	var fe *crawler.FetchError
	var ice *acquirer.InsufficientContentError
	switch {
	case errors.As(err, &fe):
		return KindFetch
	case errors.As(err, &ice):
		return KindInsufficientContent
	case errors.Is(err, ErrEmptyInput):
		return KindInvalidInput
	default:
		return KindAnalysisFailed
	}
}
