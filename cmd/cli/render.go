package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"newscheck/internal/models"
	"newscheck/internal/pipeline"
)

var (
	base      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	realStyle = base.Foreground(lipgloss.Color("#155724")).Background(lipgloss.Color("#d4edda"))
	fakeStyle = base.Foreground(lipgloss.Color("#721c24")).Background(lipgloss.Color("#f8d7da"))
)

// verdict renders e.g. "Prediction: Real (Confidence: 87.43%)", green for
// real and red for anything else.
func verdict(p models.Prediction) string {
	text := fmt.Sprintf("Prediction: %s (Confidence: %s)", cases.Title(language.English).String(p.Label), p.ConfidencePercent())
	if p.Label == "real" {
		return realStyle.Render(text)
	}
	return fakeStyle.Render(text)
}

// userError turns a pipeline error into the message an operator should see.
func userError(err error) error {
	switch pipeline.KindOf(err) {
	case pipeline.KindFetch:
		return fmt.Errorf("error scraping the URL: %w", err)
	case pipeline.KindInsufficientContent:
		return fmt.Errorf("insufficient content to analyze, try a different URL: %w", err)
	case pipeline.KindInvalidInput:
		return errors.New("please enter some text or a valid URL")
	default:
		return fmt.Errorf("analysis failed: %w", err)
	}
}
