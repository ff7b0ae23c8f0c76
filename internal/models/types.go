
package models

import (
	"fmt"
	"math"
)

type Meta struct {
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`
}

type Content struct {
	Text       string `json:"text,omitempty"`
	Paragraphs int    `json:"paragraphs,omitempty"`
	WordCount  int    `json:"wordCount,omitempty"`
}

// Page is what the acquirer hands to the pipeline after a successful scrape.
type Page struct {
	SourceURL string  `json:"sourceUrl,omitempty"`
	FetchMs   int64   `json:"fetchMs,omitempty"`
	Meta      Meta    `json:"meta"`
	Content   Content `json:"content"`
}

// FeatureVector is a single sparse row produced by a fitted transformer.
// Dim is the transformer's vocabulary width; Values is keyed by column.
type FeatureVector struct {
	Dim    int
	Values map[int]float64
}

// Prediction pairs a label with the probability of each class.
// Label is always Classes[i] for the i with the larger probability.
type Prediction struct {
	Label         string     `json:"label"`
	Classes       [2]string  `json:"classes"`
	Probabilities [2]float64 `json:"probabilities"`
	// Features is the width of the vector the model scored.
	Features int `json:"-"`
}

func (p Prediction) Confidence() float64 {
	return math.Max(p.Probabilities[0], p.Probabilities[1])
}

// ConfidencePercent renders the winning probability as e.g. "87.43%".
func (p Prediction) ConfidencePercent() string {
	return fmt.Sprintf("%.2f%%", p.Confidence()*100)
}

// Probability returns the probability assigned to label, or 0 if unknown.
func (p Prediction) Probability(label string) float64 {
	for i, c := range p.Classes {
		if c == label {
			return p.Probabilities[i]
		}
	}
	return 0
}

type Source string

const (
	SourceText Source = "text"
	SourceURL  Source = "url"
)

type Analysis struct {
	Source       Source     `json:"source"`
	Input        string     `json:"input"`
	Page         *Page      `json:"page,omitempty"`
	TextPreview  string     `json:"textPreview"`
	TokenPreview string     `json:"tokenPreview"`
	TokenCount   int        `json:"tokenCount"`
	Features     int        `json:"features"`
	Prediction   Prediction `json:"prediction"`
	Confidence   string     `json:"confidence"`
}
