package classifier

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"newscheck/internal/models"
)

// TFIDF is a fitted term-frequency / inverse-document-frequency vectorizer.
// Terms missing from Vocabulary are ignored.
type TFIDF struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NGramRange  [2]int         `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
}

func (t *TFIDF) Dim() int { return len(t.IDF) }

func (t *TFIDF) validate() error {
	if len(t.Vocabulary) == 0 {
		return errors.New("tfidf: empty vocabulary")
	}
	if len(t.IDF) != len(t.Vocabulary) {
		return fmt.Errorf("tfidf: %d idf weights for %d terms", len(t.IDF), len(t.Vocabulary))
	}
	for term, col := range t.Vocabulary {
		if col < 0 || col >= len(t.IDF) {
			return fmt.Errorf("tfidf: term %q maps to column %d outside [0,%d)", term, col, len(t.IDF))
		}
	}
	if t.NGramRange == [2]int{} {
		t.NGramRange = [2]int{1, 1}
	}
	if t.NGramRange[0] < 1 || t.NGramRange[1] < t.NGramRange[0] {
		return fmt.Errorf("tfidf: bad ngram range %v", t.NGramRange)
	}
	switch t.Norm {
	case "", "l2":
	default:
		return fmt.Errorf("tfidf: unsupported norm %q", t.Norm)
	}
	return nil
}

func (t *TFIDF) Transform(doc string) (models.FeatureVector, error) {
	if len(t.Vocabulary) == 0 {
		return models.FeatureVector{}, errors.New("tfidf: transformer is not fitted")
	}
	words := strings.Fields(doc)
	counts := map[int]float64{}
	for n := t.NGramRange[0]; n <= t.NGramRange[1]; n++ {
		for i := 0; i+n <= len(words); i++ {
			if col, ok := t.Vocabulary[strings.Join(words[i:i+n], " ")]; ok {
				counts[col]++
			}
		}
	}

	var sq float64
	for col, c := range counts {
		tf := c
		if t.SublinearTF {
			tf = 1 + math.Log(c)
		}
		v := tf * t.IDF[col]
		counts[col] = v
		sq += v * v
	}
	if t.Norm == "l2" && sq > 0 {
		n := math.Sqrt(sq)
		for col := range counts {
			counts[col] /= n
		}
	}
	return models.FeatureVector{Dim: len(t.IDF), Values: counts}, nil
}
