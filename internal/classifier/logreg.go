package classifier

import (
	"errors"
	"fmt"
	"math"

	"newscheck/internal/models"
)

// LogisticRegression is a fitted binary logistic model. The probability of
// ClassLabels[1] is sigmoid(Coef·x + Intercept).
type LogisticRegression struct {
	ClassLabels []string  `json:"classes"`
	Coef        []float64 `json:"coef"`
	Intercept   float64   `json:"intercept"`
}

func (m *LogisticRegression) validate() error {
	if len(m.ClassLabels) != 2 {
		return fmt.Errorf("logistic regression: want 2 classes, got %d", len(m.ClassLabels))
	}
	if m.ClassLabels[0] == m.ClassLabels[1] {
		return fmt.Errorf("logistic regression: duplicate class %q", m.ClassLabels[0])
	}
	if len(m.Coef) == 0 {
		return errors.New("logistic regression: no coefficients")
	}
	return nil
}

func (m *LogisticRegression) Classes() []string { return m.ClassLabels }

func (m *LogisticRegression) decision(x models.FeatureVector) (float64, error) {
	if x.Dim != len(m.Coef) {
		return 0, fmt.Errorf("feature width %d does not match %d coefficients", x.Dim, len(m.Coef))
	}
	z := m.Intercept
	for col, v := range x.Values {
		if col < 0 || col >= len(m.Coef) {
			return 0, fmt.Errorf("feature column %d out of range", col)
		}
		z += m.Coef[col] * v
	}
	if math.IsNaN(z) {
		return 0, errors.New("decision value is NaN")
	}
	return z, nil
}

func (m *LogisticRegression) Predict(x models.FeatureVector) (string, error) {
	z, err := m.decision(x)
	if err != nil {
		return "", err
	}
	// Compare the rounded probability, not z: sigmoid(1e-17) is exactly 0.5.
	if sigmoid(z) > 0.5 {
		return m.ClassLabels[1], nil
	}
	return m.ClassLabels[0], nil
}

func (m *LogisticRegression) PredictProba(x models.FeatureVector) ([]float64, error) {
	z, err := m.decision(x)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
