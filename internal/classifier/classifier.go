
package classifier

import (
	"errors"
	"fmt"
	"math"

	"newscheck/internal/models"
	"newscheck/internal/normalize"
)

var (
	// ErrTransform wraps failures of the feature transformer.
	ErrTransform = errors.New("feature transform failed")
	// ErrInference wraps failures of the model or an inconsistent model output.
	ErrInference = errors.New("inference failed")
)

const probTolerance = 1e-6

// Transformer maps one space-joined token string to a single feature row.
type Transformer interface {
	Transform(doc string) (models.FeatureVector, error)
}

// Model is a fitted binary classifier over transformer rows.
type Model interface {
	Classes() []string
	Predict(x models.FeatureVector) (string, error)
	PredictProba(x models.FeatureVector) ([]float64, error)
}

// Adapter runs one normalized document through a transformer and a model.
// Both are read-only after construction, so an Adapter is safe to share.
type Adapter struct {
	transformer Transformer
	model       Model
}

func New(t Transformer, m Model) *Adapter {
	return &Adapter{transformer: t, model: m}
}

// Predict classifies exactly one document. The returned label is always the
// class with the larger probability and the probabilities sum to 1.
func (a *Adapter) Predict(tokens []string) (pred models.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			pred = models.Prediction{}
			err = fmt.Errorf("%w: panic: %v", ErrInference, r)
		}
	}()

	x, err := a.transformer.Transform(normalize.Join(tokens))
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: %v", ErrTransform, err)
	}

	label, err := a.model.Predict(x)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: predict: %v", ErrInference, err)
	}
	probs, err := a.model.PredictProba(x)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: predict proba: %v", ErrInference, err)
	}
	classes := a.model.Classes()
	if len(classes) != 2 || len(probs) != 2 {
		return models.Prediction{}, fmt.Errorf("%w: want 2 classes, got %d classes and %d probabilities", ErrInference, len(classes), len(probs))
	}
	if sum := probs[0] + probs[1]; math.IsNaN(sum) || math.Abs(sum-1) > probTolerance {
		return models.Prediction{}, fmt.Errorf("%w: probabilities sum to %v", ErrInference, sum)
	}

	best := 0
	if probs[1] > probs[0] {
		best = 1
	}
	if label != classes[best] {
		return models.Prediction{}, fmt.Errorf("%w: label %q disagrees with most probable class %q", ErrInference, label, classes[best])
	}

	return models.Prediction{
		Label:         label,
		Classes:       [2]string{classes[0], classes[1]},
		Probabilities: [2]float64{probs[0], probs[1]},
		Features:      x.Dim,
	}, nil
}
