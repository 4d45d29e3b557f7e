// Package sentiment wraps the external pretrained star-rating model and maps
// its output onto the five point ordinal sentiment scale used throughout the
// application.
package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/econsult/commentnet-go/internal/errors"
)

// Label is one of the fixed ordinal sentiment classes.
type Label string

const (
	StronglyPositive Label = "Strongly Positive"
	Positive         Label = "Positive"
	Neutral          Label = "Neutral"
	Negative         Label = "Negative"
	StronglyNegative Label = "Strongly Negative"
	Unknown          Label = "Unknown"
)

// Labels lists every sentiment label the mapping can produce, ordered from
// most positive to most negative, Unknown last.
var Labels = []Label{StronglyPositive, Positive, Neutral, Negative, StronglyNegative, Unknown}

// Prediction is the raw output of the external model for one input text.
type Prediction struct {
	Label string  `json:"label"` // "1 star" .. "5 stars"
	Score float64 `json:"score"` // model confidence in [0,1]
}

// Model is the external pretrained text-classification model. Implementations
// block for the duration of the call; cancellation is the caller's context.
type Model interface {
	Predict(ctx context.Context, text string) (Prediction, error)
}

// Result is a mapped classification outcome.
type Result struct {
	Label      Label
	Confidence float64 // raw model score in [0,1]
}

// DisplayScore formats the confidence for display, rounded to two decimals.
func (r Result) DisplayScore() string {
	return strconv.FormatFloat(r.Confidence, 'f', 2, 64)
}

// MapStarLabel converts a raw model star label to the ordinal sentiment
// label. The mapping is fixed, total and order preserving; anything the
// model emits outside the five known star labels maps to Unknown.
func MapStarLabel(starLabel string) Label {
	switch starLabel {
	case "5 stars":
		return StronglyPositive
	case "4 stars":
		return Positive
	case "3 stars":
		return Neutral
	case "2 stars":
		return Negative
	case "1 star":
		return StronglyNegative
	default:
		return Unknown
	}
}

// Classifier classifies text through an injected model instance. The model is
// loaded once at process start and shared for the process lifetime.
type Classifier struct {
	model Model
}

// NewClassifier returns a Classifier using the given model.
func NewClassifier(model Model) *Classifier {
	return &Classifier{model: model}
}

// Classify runs the model on text and maps the star output to a sentiment
// label. Model failures propagate untouched apart from categorization; there
// are no retries.
func (c *Classifier) Classify(ctx context.Context, text string) (Result, error) {
	start := time.Now()
	prediction, err := c.model.Predict(ctx, text)
	if err != nil {
		return Result{}, errors.New(fmt.Errorf("sentiment classification failed: %w", err)).
			Component("sentiment").
			Category(errors.CategoryModelInference).
			Timing("predict", time.Since(start)).
			Build()
	}

	return Result{
		Label:      MapStarLabel(prediction.Label),
		Confidence: prediction.Score,
	}, nil
}
