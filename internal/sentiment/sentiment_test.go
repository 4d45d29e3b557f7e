package sentiment

import (
	"context"
	"testing"

	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel returns a fixed prediction or error.
type stubModel struct {
	prediction Prediction
	err        error
}

func (s *stubModel) Predict(_ context.Context, _ string) (Prediction, error) {
	return s.prediction, s.err
}

func TestMapStarLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		starLabel string
		want      Label
	}{
		{"5 stars", StronglyPositive},
		{"4 stars", Positive},
		{"3 stars", Neutral},
		{"2 stars", Negative},
		{"1 star", StronglyNegative},
		// anything unrecognized maps to Unknown
		{"6 stars", Unknown},
		{"1 stars", Unknown},
		{"5 Stars", Unknown},
		{"positive", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.starLabel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapStarLabel(tt.starLabel))
		})
	}
}

func TestClassifyMapsModelOutput(t *testing.T) {
	t.Parallel()

	model := &stubModel{prediction: Prediction{Label: "4 stars", Score: 0.8671}}
	classifier := NewClassifier(model)

	result, err := classifier.Classify(context.Background(), "yeh product bahut achha hai")
	require.NoError(t, err)
	assert.Equal(t, Positive, result.Label)
	assert.InDelta(t, 0.8671, result.Confidence, 1e-9)
}

func TestClassifyPropagatesModelFailure(t *testing.T) {
	t.Parallel()

	model := &stubModel{err: assert.AnError}
	classifier := NewClassifier(model)

	_, err := classifier.Classify(context.Background(), "any text")
	require.Error(t, err)
	require.ErrorIs(t, err, assert.AnError)

	var enhanced *errors.EnhancedError
	require.ErrorAs(t, err, &enhanced)
	ctx := enhanced.GetContext()
	assert.Equal(t, "predict", ctx["operation"])
	assert.Contains(t, ctx, "duration_ms", "failed calls carry their timing")
}

func TestDisplayScoreRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.87", Result{Confidence: 0.8671}.DisplayScore())
	assert.Equal(t, "1.00", Result{Confidence: 0.999}.DisplayScore())
	assert.Equal(t, "0.00", Result{}.DisplayScore())
}
