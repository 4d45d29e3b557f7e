package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySingleBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want Label
	}{
		{"refund keyword", "I want a refund for this order", ReturnRefund},
		{"hindi return keyword", "mujhe yeh wapas karna hai", ReturnRefund},
		{"replace keyword", "please replace the damaged item", ReturnRefund},
		{"tracking keyword", "track my parcel please", QueryTracking},
		{"hindi query keyword", "order kab aayega", QueryTracking},
		{"where keyword", "where is my package", QueryTracking},
		{"feedback keyword", "this is a good product", Feedback},
		{"hindi feedback keyword", "bahut badiya quality", Feedback},
		{"love keyword", "love the fabric", Feedback},
		{"no keyword", "delivered yesterday evening", Other},
		{"empty text", "", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	// Return/Refund outranks Query/Tracking outranks Feedback.
	assert.Equal(t, ReturnRefund, Classify("when will my refund arrive"))
	assert.Equal(t, ReturnRefund, Classify("bad product, want to return it"))
	assert.Equal(t, QueryTracking, Classify("how good is the tracking"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReturnRefund, Classify("REFUND NOW"))
	assert.Equal(t, Feedback, Classify("GoOd StUfF"))
}

// Matching is unanchored substring containment, so keywords match inside
// unrelated words. This behavior is part of the compatibility contract and
// must not be "fixed" to word-boundary matching.
func TestClassifySubstringContainment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, QueryTracking, Classify("HOWDY"), `"howdy" contains "how"`)
	assert.Equal(t, QueryTracking, Classify("showcase item"), `"showcase" contains "how"`)
	assert.Equal(t, Feedback, Classify("badminton racket"), `"badminton" contains "bad"`)
	assert.Equal(t, ReturnRefund, Classify("unreturnable"), `"unreturnable" contains "return"`)
}
