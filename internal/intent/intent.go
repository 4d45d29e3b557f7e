// Package intent assigns a coarse intent category to comment text using a
// fixed, ordered keyword rule table. The vocabulary mixes English and Hindi
// keywords because the expected input is code-mixed e-commerce feedback.
package intent

import "strings"

// Label is one of the fixed intent categories.
type Label string

const (
	ReturnRefund  Label = "Return/Refund"
	QueryTracking Label = "Query/Tracking"
	Feedback      Label = "Feedback"
	Other         Label = "Other"
)

// Labels lists every intent label in rule priority order, Other last.
var Labels = []Label{ReturnRefund, QueryTracking, Feedback, Other}

// rule maps a keyword set to an intent label. Rules are evaluated in order
// and the first match wins.
type rule struct {
	label    Label
	keywords []string
}

// The keyword sets are the entire behavior surface and must not be extended
// or trimmed without changing the documented contract. Matching is substring
// containment on the lower-cased text, not word-boundary matching, so
// "howdy" matches "how". That over-matching is part of the contract.
var rules = []rule{
	{ReturnRefund, []string{"return", "replace", "refund", "wapas"}},
	{QueryTracking, []string{"when", "where", "how", "track", "kab", "kaha"}},
	{Feedback, []string{"good", "bad", "happy", "love", "achha", "badiya"}},
}

// Classify returns the intent label for text. It is pure and deterministic:
// case-insensitive substring match over the rule table, first matching rule
// wins, Other when nothing matches.
func Classify(text string) Label {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lowered, keyword) {
				return r.label
			}
		}
	}
	return Other
}
