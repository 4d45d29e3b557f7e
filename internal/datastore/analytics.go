// internal/datastore/analytics.go
package datastore

import "fmt"

// DashboardStats holds the headline counters shown on the dashboard.
//
// Positive and Negative are substring buckets: "Strongly Positive" counts
// under Positive and "Strongly Negative" under Negative. Neutral is an exact
// bucket. The three buckets are deliberately NOT exhaustive against Total:
// Strongly Negative rows land in Negative via the substring match, but
// Unknown rows land in no bucket at all, and the Positive/Negative/Neutral
// triple can therefore sum to less than Total. That quirk is inherited
// behavior and must be preserved as-is.
type DashboardStats struct {
	Total    int64 `json:"total"`
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// Breakdown holds the grouped label distributions for the analytics view.
// Labels with zero rows are absent from the maps.
type Breakdown struct {
	SentimentCounts map[string]int64 `json:"sentiment_data"`
	IntentCounts    map[string]int64 `json:"intent_data"`
}

// GetDashboardStats computes the dashboard counters in four aggregate
// queries.
func (ds *DataStore) GetDashboardStats() (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Total, err = ds.CountAll(); err != nil {
		return stats, fmt.Errorf("dashboard total: %w", err)
	}
	if stats.Positive, err = ds.CountSentimentContaining("Positive"); err != nil {
		return stats, fmt.Errorf("dashboard positive bucket: %w", err)
	}
	if stats.Negative, err = ds.CountSentimentContaining("Negative"); err != nil {
		return stats, fmt.Errorf("dashboard negative bucket: %w", err)
	}
	if stats.Neutral, err = ds.CountSentimentExact("Neutral"); err != nil {
		return stats, fmt.Errorf("dashboard neutral bucket: %w", err)
	}

	return stats, nil
}

// GetBreakdown returns the sentiment and intent distributions over all
// stored comments.
func (ds *DataStore) GetBreakdown() (Breakdown, error) {
	sentimentCounts, err := ds.GroupCount("sentiment")
	if err != nil {
		return Breakdown{}, fmt.Errorf("sentiment breakdown: %w", err)
	}

	intentCounts, err := ds.GroupCount("intent")
	if err != nil {
		return Breakdown{}, fmt.Errorf("intent breakdown: %w", err)
	}

	return Breakdown{
		SentimentCounts: sentimentCounts,
		IntentCounts:    intentCounts,
	}, nil
}
