package datastore

import (
	"fmt"
	"testing"
	"time"

	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDatabase initializes a temporary SQLite database for testing.
func createDatabase(t *testing.T) Interface {
	t.Helper()

	settings := conf.GetTestSettings()
	settings.Output.SQLite.Path = t.TempDir() + "/test.db"

	dataStore := New(settings)
	require.NotNil(t, dataStore, "expected a datastore for sqlite settings")
	require.NoError(t, dataStore.Open(), "Failed to open database")

	t.Cleanup(func() {
		assert.NoError(t, dataStore.Close(), "Failed to close datastore")
	})

	return dataStore
}

func saveComment(t *testing.T, ds Interface, text, sentiment, intentLabel, author string) *Comment {
	t.Helper()
	comment := &Comment{
		Comment:   text,
		Sentiment: sentiment,
		Intent:    intentLabel,
		Author:    author,
	}
	require.NoError(t, ds.Save(comment))
	return comment
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	ds := createDatabase(t)

	comment := saveComment(t, ds, "very good product", "Positive", "Feedback", "user42")
	assert.NotZero(t, comment.ID, "store should assign an id")
	require.NotEmpty(t, comment.Timestamp, "store should assign a timestamp")

	_, err := time.Parse(TimestampFormat, comment.Timestamp)
	assert.NoError(t, err, "timestamp should be ISO-8601")
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	ds := createDatabase(t)

	saved := saveComment(t, ds, "refund please", "Negative", "Return/Refund", AuthorUnknown)

	got, err := ds.Get(fmt.Sprint(saved.ID))
	require.NoError(t, err)
	assert.Equal(t, saved.Comment, got.Comment)
	assert.Equal(t, saved.Sentiment, got.Sentiment)
	assert.Equal(t, saved.Intent, got.Intent)
	assert.Equal(t, saved.Timestamp, got.Timestamp)
	assert.Equal(t, AuthorUnknown, got.Author)
}

func TestGetUnknownID(t *testing.T) {
	ds := createDatabase(t)

	_, err := ds.Get("9999")
	assert.Error(t, err)
}

func TestGetAllCommentsNewestFirst(t *testing.T) {
	ds := createDatabase(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		comment := &Comment{
			Comment:   fmt.Sprintf("comment %d", i),
			Sentiment: "Neutral",
			Intent:    "Other",
			Timestamp: base.Add(time.Duration(i) * time.Minute).Format(TimestampFormat),
		}
		require.NoError(t, ds.Save(comment))
	}

	comments, err := ds.GetAllComments()
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "comment 2", comments[0].Comment, "most recent comment first")
	assert.Equal(t, "comment 0", comments[2].Comment)
}

func TestGetAllCommentsInStoreOrder(t *testing.T) {
	ds := createDatabase(t)

	// Timestamps run backwards so insertion order and timestamp order differ.
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		comment := &Comment{
			Comment:   fmt.Sprintf("comment %d", i),
			Sentiment: "Neutral",
			Intent:    "Other",
			Timestamp: base.Add(-time.Duration(i) * time.Minute).Format(TimestampFormat),
		}
		require.NoError(t, ds.Save(comment))
	}

	comments, err := ds.GetAllCommentsInStoreOrder()
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "comment 0", comments[0].Comment, "first inserted comes first")
	assert.Equal(t, "comment 2", comments[2].Comment)
}

func TestCountAll(t *testing.T) {
	ds := createDatabase(t)

	count, err := ds.CountAll()
	require.NoError(t, err)
	assert.Zero(t, count)

	saveComment(t, ds, "a", "Neutral", "Other", AuthorUnknown)
	saveComment(t, ds, "b", "Positive", "Feedback", AuthorUnknown)

	count, err = ds.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSentimentCountBuckets(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "a", "Strongly Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "b", "Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "c", "Negative", "Other", AuthorUnknown)
	saveComment(t, ds, "d", "Strongly Negative", "Other", AuthorUnknown)
	saveComment(t, ds, "e", "Neutral", "Other", AuthorUnknown)
	saveComment(t, ds, "f", "Unknown", "Other", AuthorUnknown)

	positive, err := ds.CountSentimentContaining("Positive")
	require.NoError(t, err)
	assert.EqualValues(t, 2, positive, "substring bucket includes Strongly Positive")

	negative, err := ds.CountSentimentContaining("Negative")
	require.NoError(t, err)
	assert.EqualValues(t, 2, negative, "substring bucket includes Strongly Negative")

	neutral, err := ds.CountSentimentExact("Neutral")
	require.NoError(t, err)
	assert.EqualValues(t, 1, neutral, "exact bucket does not aggregate")
}

func TestGroupCount(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "a", "Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "b", "Positive", "Return/Refund", AuthorUnknown)
	saveComment(t, ds, "c", "Neutral", "Feedback", AuthorUnknown)

	sentimentCounts, err := ds.GroupCount("sentiment")
	require.NoError(t, err)
	assert.EqualValues(t, 2, sentimentCounts["Positive"])
	assert.EqualValues(t, 1, sentimentCounts["Neutral"])
	// absent labels are absent, not zero-filled
	_, present := sentimentCounts["Unknown"]
	assert.False(t, present)

	intentCounts, err := ds.GroupCount("intent")
	require.NoError(t, err)
	assert.EqualValues(t, 2, intentCounts["Feedback"])
	assert.EqualValues(t, 1, intentCounts["Return/Refund"])
}

func TestGroupCountRejectsUnknownField(t *testing.T) {
	ds := createDatabase(t)

	_, err := ds.GroupCount("author")
	assert.Error(t, err)
}

func TestDeleteAll(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "a", "Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "b", "Negative", "Other", AuthorUnknown)

	require.NoError(t, ds.DeleteAll())

	count, err := ds.CountAll()
	require.NoError(t, err)
	assert.Zero(t, count)

	comments, err := ds.GetAllComments()
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestSaveAllSingleBatch(t *testing.T) {
	ds := createDatabase(t)

	batch := []*Comment{
		{Comment: "x", Sentiment: "Positive", Intent: "Feedback", Author: AuthorUnknown},
		{Comment: "y", Sentiment: "Negative", Intent: "Other", Author: AuthorUnknown},
		{Comment: "z", Sentiment: "Neutral", Intent: "Other", Author: AuthorUnknown},
	}
	require.NoError(t, ds.SaveAll(batch))

	count, err := ds.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	for _, comment := range batch {
		assert.NotZero(t, comment.ID)
		assert.NotEmpty(t, comment.Timestamp)
	}
}

func TestSaveAllEmptyBatch(t *testing.T) {
	ds := createDatabase(t)
	require.NoError(t, ds.SaveAll(nil))
}

func TestIdempotentSchemaInit(t *testing.T) {
	settings := conf.GetTestSettings()
	settings.Output.SQLite.Path = t.TempDir() + "/test.db"

	first := New(settings)
	require.NoError(t, first.Open())
	require.NoError(t, first.Save(&Comment{
		Comment:   "survives reopen",
		Sentiment: "Neutral",
		Intent:    "Other",
		Author:    AuthorUnknown,
	}))
	require.NoError(t, first.Close())

	// Opening again re-runs migration; existing records must survive.
	second := New(settings)
	require.NoError(t, second.Open())
	defer func() { assert.NoError(t, second.Close()) }()

	count, err := second.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDashboardStats(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "a", "Strongly Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "b", "Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "c", "Negative", "Other", AuthorUnknown)
	saveComment(t, ds, "d", "Neutral", "Other", AuthorUnknown)
	saveComment(t, ds, "e", "Unknown", "Other", AuthorUnknown)

	stats, err := ds.GetDashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.Total)
	assert.EqualValues(t, 2, stats.Positive)
	assert.EqualValues(t, 1, stats.Negative)
	assert.EqualValues(t, 1, stats.Neutral)
}

// Unknown sentiment lands in no bucket: the three dashboard buckets are not
// exhaustive against the total, and callers must not assume they sum up.
func TestDashboardStatsBucketsNotExhaustive(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "shrug", "Unknown", "Other", AuthorUnknown)

	stats, err := ds.GetDashboardStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Total)
	assert.Zero(t, stats.Positive)
	assert.Zero(t, stats.Negative)
	assert.Zero(t, stats.Neutral)
}

func TestGetBreakdown(t *testing.T) {
	ds := createDatabase(t)

	saveComment(t, ds, "a", "Positive", "Feedback", AuthorUnknown)
	saveComment(t, ds, "b", "Positive", "Query/Tracking", AuthorUnknown)
	saveComment(t, ds, "c", "Strongly Negative", "Return/Refund", AuthorUnknown)

	breakdown, err := ds.GetBreakdown()
	require.NoError(t, err)
	assert.EqualValues(t, 2, breakdown.SentimentCounts["Positive"])
	assert.EqualValues(t, 1, breakdown.SentimentCounts["Strongly Negative"])
	assert.EqualValues(t, 1, breakdown.IntentCounts["Feedback"])
	assert.EqualValues(t, 1, breakdown.IntentCounts["Query/Tracking"])
	assert.EqualValues(t, 1, breakdown.IntentCounts["Return/Refund"])
}

func TestGetBreakdownEmptyStore(t *testing.T) {
	ds := createDatabase(t)

	breakdown, err := ds.GetBreakdown()
	require.NoError(t, err)
	assert.Empty(t, breakdown.SentimentCounts)
	assert.Empty(t, breakdown.IntentCounts)
}
