// model.go: the persistent data model. A single append-only entity holds one
// classified comment per row.
package datastore

// Comment represents one classified customer comment. Records are write-once:
// there is no update path, and deletion happens only through DeleteAll.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Comment   string `gorm:"type:text;not null"`
	Sentiment string `gorm:"index:idx_comments_sentiment;not null"`
	Intent    string `gorm:"index:idx_comments_intent;not null"`
	Timestamp string `gorm:"index:idx_comments_timestamp;not null"` // creation instant, ISO-8601 text
	Author    string // optional, "N/A" when the source row had no author
}

// AuthorUnknown is stored when the ingestion source carries no author.
const AuthorUnknown = "N/A"
