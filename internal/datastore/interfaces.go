// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Interface abstracts the underlying database implementation and defines the
// operations the rest of the application may perform on stored comments.
type Interface interface {
	Open() error
	Close() error
	Save(comment *Comment) error
	SaveAll(comments []*Comment) error
	Get(id string) (Comment, error)
	GetAllComments() ([]Comment, error)
	GetAllCommentsInStoreOrder() ([]Comment, error)
	CountAll() (int64, error)
	CountSentimentContaining(substring string) (int64, error)
	CountSentimentExact(label string) (int64, error)
	GroupCount(field string) (map[string]int64, error)
	DeleteAll() error
	GetDashboardStats() (DashboardStats, error)
	GetBreakdown() (Breakdown, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a datastore instance for the backend enabled in settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// TimestampFormat is the layout used for the persisted ISO-8601 timestamp.
// Sub-second precision keeps the "most recent first" ordering stable when
// several comments arrive within the same second. The fractional part is
// fixed width, unlike RFC3339Nano, so string comparison matches time order.
const TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Save appends a single comment record. The store assigns the creation
// timestamp; a caller-provided timestamp is preserved only for migrations.
func (ds *DataStore) Save(comment *Comment) error {
	if comment.Timestamp == "" {
		comment.Timestamp = time.Now().Format(TimestampFormat)
	}

	if err := ds.DB.Create(comment).Error; err != nil {
		return errors.New(fmt.Errorf("saving comment: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// SaveAll appends a batch of comment records in a single transaction: either
// every record is stored or none is. Timestamps are assigned per record at
// insert time.
func (ds *DataStore) SaveAll(comments []*Comment) error {
	if len(comments) == 0 {
		return nil
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		for _, comment := range comments {
			if comment.Timestamp == "" {
				comment.Timestamp = time.Now().Format(TimestampFormat)
			}
			if err := tx.Create(comment).Error; err != nil {
				return fmt.Errorf("saving comment in batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("batch_size", len(comments)).
			Build()
	}
	return nil
}

// Get retrieves a comment by its ID.
func (ds *DataStore) Get(id string) (Comment, error) {
	commentID, err := strconv.Atoi(id)
	if err != nil {
		return Comment{}, fmt.Errorf("converting ID to integer: %w", err)
	}

	var comment Comment
	if err := ds.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Comment{}, errors.New(fmt.Errorf("comment %d not found", commentID)).
				Component("datastore").
				Category(errors.CategoryNotFound).
				Build()
		}
		return Comment{}, fmt.Errorf("getting comment with ID %d: %w", commentID, err)
	}
	return comment, nil
}

// GetAllComments retrieves every stored comment ordered most recent first.
// There is no pagination: the expected volume is small and full-table reads
// are an accepted scaling limit.
func (ds *DataStore) GetAllComments() ([]Comment, error) {
	var comments []Comment
	if result := ds.DB.Order("timestamp DESC").Find(&comments); result.Error != nil {
		return nil, fmt.Errorf("error getting all comments: %w", result.Error)
	}
	return comments, nil
}

// GetAllCommentsInStoreOrder retrieves every stored comment in insertion
// order, oldest first. Exports use this so spreadsheet rows read top to
// bottom in the order comments arrived.
func (ds *DataStore) GetAllCommentsInStoreOrder() ([]Comment, error) {
	var comments []Comment
	if result := ds.DB.Order("id ASC").Find(&comments); result.Error != nil {
		return nil, fmt.Errorf("error getting all comments: %w", result.Error)
	}
	return comments, nil
}

// CountAll returns the total number of stored comments.
func (ds *DataStore) CountAll() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Comment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting comments: %w", err)
	}
	return count, nil
}

// CountSentimentContaining counts comments whose sentiment label contains
// substring. The dashboard uses this for its Positive and Negative buckets so
// that "Strongly Positive" aggregates under "Positive".
func (ds *DataStore) CountSentimentContaining(substring string) (int64, error) {
	var count int64
	err := ds.DB.Model(&Comment{}).
		Where("sentiment LIKE ?", "%"+substring+"%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting sentiment containing %q: %w", substring, err)
	}
	return count, nil
}

// CountSentimentExact counts comments whose sentiment label equals label.
func (ds *DataStore) CountSentimentExact(label string) (int64, error) {
	var count int64
	err := ds.DB.Model(&Comment{}).
		Where("sentiment = ?", label).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("error counting sentiment %q: %w", label, err)
	}
	return count, nil
}

// groupableFields whitelists the columns GroupCount may group by.
var groupableFields = map[string]bool{
	"sentiment": true,
	"intent":    true,
}

// GroupCount returns a mapping from label to count for the given field.
// Labels with no stored rows are absent from the result, callers treat
// missing keys as zero.
func (ds *DataStore) GroupCount(field string) (map[string]int64, error) {
	if !groupableFields[field] {
		return nil, errors.Newf("cannot group by field %q", field).
			Component("datastore").
			Category(errors.CategoryValidation).
			Build()
	}

	var results []struct {
		Label string
		Count int64
	}
	err := ds.DB.Model(&Comment{}).
		Select(field + " as label, COUNT(*) as count").
		Group(field).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("error grouping by %s: %w", field, err)
	}

	counts := make(map[string]int64, len(results))
	for _, result := range results {
		counts[result.Label] = result.Count
	}
	return counts, nil
}

// DeleteAll removes every stored comment. Irreversible. The auto-increment
// sequence is not reset, so ids continue from the prior high-water mark.
func (ds *DataStore) DeleteAll() error {
	if err := ds.DB.Where("1 = 1").Delete(&Comment{}).Error; err != nil {
		return errors.New(fmt.Errorf("clearing comments: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return nil
}

// performAutoMigration automates database migrations with error handling.
// AutoMigrate is create-if-absent and never drops existing data, so running
// it on every startup is safe.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Comment{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
