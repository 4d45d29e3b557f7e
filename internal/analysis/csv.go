// Package analysis ties classification and persistence together: single
// comment ingestion, bulk ingestion from a CSV dataset, and stateless
// analysis for the command line.
package analysis

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/errors"
)

// CommentRow is one raw record from the ingestion dataset.
type CommentRow struct {
	Text   string
	Author string
}

const (
	columnReviewText = "review_text"
	columnUserID     = "user_id"
)

// ReadCommentRows loads the ingestion dataset from a CSV file. The file must
// carry a header row with a review_text column; a user_id column is optional
// and defaults to the unknown-author placeholder. Rows with blank text are
// returned as-is and rejected later by the ingestion service, failing the
// whole batch.
func ReadCommentRows(path string) ([]CommentRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("csv_path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileParsing).
			Context("csv_path", path).
			Build()
	}

	textIdx, authorIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case columnReviewText:
			textIdx = i
		case columnUserID:
			authorIdx = i
		}
	}
	if textIdx < 0 {
		return nil, errors.Newf("missing required column %q", columnReviewText).
			Component("analysis").
			Category(errors.CategoryFileParsing).
			Context("csv_path", path).
			Build()
	}

	var rows []CommentRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).
				Component("analysis").
				Category(errors.CategoryFileParsing).
				Context("csv_path", path).
				Build()
		}
		text := ""
		if textIdx < len(record) {
			text = strings.TrimSpace(record[textIdx])
		}
		author := datastore.AuthorUnknown
		if authorIdx >= 0 && authorIdx < len(record) {
			if a := strings.TrimSpace(record[authorIdx]); a != "" {
				author = a
			}
		}
		rows = append(rows, CommentRow{Text: text, Author: author})
	}
	return rows, nil
}
