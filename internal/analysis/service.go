package analysis

import (
	"context"
	"log/slog"
	"strings"

	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/econsult/commentnet-go/internal/intent"
	"github.com/econsult/commentnet-go/internal/logging"
	"github.com/econsult/commentnet-go/internal/observability"
	"github.com/econsult/commentnet-go/internal/sentiment"
)

// Analysis is the classification outcome for one comment, before or without
// persistence.
type Analysis struct {
	Sentiment sentiment.Result
	Intent    intent.Label
}

// Service runs comments through both classifiers and persists the results.
type Service struct {
	ds         datastore.Interface
	classifier *sentiment.Classifier
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewService creates an analysis service. Metrics may be nil.
func NewService(ds datastore.Interface, classifier *sentiment.Classifier, metrics *observability.Metrics) *Service {
	return &Service{
		ds:         ds,
		classifier: classifier,
		metrics:    metrics,
		logger:     logging.ForService("analysis"),
	}
}

// Analyze classifies a comment without storing it.
func (s *Service) Analyze(ctx context.Context, text string) (Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Analysis{}, errors.Newf("comment text is empty").
			Component("analysis").
			Category(errors.CategoryValidation).
			Build()
	}

	result, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.countError("classification")
		return Analysis{}, err
	}

	return Analysis{
		Sentiment: result,
		Intent:    intent.Classify(text),
	}, nil
}

// IngestComment classifies a single comment, stores it, and returns the
// stored record together with refreshed dashboard stats so the caller can
// repaint counters without a second round trip.
func (s *Service) IngestComment(ctx context.Context, text, author string) (*datastore.Comment, *datastore.DashboardStats, error) {
	analysis, err := s.Analyze(ctx, text)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryValidation) {
			s.countError("validation")
		}
		return nil, nil, err
	}

	if strings.TrimSpace(author) == "" {
		author = datastore.AuthorUnknown
	}

	comment := &datastore.Comment{
		Comment:   text,
		Sentiment: string(analysis.Sentiment.Label),
		Intent:    string(analysis.Intent),
		Author:    author,
	}
	err = s.ds.Save(comment)
	s.countDB("save", err)
	if err != nil {
		s.countError("database")
		return nil, nil, err
	}
	s.countIngested("single")
	s.logger.Info("comment ingested",
		"id", comment.ID,
		"sentiment", comment.Sentiment,
		"intent", comment.Intent)

	stats, err := s.ds.GetDashboardStats()
	if err != nil {
		return nil, nil, err
	}
	return comment, &stats, nil
}

// IngestCSV classifies every row of the dataset at path and stores them in
// one transaction. Either the whole file lands or none of it does; a blank
// row or a classification failure halfway through leaves the store untouched.
func (s *Service) IngestCSV(ctx context.Context, path string) (int, error) {
	rows, err := ReadCommentRows(path)
	if err != nil {
		s.countError("validation")
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	comments := make([]*datastore.Comment, 0, len(rows))
	for _, row := range rows {
		if row.Text == "" {
			s.countError("validation")
			return 0, errors.Newf("blank comment text in dataset").
				Component("analysis").
				Category(errors.CategoryValidation).
				Context("csv_path", path).
				Context("row", len(comments)+1).
				Build()
		}
		result, err := s.classifier.Classify(ctx, row.Text)
		if err != nil {
			s.countError("classification")
			return 0, errors.New(err).
				Component("analysis").
				Category(errors.CategoryModelInference).
				Context("csv_path", path).
				Context("row", len(comments)+1).
				Build()
		}
		comments = append(comments, &datastore.Comment{
			Comment:   row.Text,
			Sentiment: string(result.Label),
			Intent:    string(intent.Classify(row.Text)),
			Author:    row.Author,
		})
	}

	err = s.ds.SaveAll(comments)
	s.countDB("save_batch", err)
	if err != nil {
		s.countError("database")
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.CommentsIngested.WithLabelValues("bulk").Add(float64(len(comments)))
	}
	s.logger.Info("dataset ingested", "path", path, "comments", len(comments))
	return len(comments), nil
}

// Clear deletes every stored comment.
func (s *Service) Clear() error {
	err := s.ds.DeleteAll()
	s.countDB("delete_all", err)
	if err != nil {
		return err
	}
	s.logger.Info("comment store cleared")
	return nil
}

func (s *Service) countIngested(source string) {
	if s.metrics != nil {
		s.metrics.CommentsIngested.WithLabelValues(source).Inc()
	}
}

func (s *Service) countError(kind string) {
	if s.metrics != nil {
		s.metrics.IngestErrors.WithLabelValues(kind).Inc()
	}
}

func (s *Service) countDB(operation string, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.DBOperations.WithLabelValues(operation, status).Inc()
}
