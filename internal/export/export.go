// Package export renders the stored comments as downloadable spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/econsult/commentnet-go/internal/conf"
	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/econsult/commentnet-go/internal/logging"
	"github.com/econsult/commentnet-go/internal/observability"
	"github.com/xuri/excelize/v2"
)

// Format selects the spreadsheet encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format string, defaulting to xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", errors.Newf("unsupported export format %q", s).
			Component("export").
			Category(errors.CategoryValidation).
			Build()
	}
}

// header is the spreadsheet column order for both formats.
var header = []string{"Comment", "Sentiment", "Intent", "Timestamp", "Author"}

// Result is a rendered export ready to be written to disk or an HTTP
// response.
type Result struct {
	Data        []byte
	Filename    string
	ContentType string

	// ClearErr is set when the caller asked for the store to be cleared
	// after a successful export and the deletion failed. The rendered
	// bytes are still valid in that case.
	ClearErr error
}

// Service renders exports from the datastore.
type Service struct {
	ds       datastore.Interface
	settings *conf.Settings
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService creates an export service. Metrics may be nil.
func NewService(ds datastore.Interface, settings *conf.Settings, metrics *observability.Metrics) *Service {
	return &Service{
		ds:       ds,
		settings: settings,
		metrics:  metrics,
		logger:   logging.ForService("export"),
	}
}

// Export renders every stored comment in insertion order. With clearAfter
// the store is emptied once rendering succeeded; a failed deletion is
// reported through Result.ClearErr so the caller can still deliver the file.
func (s *Service) Export(format Format, clearAfter bool) (*Result, error) {
	comments, err := s.ds.GetAllCommentsInStoreOrder()
	s.countDB("list", err)
	if err != nil {
		s.countExport(format, "error")
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = renderCSV(comments)
	default:
		data, err = renderXLSX(comments, s.sheetName())
	}
	if err != nil {
		s.countExport(format, "error")
		return nil, err
	}

	result := &Result{
		Data:        data,
		Filename:    s.filename(format),
		ContentType: contentType(format),
	}
	s.countExport(format, "ok")
	s.logger.Info("export rendered", "format", format, "comments", len(comments))

	if clearAfter {
		err := s.ds.DeleteAll()
		s.countDB("delete_all", err)
		if err != nil {
			s.logger.Warn("failed to clear store after export", "error", err)
			result.ClearErr = err
		}
	}
	return result, nil
}

func (s *Service) sheetName() string {
	if s.settings != nil && s.settings.Export.Sheet != "" {
		return s.settings.Export.Sheet
	}
	return "Comments"
}

func (s *Service) filename(format Format) string {
	name := "E-Consultation_Feedback.xlsx"
	if s.settings != nil && s.settings.Export.Filename != "" {
		name = s.settings.Export.Filename
	}
	if format == FormatCSV {
		name = strings.TrimSuffix(name, ".xlsx") + ".csv"
	}
	return name
}

func contentType(format Format) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (s *Service) countExport(format Format, status string) {
	if s.metrics != nil {
		s.metrics.Exports.WithLabelValues(string(format), status).Inc()
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

func renderXLSX(comments []datastore.Comment, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, exportErr(err, "new_sheet")
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, exportErr(err, "delete_default_sheet")
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, exportErr(err, "write_header")
	}

	for i := range comments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, exportErr(err, "cell_name")
		}
		row := commentRow(&comments[i])
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, exportErr(err, "write_row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, exportErr(err, "serialize")
	}
	return buf.Bytes(), nil
}

func renderCSV(comments []datastore.Comment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, exportErr(err, "write_header")
	}
	for i := range comments {
		record := make([]string, 0, len(header))
		for _, col := range commentRow(&comments[i]) {
			record = append(record, fmt.Sprint(col))
		}
		if err := w.Write(record); err != nil {
			return nil, exportErr(err, "write_row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, exportErr(err, "serialize")
	}
	return buf.Bytes(), nil
}

func commentRow(c *datastore.Comment) []any {
	return []any{c.Comment, c.Sentiment, c.Intent, c.Timestamp, c.Author}
}

func exportErr(err error, operation string) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryExport).
		Context("operation", operation).
		Build()
}
