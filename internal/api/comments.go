package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/econsult/commentnet-go/internal/datastore"
	"github.com/econsult/commentnet-go/internal/errors"
)

// initCommentRoutes registers the comment ingestion and listing endpoints.
func (c *Controller) initCommentRoutes() {
	c.Group.GET("/comments", c.GetComments)
	c.Group.POST("/comments", c.PostComment)
	c.Group.POST("/comments/analyze-all", c.AnalyzeAll)
	c.Group.POST("/comments/clear", c.ClearComments)
}

// CommentEntry is one stored comment in a listing response. Score is only
// populated when the caller asked for live re-scoring.
type CommentEntry struct {
	ID        uint   `json:"id"`
	Comment   string `json:"comment"`
	Sentiment string `json:"sentiment"`
	Intent    string `json:"intent"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
	Score     string `json:"score,omitempty"`
}

// CommentsResponse wraps a comment listing.
type CommentsResponse struct {
	Comments []CommentEntry `json:"comments"`
	Total    int            `json:"total"`
}

// PostCommentRequest is the body of a single comment submission.
type PostCommentRequest struct {
	Comment string `json:"comment_text" form:"comment_text"`
	Author  string `json:"author" form:"author"`
}

// PostCommentResponse returns the stored record together with refreshed
// dashboard counters.
type PostCommentResponse struct {
	Comment CommentEntry             `json:"comment"`
	Stats   datastore.DashboardStats `json:"stats"`
}

// GetComments lists every stored comment, most recent first. With
// ?scores=true each comment is re-run through the sentiment model and the
// response carries a confidence score per row; a row whose re-scoring fails
// gets an empty score instead of failing the listing.
func (c *Controller) GetComments(ctx echo.Context) error {
	comments, err := c.DS.GetAllComments()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get comments", http.StatusInternalServerError)
	}

	withScores, _ := strconv.ParseBool(ctx.QueryParam("scores"))

	response := CommentsResponse{
		Comments: make([]CommentEntry, 0, len(comments)),
		Total:    len(comments),
	}
	for i := range comments {
		entry := commentEntry(&comments[i])
		if withScores {
			result, err := c.Classifier.Classify(ctx.Request().Context(), comments[i].Comment)
			if err != nil {
				c.apiLogger.Warn("re-scoring failed for comment",
					"id", comments[i].ID, "error", err)
			} else {
				entry.Score = result.DisplayScore()
			}
		}
		response.Comments = append(response.Comments, entry)
	}
	return ctx.JSON(http.StatusOK, response)
}

// PostComment classifies and stores one comment.
func (c *Controller) PostComment(ctx echo.Context) error {
	var req PostCommentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	comment, stats, err := c.Analysis.IngestComment(ctx.Request().Context(), req.Comment, req.Author)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryValidation) {
			return c.HandleError(ctx, err, "Comment text must not be empty", http.StatusBadRequest)
		}
		if errors.HasCategory(err, errors.CategoryModelInference) {
			return c.HandleError(ctx, err, "Sentiment model unavailable", http.StatusBadGateway)
		}
		return c.HandleError(ctx, err, "Failed to store comment", http.StatusInternalServerError)
	}

	c.invalidateStatsCache()
	return ctx.JSON(http.StatusCreated, PostCommentResponse{
		Comment: commentEntry(comment),
		Stats:   *stats,
	})
}

// AnalyzeAllRequest optionally overrides the configured dataset path.
type AnalyzeAllRequest struct {
	Path string `json:"path"`
}

// AnalyzeAll bulk-ingests the configured CSV dataset. Either the whole file
// lands or none of it does.
func (c *Controller) AnalyzeAll(ctx echo.Context) error {
	var req AnalyzeAllRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	path := req.Path
	if path == "" {
		path = c.Settings.Ingest.CSVPath
	}

	count, err := c.Analysis.IngestCSV(ctx.Request().Context(), path)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryFileIO) || errors.HasCategory(err, errors.CategoryFileParsing) {
			return c.HandleError(ctx, err, "Failed to read dataset", http.StatusBadRequest)
		}
		if errors.HasCategory(err, errors.CategoryModelInference) {
			return c.HandleError(ctx, err, "Sentiment model unavailable", http.StatusBadGateway)
		}
		return c.HandleError(ctx, err, "Failed to ingest dataset", http.StatusInternalServerError)
	}

	c.invalidateStatsCache()
	return ctx.JSON(http.StatusOK, map[string]any{"ingested": count, "path": path})
}

// ClearComments deletes every stored comment.
func (c *Controller) ClearComments(ctx echo.Context) error {
	if err := c.Analysis.Clear(); err != nil {
		return c.HandleError(ctx, err, "Failed to clear comments", http.StatusInternalServerError)
	}

	c.invalidateStatsCache()
	return ctx.JSON(http.StatusOK, map[string]any{"cleared": true})
}

func commentEntry(comment *datastore.Comment) CommentEntry {
	return CommentEntry{
		ID:        comment.ID,
		Comment:   comment.Comment,
		Sentiment: comment.Sentiment,
		Intent:    comment.Intent,
		Timestamp: comment.Timestamp,
		Author:    comment.Author,
	}
}
