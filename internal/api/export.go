package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/econsult/commentnet-go/internal/export"
)

// initExportRoutes registers the spreadsheet download endpoint.
func (c *Controller) initExportRoutes() {
	c.Group.GET("/comments/export", c.ExportComments)
}

// ExportComments streams the stored comments as a spreadsheet download.
// ?format selects xlsx (default) or csv; ?clear=true empties the store once
// the file has been rendered. A failed clear still delivers the file.
func (c *Controller) ExportComments(ctx echo.Context) error {
	format, err := export.ParseFormat(ctx.QueryParam("format"))
	if err != nil {
		return c.HandleError(ctx, err, "Unsupported export format", http.StatusBadRequest)
	}
	clearAfter, _ := strconv.ParseBool(ctx.QueryParam("clear"))

	result, err := c.Exporter.Export(format, clearAfter)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to export comments", http.StatusInternalServerError)
	}
	if clearAfter {
		c.invalidateStatsCache()
	}
	if result.ClearErr != nil {
		c.apiLogger.Warn("store not cleared after export", "error", result.ClearErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", result.Filename))
	return ctx.Blob(http.StatusOK, result.ContentType, result.Data)
}
