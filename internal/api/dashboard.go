package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/econsult/commentnet-go/internal/datastore"
)

const (
	statsCacheKey     = "dashboard_stats"
	breakdownCacheKey = "breakdown"
)

// initDashboardRoutes registers the aggregate endpoints.
func (c *Controller) initDashboardRoutes() {
	c.Group.GET("/dashboard/stats", c.GetDashboardStats)
	c.Group.GET("/analytics", c.GetAnalytics)
}

// GetDashboardStats returns the headline counters: total plus the three
// sentiment buckets.
func (c *Controller) GetDashboardStats(ctx echo.Context) error {
	if cached, found := c.statsCache.Get(statsCacheKey); found {
		if stats, ok := cached.(datastore.DashboardStats); ok {
			return ctx.JSON(http.StatusOK, stats)
		}
	}

	stats, err := c.DS.GetDashboardStats()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get dashboard statistics", http.StatusInternalServerError)
	}

	c.statsCache.Set(statsCacheKey, stats, cache.DefaultExpiration)
	return ctx.JSON(http.StatusOK, stats)
}

// GetAnalytics returns the full sentiment and intent breakdowns for charts.
func (c *Controller) GetAnalytics(ctx echo.Context) error {
	if cached, found := c.statsCache.Get(breakdownCacheKey); found {
		if breakdown, ok := cached.(datastore.Breakdown); ok {
			return ctx.JSON(http.StatusOK, breakdown)
		}
	}

	breakdown, err := c.DS.GetBreakdown()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get analytics breakdown", http.StatusInternalServerError)
	}

	c.statsCache.Set(breakdownCacheKey, breakdown, cache.DefaultExpiration)
	return ctx.JSON(http.StatusOK, breakdown)
}
