// internal/api/stats.go
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/classify"
)

const statsCacheKey = "community"

// initStatsRoutes registers the aggregate endpoints.
func (c *Controller) initStatsRoutes() {
	g := c.Group.Group("/stats", c.auth.RequireAuth())
	g.GET("/community", c.GetCommunityStats)
}

// GetCommunityStats handles GET /api/v1/stats/community. The summary is
// cached briefly and invalidated on writes.
func (c *Controller) GetCommunityStats(ctx echo.Context) error {
	if cached, ok := c.statsCache.Get(statsCacheKey); ok {
		return ctx.JSON(http.StatusOK, cached.(classify.Summary))
	}

	people, err := c.DS.GetAll()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to compute community stats", http.StatusInternalServerError)
	}

	summary := c.classifier.Summarize(people, time.Now())
	c.statsCache.SetDefault(statsCacheKey, summary)
	return ctx.JSON(http.StatusOK, summary)
}
