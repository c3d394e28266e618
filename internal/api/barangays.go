// internal/api/barangays.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/barangay"
)

// initBarangayRoutes registers the barangay endpoints.
func (c *Controller) initBarangayRoutes() {
	g := c.Group.Group("/barangays", c.auth.RequireAuth())
	g.GET("", c.ListBarangays)
}

// barangayResponse is one barangay with its registered population.
type barangayResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Population int64  `json:"population"`
}

// ListBarangays handles GET /api/v1/barangays: the fixed enumeration in
// listing order, each with its population count. Barangays without records
// report zero.
func (c *Controller) ListBarangays(ctx echo.Context) error {
	counts, err := c.DS.CountByBarangay()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to count barangay populations", http.StatusInternalServerError)
	}

	byName := make(map[string]int64, len(counts))
	for _, bc := range counts {
		byName[bc.Barangay] = bc.Count
	}

	all := barangay.All()
	out := make([]barangayResponse, 0, len(all))
	for _, b := range all {
		out = append(out, barangayResponse{
			ID:         b.ID,
			Name:       b.Name,
			Population: byName[b.Name],
		})
	}
	return ctx.JSON(http.StatusOK, out)
}
