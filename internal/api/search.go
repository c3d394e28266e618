// internal/api/search.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/barangay"
)

// initSearchRoutes registers the suggestion endpoints.
func (c *Controller) initSearchRoutes() {
	g := c.Group.Group("/search", c.auth.RequireAuth())
	g.GET("/suggestions", c.GetSuggestions)
	g.GET("/barangays", c.GetBarangaySuggestions)
}

// suggestionResponse is one entry of the suggestion list.
type suggestionResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Barangay  string `json:"barangay,omitempty"`
	Lineage   string `json:"lineage,omitempty"`
	Age       *int   `json:"age,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// GetSuggestions handles GET /api/v1/search/suggestions?q=. An empty term
// returns an empty list without querying the store. Query failures degrade
// to an empty list; they are never surfaced as errors.
func (c *Controller) GetSuggestions(ctx echo.Context) error {
	term := ctx.QueryParam("q")

	people, err := c.planner.Suggest(ctx.Request().Context(), term)
	if err != nil {
		// The planner fails open; treat a future error the same way.
		c.logger.Error("suggestion query failed", "error", err)
		people = nil
	}

	out := make([]suggestionResponse, 0, len(people))
	for i := range people {
		p := &people[i]
		out = append(out, suggestionResponse{
			ID:        p.PublicID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Barangay:  p.Barangay,
			Lineage:   p.Lineage,
			Age:       p.Age,
			PhotoURL:  p.PhotoURL,
		})
	}
	return ctx.JSON(http.StatusOK, out)
}

// GetBarangaySuggestions handles GET /api/v1/search/barangays?q=, matching
// against the fixed enumeration rather than the collection.
func (c *Controller) GetBarangaySuggestions(ctx echo.Context) error {
	limit := c.Settings.Registry.Search.SuggestionLimit
	names := barangay.MatchPrefix(ctx.QueryParam("q"), limit)
	if names == nil {
		names = []string{}
	}
	return ctx.JSON(http.StatusOK, names)
}
