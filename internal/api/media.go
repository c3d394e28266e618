// internal/api/media.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/security"
)

// initMediaRoutes registers the photo upload endpoint. Uploads are
// admin-gated like every other write.
func (c *Controller) initMediaRoutes() {
	g := c.Group.Group("/media", c.auth.RequireAuth(), c.auth.RequireRole(security.RoleAdmin))
	g.POST("/photos", c.UploadPhoto)
}

// UploadPhoto handles POST /api/v1/media/photos (multipart field "photo")
// and returns the URL the stored photo is served under.
func (c *Controller) UploadPhoto(ctx echo.Context) error {
	if c.photos == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "media storage not configured")
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing photo upload")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to read photo upload", http.StatusBadRequest)
	}
	defer src.Close()

	url, err := c.photos.Save(src, fileHeader.Filename)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to store photo", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"url": url})
}
