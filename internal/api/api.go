// internal/api/api.go
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/mquezada/katutubo/internal/classify"
	"github.com/mquezada/katutubo/internal/conf"
	"github.com/mquezada/katutubo/internal/datastore"
	"github.com/mquezada/katutubo/internal/errors"
	"github.com/mquezada/katutubo/internal/media"
	"github.com/mquezada/katutubo/internal/observability"
	"github.com/mquezada/katutubo/internal/search"
	"github.com/mquezada/katutubo/internal/security"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings

	classifier *classify.Classifier
	planner    *search.Planner
	auth       *security.Service
	photos     *media.Store
	metrics    *observability.Metrics
	statsCache *cache.Cache
	logger     *slog.Logger
}

// New creates the API controller and registers all routes.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	auth *security.Service, photos *media.Store, metrics *observability.Metrics) *Controller {

	vocab := classify.Vocabulary{
		StudentKeywords:        settings.Registry.Vocabulary.StudentKeywords,
		EmptyOccupationMarkers: settings.Registry.Vocabulary.EmptyOccupationMarkers,
		HealthySynonyms:        settings.Registry.Vocabulary.HealthySynonyms,
	}

	statsTTL := time.Duration(settings.Registry.StatsCacheSeconds) * time.Second
	if statsTTL <= 0 {
		statsTTL = 30 * time.Second
	}

	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		classifier: classify.NewClassifier(vocab),
		planner: search.NewPlanner(ds,
			search.WithLimits(settings.Registry.Search.SuggestionLimit, settings.Registry.Search.FallbackScanLimit),
			search.WithMetrics(metrics)),
		auth:       auth,
		photos:     photos,
		metrics:    metrics,
		statsCache: cache.New(statsTTL, time.Minute),
		logger:     slog.Default().With("service", "api"),
	}

	e.Use(middleware.Recover())
	e.Use(c.metricsMiddleware())

	c.Group = e.Group("/api/v1")

	c.initAuthRoutes()
	c.initPeopleRoutes()
	c.initSearchRoutes()
	c.initStatsRoutes()
	c.initBarangayRoutes()
	c.initMediaRoutes()

	c.Group.GET("/health", c.GetHealth)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}
	if photos != nil {
		e.Static(settings.Media.PublicPath, photos.BaseDir())
	}

	return c
}

// PaginatedResponse represents a paginated API response.
type PaginatedResponse struct {
	Data        any   `json:"data"`
	Total       int   `json:"total"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleError logs err and writes a JSON error response. Error categories
// map onto HTTP status codes; the raw error text stays in the log.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, fallbackStatus int) error {
	status := fallbackStatus
	switch errors.CategoryOf(err) {
	case errors.CategoryNotFound:
		status = http.StatusNotFound
	case errors.CategoryValidation:
		status = http.StatusBadRequest
	case errors.CategoryAuth:
		status = http.StatusUnauthorized
	}
	c.logger.Error(message, "error", err, "path", ctx.Request().URL.Path, "status", status)
	return ctx.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// GetHealth handles GET /api/v1/health.
func (c *Controller) GetHealth(ctx echo.Context) error {
	count, err := c.DS.CountAll()
	if err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
		})
	}
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"records": count,
	})
}

// metricsMiddleware records request counts and latency per route.
func (c *Controller) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if c.metrics == nil {
				return next(ctx)
			}
			start := time.Now()
			err := next(ctx)
			path := ctx.Path()
			method := ctx.Request().Method
			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			c.metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			c.metrics.HTTPDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
