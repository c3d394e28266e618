// internal/api/auth.go
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mquezada/katutubo/internal/errors"
	"github.com/mquezada/katutubo/internal/security"
)

// initAuthRoutes registers login/logout and account management. Account
// creation is reserved for super_admin.
func (c *Controller) initAuthRoutes() {
	g := c.Group.Group("/auth")
	g.POST("/login", c.Login)

	authed := g.Group("", c.auth.RequireAuth())
	authed.GET("/me", c.GetCurrentUser)
	authed.POST("/logout", c.Logout)

	admin := g.Group("/users", c.auth.RequireAuth(), c.auth.RequireRole(security.RoleSuperAdmin))
	admin.POST("", c.CreateUser)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login.
func (c *Controller) Login(ctx echo.Context) error {
	var payload loginPayload
	if err := ctx.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := c.auth.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return c.HandleError(ctx, err, "Login failed", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, session)
}

// GetCurrentUser handles GET /api/v1/auth/me.
func (c *Controller) GetCurrentUser(ctx echo.Context) error {
	session, ok := security.SessionFrom(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return ctx.JSON(http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout.
func (c *Controller) Logout(ctx echo.Context) error {
	session, ok := security.SessionFrom(ctx)
	if ok {
		c.auth.Logout(session.Token)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type createUserPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// CreateUser handles POST /api/v1/auth/users.
func (c *Controller) CreateUser(ctx echo.Context) error {
	var payload createUserPayload
	if err := ctx.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.auth.CreateUser(payload.Email, payload.Password, payload.DisplayName, payload.Role); err != nil {
		return c.HandleError(ctx, err, "Failed to create user", http.StatusInternalServerError)
	}
	return ctx.NoContent(http.StatusCreated)
}
