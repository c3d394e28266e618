package security

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// sessionContextKey is the echo context key the authenticated session is
// stored under.
const sessionContextKey = "katutubo_session"

// RequireAuth returns middleware that rejects requests without a valid
// bearer token and stores the session on the request context.
func (s *Service) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			session, ok := s.Validate(token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// RequireRole returns middleware that additionally requires at least the
// given role. Must be applied after RequireAuth.
func (s *Service) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !Allows(session.Role, role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// SessionFrom returns the authenticated session stored on the context.
func SessionFrom(c echo.Context) (Session, bool) {
	v := c.Get(sessionContextKey)
	if v == nil {
		return Session{}, false
	}
	session, ok := v.(Session)
	return session, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
