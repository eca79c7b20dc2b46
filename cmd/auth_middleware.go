package cmd

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/lakeservice/auth"
)

// AuthMiddleware validates JWT bearer tokens and enforces authentication
func AuthMiddleware(mode auth.AuthMode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip authentication if mode is "none"
			if mode == auth.AuthModeNone {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Bearer token required")
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "), getJWTSecret())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			// Store user info in context for handlers to use
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Set("authenticated", true)

			return next(c)
		}
	}
}

// AdminOnlyMiddleware ensures only admin users can access
func AdminOnlyMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if getAuthMode() == auth.AuthModeNone {
				return next(c)
			}
			role := c.Get("role")
			if role == nil || role.(string) != auth.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}
