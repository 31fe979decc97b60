package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bitecare/clinic-backend/internal/common/models"
)

// RequireRole gates a route on the session's role. A signed-in user with the
// wrong role gets 403 plus their own home path so the client can redirect.
func RequireRole(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			role, err := models.ParseRole(claims.Role)
			if err != nil {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"status":  http.StatusForbidden,
					"message": "Unknown role in session",
					"data":    nil,
				})
			}
			for _, a := range allowed {
				if role == a {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "You do not have access to this resource",
				"data":    map[string]interface{}{"redirect": role.HomePath()},
			})
		}
	}
}

// RequireVerified blocks patient flows until the account email is verified.
func RequireVerified() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			if !claims.EmailVerified {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"status":  http.StatusForbidden,
					"message": "Please verify your email address first",
					"data":    map[string]interface{}{"redirect": "/verify-email"},
				})
			}
			return next(c)
		}
	}
}
