package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RequireStaff lets through only users flagged is_staff. It must run after Auth.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required").
					SetInternal(domain.ErrUnauthenticated)
			}
			if !user.IsStaff {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden").
					SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
