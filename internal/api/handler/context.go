package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/domain"
)

// requireUser returns the user resolved by the Auth middleware. Handlers
// mounted without it fail closed.
func requireUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
