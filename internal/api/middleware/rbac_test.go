package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

func runRequireStaff(t *testing.T, user *domain.User) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if user != nil {
		SetUser(c, user)
	}

	called := false
	err := RequireStaff()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestRequireStaff_Allows(t *testing.T) {
	called, err := runRequireStaff(t, &domain.User{ID: "u-1", IsStaff: true})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireStaff_ForbidsRegularUser(t *testing.T) {
	called, err := runRequireStaff(t, &domain.User{ID: "u-1"})
	if called {
		t.Fatalf("should not reach next handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected 403 forbidden, got %v", err)
	}
}

func TestRequireStaff_RequiresAuthentication(t *testing.T) {
	called, err := runRequireStaff(t, nil)
	if called {
		t.Fatalf("should not reach next handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
