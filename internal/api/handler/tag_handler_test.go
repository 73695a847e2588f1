package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/domain"
)

type stubTagService struct {
	listFn   func(ctx context.Context, userID string) ([]*domain.Tag, error)
	createFn func(ctx context.Context, userID, name string) (*domain.Tag, error)
}

func (s *stubTagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTagService) CreateTag(ctx context.Context, userID, name string) (*domain.Tag, error) {
	return s.createFn(ctx, userID, name)
}

func TestTagHandler_List_UsesCaller(t *testing.T) {
	stub := &stubTagService{
		listFn: func(ctx context.Context, userID string) ([]*domain.Tag, error) {
			if userID != "u-1" {
				t.Fatalf("expected caller u-1, got %q", userID)
			}
			return []*domain.Tag{{ID: "t-2", Name: "Vegan"}, {ID: "t-1", Name: "Dessert"}}, nil
		},
	}
	h := NewTagHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/tags", "")
	middleware.SetUser(c, &domain.User{ID: "u-1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []tagResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != "Vegan" || resp[1].Name != "Dessert" {
		t.Fatalf("unexpected tags: %+v", resp)
	}
}

func TestTagHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubTagService{
		listFn: func(ctx context.Context, userID string) ([]*domain.Tag, error) { return nil, nil },
	}
	h := NewTagHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/tags", "")
	middleware.SetUser(c, &domain.User{ID: "u-1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestTagHandler_RequiresUser(t *testing.T) {
	h := NewTagHandler(&stubTagService{})

	c, _ := newJSONContext(http.MethodGet, "/tags", "")
	if err := h.List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	c, _ = newJSONContext(http.MethodPost, "/tags", `{"name":"Vegan"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTagHandler_Create(t *testing.T) {
	stub := &stubTagService{
		createFn: func(ctx context.Context, userID, name string) (*domain.Tag, error) {
			return &domain.Tag{ID: "t-1", UserID: userID, Name: name}, nil
		},
	}
	h := NewTagHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/tags", `{"name":"Vegan"}`)
	middleware.SetUser(c, &domain.User{ID: "u-1"})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodPost, "/tags", `{"name":""}`)
	middleware.SetUser(c, &domain.User{ID: "u-1"})
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
