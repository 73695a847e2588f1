package handler

import (
	"time"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// errorResponse is the envelope rendered for every 4xx/5xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Users ---

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,maxbytes=72"`
	Name     string `json:"name"     validate:"max=255"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest uses pointers so absent fields stay untouched.
type updateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5,maxbytes=72"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type adminUserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Email: u.Email, Name: u.Name}
}

func toAdminUserResponse(u *domain.User) adminUserResponse {
	return adminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// --- Tags ---

type createTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type tagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTagResponses(tags []*domain.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}
