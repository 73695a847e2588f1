package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

func TestMain(m *testing.M) {
	domain.PasswordHashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	seq       int
	createErr error
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors the unique email constraint of the real stores.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// CreateUser tests
// ---------------------------------------------------------------------------

const testPassword = "Testpass123"

func TestUserService_CreateUser_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Email:    "test@gmail.com",
		Password: testPassword,
		Name:     "Test name",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Email != "test@gmail.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}
	if user.PasswordHash == testPassword {
		t.Fatal("expected password to be hashed")
	}
	if !user.CheckPassword(testPassword) {
		t.Error("stored hash does not match password")
	}
	if !user.IsActive || user.IsStaff || user.IsSuperuser {
		t.Errorf("unexpected flags: active=%v staff=%v superuser=%v", user.IsActive, user.IsStaff, user.IsSuperuser)
	}
}

func TestUserService_CreateUser_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "test@GMAIL.COM", Password: testPassword})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Email != "test@gmail.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	found, err := repo.FindByEmail(context.Background(), "test@gmail.com")
	if err != nil || found.ID != user.ID {
		t.Errorf("expected lookup by normalized email to succeed, got %v", err)
	}
}

func TestUserService_CreateUser_InvalidEmailNotPersisted(t *testing.T) {
	for _, email := range []string{"", "   ", "\t\n"} {
		repo := newStubUserRepo()
		svc := NewUserService(repo, nil, zerolog.Nop())

		_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: email, Password: testPassword})
		if !errors.Is(err, domain.ErrInvalidEmail) {
			t.Errorf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("email %q: expected error to be a validation error", email)
		}
		if len(repo.byID) != 0 {
			t.Errorf("email %q: expected nothing persisted, got %d users", email, len(repo.byID))
		}
	}
}

func TestUserService_CreateUser_DuplicateDifferentCase(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "bob@example.com", Password: testPassword}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "BOB@Example.com", Password: "other-pass"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Errorf("expected a single stored user, got %d", len(repo.byID))
	}
}

func TestUserService_CreateUser_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.com", Password: testPassword}); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestUserService_CreateSuperuser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	user, err := svc.CreateSuperuser(context.Background(), "admin@gmail.com", testPassword)
	if err != nil {
		t.Fatalf("CreateSuperuser returned error: %v", err)
	}
	if !user.IsSuperuser || !user.IsStaff {
		t.Errorf("expected staff and superuser flags, got staff=%v superuser=%v", user.IsStaff, user.IsSuperuser)
	}
}

func TestUserService_CreateSuperuser_InvalidEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())

	if _, err := svc.CreateSuperuser(context.Background(), "", testPassword); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateProfile tests
// ---------------------------------------------------------------------------

func TestUserService_UpdateProfile_NameOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.com", Password: testPassword, Name: "Old"})

	name := "New name"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != name {
		t.Errorf("expected name %q, got %q", name, updated.Name)
	}
	if !updated.CheckPassword(testPassword) {
		t.Error("password must be unchanged when not provided")
	}
}

func TestUserService_UpdateProfile_PasswordRehashed(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.com", Password: testPassword, Name: "Keep"})

	newPassword := "brand-new-pass"
	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Password: &newPassword}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	stored := repo.byID[created.ID]
	if !stored.CheckPassword(newPassword) {
		t.Error("new password must be valid")
	}
	if stored.CheckPassword(testPassword) {
		t.Error("old password must no longer be valid")
	}
	if stored.Name != "Keep" {
		t.Errorf("name must be unchanged, got %q", stored.Name)
	}
}

func TestUserService_UpdateProfile_PasswordRevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newStubTokenStore()
	svc := NewUserService(repo, tokens, zerolog.Nop())
	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.com", Password: testPassword})
	tokens.tokens[created.ID] = "registered"

	name := "Renamed"
	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Name: &name}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if tokens.tokens[created.ID] != "registered" {
		t.Fatal("a name change must keep the registered token")
	}

	newPassword := "brand-new-pass"
	if _, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Password: &newPassword}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if _, ok := tokens.tokens[created.ID]; ok {
		t.Error("a password change must revoke the registered token")
	}
}

func TestUserService_UpdateProfile_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, nil, zerolog.Nop())
	created, _ := svc.CreateUser(context.Background(), ports.CreateUserInput{Email: "a@b.com", Password: testPassword})

	long := strings.Repeat("é", 40)
	_, err := svc.UpdateProfile(context.Background(), created.ID, ports.UpdateProfileInput{Password: &long})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !repo.byID[created.ID].CheckPassword(testPassword) {
		t.Error("stored password must be unchanged")
	}
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), nil, zerolog.Nop())

	name := "x"
	if _, err := svc.UpdateProfile(context.Background(), "missing", ports.UpdateProfileInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
