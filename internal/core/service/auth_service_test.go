package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

func newAuthFixture() (*stubUserRepo, *AuthService) {
	repo := &stubUserRepo{store: newMemStore()}
	return repo, NewAuthService(repo, "secret", time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		UserID:   "alice",
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "Sup3r$ecret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3r$ecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_AdminRole(t *testing.T) {
	_, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Root",
		UserID:   "root",
		Email:    "root@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{UserID: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing fields: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "X", UserID: "x", Email: "x@example.com", Password: "Sup3r$ecret", Role: "superuser",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad role: expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	_, svc := newAuthFixture()

	base := ports.RegisterInput{Name: "Alice", UserID: "alice", Email: "alice@example.com", Password: "Sup3r$ecret"}
	if _, err := svc.Register(context.Background(), base); err != nil {
		t.Fatalf("first register: %v", err)
	}

	dupEmail := base
	dupEmail.UserID = "alice2"
	if _, err := svc.Register(context.Background(), dupEmail); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	dupID := base
	dupID.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), dupID); !errors.Is(err, domain.ErrUserIDTaken) {
		t.Fatalf("expected ErrUserIDTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", UserID: "alice", Email: "alice@example.com", Password: "Sup3r$ecret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.UserID != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tkn *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["user_id"] != "alice" || claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("missing exp claim")
	}
	if remaining := time.Until(time.Unix(int64(exp), 0)); remaining <= 0 || remaining > time.Hour {
		t.Fatalf("unexpected token lifetime: %v", remaining)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	_, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", UserID: "alice", Email: "alice@example.com", Password: "Sup3r$ecret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	_, svc := newAuthFixture()

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
