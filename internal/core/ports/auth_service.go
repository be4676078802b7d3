package ports

import (
	"context"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account. Role defaults
// to domain.RoleUser when empty.
type RegisterInput struct {
	Name     string
	UserID   string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the email/password pair and returns a signed bearer
	// token together with the authenticated account.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
