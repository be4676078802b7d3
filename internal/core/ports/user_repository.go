package ports

import (
	"context"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new account. Uniqueness of the external user id and
	// the email is enforced by the store; violations surface as
	// domain.ErrUserIDTaken / domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUserID retrieves an account by its external user id.
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
