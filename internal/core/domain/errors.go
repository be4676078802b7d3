package domain

import "errors"

var (
	// Not found.
	ErrAccountNotFound = errors.New("account not found")
	ErrHotelNotFound   = errors.New("hotel not found")

	// Conflicts.
	ErrSlotUnavailable    = errors.New("hotel unavailable for booking on the given date")
	ErrDuplicateHotelCode = errors.New("hotel with the same hotelId already exists")
	ErrDuplicateHotelName = errors.New("hotel with the same name already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserIDTaken        = errors.New("userId already exists")
	// ErrDuplicateIdempotencyKey means the account already used this key for
	// a different request, or a concurrent retry won the insert first.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

	// Validation.
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date")
	ErrPastDate     = errors.New("booking date must not be in the past")

	// Auth.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)
