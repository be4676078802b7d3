package handler

import (
	"fmt"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

const (
	dateLayoutISO    = "2006-01-02"
	dateLayoutLegacy = "02-01-2006"
)

// parseDay normalizes an incoming date string to the canonical UTC-midnight
// representation the core operates on. ISO (YYYY-MM-DD) is the primary
// format; DD-MM-YYYY is accepted for legacy clients.
func parseDay(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayoutISO, s, time.UTC); err == nil {
		return domain.Day(t), nil
	}
	if t, err := time.ParseInLocation(dateLayoutLegacy, s, time.UTC); err == nil {
		return domain.Day(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a valid date, use YYYY-MM-DD", domain.ErrInvalidDate, s)
}

// formatDay renders a canonical day for responses.
func formatDay(t time.Time) string {
	return t.UTC().Format(dateLayoutISO)
}
