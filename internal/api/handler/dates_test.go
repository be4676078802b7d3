package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

func TestParseDay_ISO(t *testing.T) {
	got, err := parseDay("2026-09-10")
	if err != nil {
		t.Fatalf("parseDay returned error: %v", err)
	}
	want := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDay_Legacy(t *testing.T) {
	got, err := parseDay("10-09-2026")
	if err != nil {
		t.Fatalf("parseDay returned error: %v", err)
	}
	want := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "2026/09/10", "2026-13-01", "32-01-2026"} {
		if _, err := parseDay(s); !errors.Is(err, domain.ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestFormatDay(t *testing.T) {
	d := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	if got := formatDay(d); got != "2026-09-10" {
		t.Fatalf("got %q", got)
	}
}
