package domain

import (
	"testing"
	"time"
)

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 15, 2, 30, 45, 0, loc) // 2026-03-14 21:30 UTC

	got := Day(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestDay_Idempotent(t *testing.T) {
	d := Day(time.Date(2026, 7, 1, 13, 0, 0, 0, time.UTC))
	if !Day(d).Equal(d) {
		t.Fatalf("Day is not idempotent")
	}
}
