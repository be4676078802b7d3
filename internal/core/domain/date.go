package domain

import "time"

// Day truncates t to midnight UTC. All booking dates are day-granular and
// compared in this canonical form.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current day in canonical form.
func Today() time.Time {
	return Day(time.Now())
}
