package calendar

import "time"

// Attributes is the full derived attribute set for one calendar date.
type Attributes struct {
	// DateKey is year*10000 + month*100 + day, e.g. 2026-09-01 -> 20260901.
	// It is a pure function of the calendar date, so deriving the same date
	// twice always yields the same key.
	DateKey int
	// Date is the civil date at midnight UTC.
	Date    time.Time
	Year    int
	Quarter int
	Month   int
	Day     int
	// DayOfWeek follows Go's time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
	DayOfWeek int
	IsWeekend bool
}

// Derive computes the calendar attributes for the civil date of t.
// Any time-of-day component is truncated; two timestamps on the same day
// derive identical attributes regardless of hour or offset representation.
func Derive(t time.Time) Attributes {
	d := Truncate(t)
	year, month, day := d.Date()
	wd := d.Weekday()

	return Attributes{
		DateKey:   Key(d),
		Date:      d,
		Year:      year,
		Quarter:   (int(month) + 2) / 3,
		Month:     int(month),
		Day:       day,
		DayOfWeek: int(wd),
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

// Key returns the date key for the civil date of t without deriving the
// rest of the attribute set.
func Key(t time.Time) int {
	year, month, day := t.UTC().Date()
	return year*10000 + int(month)*100 + day
}

// Truncate normalizes t to midnight UTC of its civil date.
func Truncate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
