package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of stay nights. Start and End are calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Nights returns the number of nights in the range, or 0 when End is before Start.
func (r DateRange) Nights() int {
	n := DaysBetween(r.Start, r.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST shifts.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// Contribution is the raw material of net occupancy for a room over some nights.
type Contribution struct {
	Bookings      int64
	Cancellations int64
	Blocked       int64
}

// Net is blocked + bookings - cancellations. It is not clamped at zero.
func (c Contribution) Net() int64 {
	return c.Blocked + c.Bookings - c.Cancellations
}

// BookingCurve holds one value per day of the window, oldest first.
type BookingCurve struct {
	Occupancy []string
	Revenue   []decimal.Decimal
}
