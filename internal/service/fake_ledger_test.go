package service

import (
	"context"
	"errors"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- In-memory ledger ---

type fakeLedger struct {
	bookings []models.Booking
	blocks   []models.BlockedRoom
	err      error
	calls    int
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inRange(night time.Time, r models.DateRange) bool {
	n := dateOnly(night)
	return !n.Before(dateOnly(r.Start)) && !n.After(dateOnly(r.End))
}

func (f *fakeLedger) Contribution(ctx context.Context, roomID uint, r models.DateRange) (models.Contribution, error) {
	f.calls++
	if f.err != nil {
		return models.Contribution{}, f.err
	}
	var c models.Contribution
	for _, b := range f.bookings {
		if b.HotelRoomID != roomID || !inRange(b.ReservedNightDate, r) {
			continue
		}
		switch b.RowType {
		case models.RowBooking:
			c.Bookings++
		case models.RowCancellation:
			c.Cancellations++
		}
	}
	for _, bl := range f.blocks {
		if bl.HotelRoomID == roomID && inRange(bl.ReservedNightDate, r) {
			c.Blocked += int64(bl.Rooms)
		}
	}
	return c, nil
}

func (f *fakeLedger) PriorBookingTotals(ctx context.Context, roomID uint, night time.Time, before time.Time) (int64, decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return 0, decimal.Zero, f.err
	}
	var count int64
	revenue := decimal.Zero
	for _, b := range f.matching(roomID, night) {
		if b.BookingDatetime.Before(before) {
			count++
			revenue = revenue.Add(b.Price)
		}
	}
	return count, revenue, nil
}

func (f *fakeLedger) ListBookingsSince(ctx context.Context, roomID uint, night time.Time, since time.Time) ([]models.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Booking
	for _, b := range f.matching(roomID, night) {
		if !b.BookingDatetime.Before(since) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeLedger) matching(roomID uint, night time.Time) []models.Booking {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.HotelRoomID == roomID && b.RowType == models.RowBooking && dateOnly(b.ReservedNightDate).Equal(dateOnly(night)) {
			out = append(out, b)
		}
	}
	return out
}

// --- Room directory ---

type fakeRooms struct {
	rooms map[uint]models.HotelRoom
	err   error
}

func (f *fakeRooms) FindByID(ctx context.Context, id uint) (*models.HotelRoom, error) {
	if f.err != nil {
		return nil, f.err
	}
	room, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &room, nil
}

// --- Fixtures ---

var errStorage = errors.New("connection refused")

func queenSuite(capacity int) *fakeRooms {
	return &fakeRooms{rooms: map[uint]models.HotelRoom{
		1: {ID: 1, HotelID: 1, Name: "Queen Suite", Capacity: capacity},
	}}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func makeBooking(rowType models.RowType, night, recorded time.Time, price string) models.Booking {
	return models.Booking{
		HotelRoomID:       1,
		ReservedNightDate: night,
		BookingDatetime:   recorded,
		RowType:           rowType,
		Price:             decimal.RequireFromString(price),
	}
}

func repeatBooking(n int, rowType models.RowType, night, recorded time.Time, price string) []models.Booking {
	out := make([]models.Booking, n)
	for i := range out {
		out[i] = makeBooking(rowType, night, recorded, price)
		out[i].ID = uint(i + 1)
	}
	return out
}
