package service

import (
	"context"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/percent"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/repository"
	"github.com/shopspring/decimal"
)

// CurveSource reads the bookings that make up a booking curve.
type CurveSource interface {
	PriorBookingTotals(ctx context.Context, roomID uint, night time.Time, before time.Time) (int64, decimal.Decimal, error)
	ListBookingsSince(ctx context.Context, roomID uint, night time.Time, since time.Time) ([]models.Booking, error)
}

type BookingCurveService interface {
	// BookingCurve returns cumulative occupancy and revenue for one stay night,
	// one entry per day of a window of days ending today.
	BookingCurve(ctx context.Context, roomID uint, night time.Time, days int) (*models.BookingCurve, error)
}

type bookingCurveService struct {
	rooms  repository.RoomRepository
	ledger CurveSource
	loc    *time.Location
	now    func() time.Time
}

type CurveOption func(*bookingCurveService)

// WithLocation sets the time zone that defines "today" and day buckets.
func WithLocation(loc *time.Location) CurveOption {
	return func(s *bookingCurveService) { s.loc = loc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CurveOption {
	return func(s *bookingCurveService) { s.now = now }
}

func NewBookingCurveService(rooms repository.RoomRepository, ledger CurveSource, opts ...CurveOption) BookingCurveService {
	s := &bookingCurveService{
		rooms:  rooms,
		ledger: ledger,
		loc:    time.UTC,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingCurveService) BookingCurve(ctx context.Context, roomID uint, night time.Time, days int) (*models.BookingCurve, error) {
	if days < 1 {
		return nil, ErrInvalidWindow
	}

	room, err := findRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}
	if room.Capacity <= 0 {
		return nil, ErrNoCapacity
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	windowStart := today.AddDate(0, 0, -(days - 1))

	priorCount, priorRevenue, err := s.ledger.PriorBookingTotals(ctx, roomID, night, windowStart)
	if err != nil {
		return nil, err
	}

	bookings, err := s.ledger.ListBookingsSince(ctx, roomID, night, windowStart)
	if err != nil {
		return nil, err
	}

	dailyCount := make([]int64, days)
	dailyRevenue := make([]decimal.Decimal, days)
	for i := range dailyRevenue {
		dailyRevenue[i] = decimal.Zero
	}
	for _, b := range bookings {
		d := models.DaysBetween(windowStart, b.BookingDatetime.In(s.loc))
		if d < 0 || d >= days {
			continue
		}
		dailyCount[d]++
		dailyRevenue[d] = dailyRevenue[d].Add(b.Price)
	}

	dailyCount[0] += priorCount
	dailyRevenue[0] = dailyRevenue[0].Add(priorRevenue)

	curve := &models.BookingCurve{
		Occupancy: make([]string, days),
		Revenue:   make([]decimal.Decimal, days),
	}
	capacity := int64(room.Capacity)
	var occupied int64
	revenue := decimal.Zero
	for d := 0; d < days; d++ {
		occupied += dailyCount[d]
		revenue = revenue.Add(dailyRevenue[d])

		pct, _ := percent.OfInt(occupied, capacity)
		curve.Occupancy[d] = percent.Format(pct)
		curve.Revenue[d] = revenue
	}
	return curve, nil
}
