package service

import (
	"context"

	"strconv"
	"testing"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleNight(s string) models.DateRange {
	return models.DateRange{Start: day(s), End: day(s)}
}

func TestOccupancy_Bookings(t *testing.T) {
	night := day("2018-12-26")
	ledger := &fakeLedger{bookings: repeatBooking(6, models.RowBooking, night, night, "100.00")}
	svc := NewOccupancyService(queenSuite(10), ledger)

	occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, "60.0", *occ)
}

func TestOccupancy_WithBlockedRooms(t *testing.T) {
	night := day("2018-12-26")
	ledger := &fakeLedger{
		bookings: repeatBooking(6, models.RowBooking, night, night, "100.00"),
		blocks:   []models.BlockedRoom{{ID: 1, HotelRoomID: 1, ReservedNightDate: night, Rooms: 4}},
	}
	svc := NewOccupancyService(queenSuite(10), ledger)

	occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, "100.0", *occ)
}

func TestOccupancy_CancellationsSubtract(t *testing.T) {
	night := day("2018-12-26")
	bookings := repeatBooking(6, models.RowBooking, night, night, "100.00")
	bookings = append(bookings, repeatBooking(2, models.RowCancellation, night, night, "0.00")...)
	svc := NewOccupancyService(queenSuite(10), &fakeLedger{bookings: bookings})

	occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	require.NoError(t, err)
	assert.Equal(t, "40.0", *occ)
}

func TestOccupancy_NegativeNetIsNotClamped(t *testing.T) {
	night := day("2018-12-26")
	bookings := repeatBooking(3, models.RowCancellation, night, night, "0.00")
	svc := NewOccupancyService(queenSuite(10), &fakeLedger{bookings: bookings})

	occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	require.NoError(t, err)
	assert.Equal(t, "-30.0", *occ)
}

func TestOccupancy_MultiNightRange(t *testing.T) {
	bookings := repeatBooking(5, models.RowBooking, day("2018-12-26"), day("2018-12-01"), "100.00")
	bookings = append(bookings, repeatBooking(5, models.RowBooking, day("2018-12-27"), day("2018-12-01"), "100.00")...)
	bookings = append(bookings, repeatBooking(5, models.RowBooking, day("2018-12-30"), day("2018-12-01"), "100.00")...)
	svc := NewOccupancyService(queenSuite(10), &fakeLedger{bookings: bookings})

	occ, err := svc.Occupancy(context.Background(), 1, models.DateRange{Start: day("2018-12-26"), End: day("2018-12-28")})

	require.NoError(t, err)
	assert.Equal(t, "33.33", *occ)
}

func TestOccupancy_InvertedRangeIsNil(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewOccupancyService(queenSuite(10), ledger)

	for _, end := range []string{"2018-12-25", "2018-12-20"} {
		occ, err := svc.Occupancy(context.Background(), 1, models.DateRange{Start: day("2018-12-26"), End: day(end)})
		require.NoError(t, err)
		assert.Nil(t, occ, "end %s", end)
	}
	assert.Zero(t, ledger.calls)
}

func TestOccupancy_ZeroCapacityIsNil(t *testing.T) {
	svc := NewOccupancyService(queenSuite(0), &fakeLedger{})

	occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestOccupancy_RoomNotFound(t *testing.T) {
	svc := NewOccupancyService(queenSuite(10), &fakeLedger{})

	_, err := svc.Occupancy(context.Background(), 99, singleNight("2018-12-26"))

	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestOccupancy_StorageErrorPropagates(t *testing.T) {
	svc := NewOccupancyService(queenSuite(10), &fakeLedger{err: errStorage})

	_, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	assert.ErrorIs(t, err, errStorage)
}

func TestOccupancy_RoomLookupErrorPropagates(t *testing.T) {
	svc := NewOccupancyService(&fakeRooms{err: errStorage}, &fakeLedger{})

	_, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))

	assert.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrRoomNotFound)
}

func TestOccupancy_MonotonicInNet(t *testing.T) {
	night := day("2018-12-26")
	var prev string
	for n := 0; n <= 12; n++ {
		svc := NewOccupancyService(queenSuite(7), &fakeLedger{bookings: repeatBooking(n, models.RowBooking, night, night, "10.00")})
		occ, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))
		require.NoError(t, err)
		if n > 0 {
			assert.True(t, parsePct(t, *occ) >= parsePct(t, prev), "%s after %s", *occ, prev)
		}
		prev = *occ
	}
}

func TestOccupancy_Idempotent(t *testing.T) {
	night := day("2018-12-26")
	svc := NewOccupancyService(queenSuite(3), &fakeLedger{bookings: repeatBooking(1, models.RowBooking, night, night, "10.00")})

	first, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))
	require.NoError(t, err)
	second, err := svc.Occupancy(context.Background(), 1, singleNight("2018-12-26"))
	require.NoError(t, err)

	assert.Equal(t, "33.33", *first)
	assert.Equal(t, *first, *second)
}

func parsePct(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return f
}
