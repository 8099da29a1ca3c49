package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateLayout is how calendar dates are bound into queries against date columns.
const DateLayout = "2006-01-02"

// LedgerRepository reads aggregates from the bookings ledger and mirrors rows
// published by the upstream booking system.
type LedgerRepository interface {
	CountByRowType(ctx context.Context, roomID uint, r models.DateRange, rowType models.RowType) (int64, error)
	Contribution(ctx context.Context, roomID uint, r models.DateRange) (models.Contribution, error)
	PriorBookingTotals(ctx context.Context, roomID uint, night time.Time, before time.Time) (int64, decimal.Decimal, error)
	ListBookingsSince(ctx context.Context, roomID uint, night time.Time, since time.Time) ([]models.Booking, error)
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	UpsertBlockedRoom(ctx context.Context, block *models.BlockedRoom) error
}

type ledgerRepository struct {
	db     *gorm.DB
	blocks BlockSource
}

func NewLedgerRepository(db *gorm.DB, blocks BlockSource) LedgerRepository {
	return &ledgerRepository{db: db, blocks: blocks}
}

func (r *ledgerRepository) CountByRowType(ctx context.Context, roomID uint, dr models.DateRange, rowType models.RowType) (int64, error) {
	return countRows(ctx, r.db, roomID, dr, rowType)
}

// Contribution issues one count per row type plus the block source query.
func (r *ledgerRepository) Contribution(ctx context.Context, roomID uint, dr models.DateRange) (models.Contribution, error) {
	var c models.Contribution
	var err error

	if c.Bookings, err = r.CountByRowType(ctx, roomID, dr, models.RowBooking); err != nil {
		return c, fmt.Errorf("count bookings: %w", err)
	}
	if c.Cancellations, err = r.CountByRowType(ctx, roomID, dr, models.RowCancellation); err != nil {
		return c, fmt.Errorf("count cancellations: %w", err)
	}
	if c.Blocked, err = r.blocks.BlockedRooms(ctx, roomID, dr); err != nil {
		return c, fmt.Errorf("blocked rooms: %w", err)
	}
	return c, nil
}

// PriorBookingTotals returns the count and summed price of bookings for one
// night recorded strictly before the given instant. A NULL sum comes back as zero.
func (r *ledgerRepository) PriorBookingTotals(ctx context.Context, roomID uint, night time.Time, before time.Time) (int64, decimal.Decimal, error) {
	var count sql.NullInt64
	var revenue decimal.NullDecimal

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COUNT(id), SUM(price)").
		Where("hotelroom_id = ? AND reserved_night_date = ? AND row_type = ? AND booking_datetime < ?",
			roomID, night.Format(DateLayout), models.RowBooking, before).
		Row().
		Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("prior booking totals: %w", err)
	}

	if !revenue.Valid {
		revenue.Decimal = decimal.Zero
	}
	return count.Int64, revenue.Decimal, nil
}

// ListBookingsSince returns bookings for one night recorded at or after since,
// oldest first.
func (r *ledgerRepository) ListBookingsSince(ctx context.Context, roomID uint, night time.Time, since time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Select("id", "booking_datetime", "price").
		Where("hotelroom_id = ? AND reserved_night_date = ? AND row_type = ? AND booking_datetime >= ?",
			roomID, night.Format(DateLayout), models.RowBooking, since).
		Order("booking_datetime ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (r *ledgerRepository) UpsertBooking(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hotelroom_id", "reserved_night_date", "booking_datetime", "row_type", "price"}),
	}).Create(booking).Error
}

func (r *ledgerRepository) UpsertBlockedRoom(ctx context.Context, block *models.BlockedRoom) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hotelroom_id", "reserved_night_date", "rooms"}),
	}).Create(block).Error
}

func countRows(ctx context.Context, db *gorm.DB, roomID uint, dr models.DateRange, rowType models.RowType) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("hotelroom_id = ? AND reserved_night_date BETWEEN ? AND ? AND row_type = ?",
			roomID, dr.Start.Format(DateLayout), dr.End.Format(DateLayout), rowType).
		Count(&count).Error
	return count, err
}
