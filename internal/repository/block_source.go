package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Eursukkul/booking-microservice/analytics-service/config"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"gorm.io/gorm"
)

// BlockSource supplies the number of rooms held back from sale for a room over
// a range of nights.
type BlockSource interface {
	BlockedRooms(ctx context.Context, roomID uint, r models.DateRange) (int64, error)
}

// NewBlockSource picks the implementation named by config.BlockSource*.
func NewBlockSource(db *gorm.DB, kind string) (BlockSource, error) {
	switch kind {
	case config.BlockSourceBlockedRooms:
		return &blockedRoomsSource{db: db}, nil
	case config.BlockSourceLedgerRows:
		return &ledgerRowsSource{db: db}, nil
	default:
		return nil, fmt.Errorf("unknown block source %q", kind)
	}
}

// blockedRoomsSource sums blocked_rooms.rooms.
type blockedRoomsSource struct {
	db *gorm.DB
}

func (s *blockedRoomsSource) BlockedRooms(ctx context.Context, roomID uint, dr models.DateRange) (int64, error) {
	var total sql.NullInt64
	err := s.db.WithContext(ctx).
		Model(&models.BlockedRoom{}).
		Select("SUM(rooms)").
		Where("hotelroom_id = ? AND reserved_night_date BETWEEN ? AND ?",
			roomID, dr.Start.Format(DateLayout), dr.End.Format(DateLayout)).
		Row().
		Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// ledgerRowsSource counts ledger rows of type block, one room each.
type ledgerRowsSource struct {
	db *gorm.DB
}

func (s *ledgerRowsSource) BlockedRooms(ctx context.Context, roomID uint, dr models.DateRange) (int64, error) {
	return countRows(ctx, s.db, roomID, dr, models.RowBlock)
}
