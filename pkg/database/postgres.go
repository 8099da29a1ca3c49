package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func NewPostgresDB(dsn string, pool PoolConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready",
		zap.Int("max_open_conns", pool.MaxOpenConns),
		zap.Int("max_idle_conns", pool.MaxIdleConns),
	)
	return db, nil
}

// Migrate creates the ledger tables and the lookup indexes the analytics queries rely on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Hotel{}, &models.HotelRoom{}, &models.Booking{}, &models.BlockedRoom{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Every analytics query filters by room and night.
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_night
			ON bookings (hotelroom_id, reserved_night_date, row_type)`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_rooms_room_night
			ON blocked_rooms (hotelroom_id, reserved_night_date)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
