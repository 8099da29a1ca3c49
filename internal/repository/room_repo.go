package repository

import (
	"context"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"gorm.io/gorm"
)

// RoomRepository is the room directory: capacity lookup by id.
type RoomRepository interface {
	FindByID(ctx context.Context, id uint) (*models.HotelRoom, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.HotelRoom, error) {
	var room models.HotelRoom
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}
