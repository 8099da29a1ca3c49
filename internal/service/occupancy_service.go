package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/percent"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/repository"
	"gorm.io/gorm"
)

// ContributionSource supplies booking, cancellation and block totals for a
// room over a range of nights, whatever the storage shape behind it.
type ContributionSource interface {
	Contribution(ctx context.Context, roomID uint, r models.DateRange) (models.Contribution, error)
}

type OccupancyService interface {
	// Occupancy returns the occupancy percentage of a room over an inclusive
	// range of nights, or nil when no room-nights are available.
	Occupancy(ctx context.Context, roomID uint, r models.DateRange) (*string, error)
}

type occupancyService struct {
	rooms  repository.RoomRepository
	ledger ContributionSource
}

func NewOccupancyService(rooms repository.RoomRepository, ledger ContributionSource) OccupancyService {
	return &occupancyService{rooms: rooms, ledger: ledger}
}

func (s *occupancyService) Occupancy(ctx context.Context, roomID uint, r models.DateRange) (*string, error) {
	room, err := findRoom(ctx, s.rooms, roomID)
	if err != nil {
		return nil, err
	}

	available := int64(room.Capacity) * int64(r.Nights())
	if available == 0 {
		return nil, nil
	}

	c, err := s.ledger.Contribution(ctx, roomID, r)
	if err != nil {
		return nil, err
	}

	pct, _ := percent.OfInt(c.Net(), available)
	occupancy := percent.Format(pct)
	return &occupancy, nil
}

func findRoom(ctx context.Context, rooms repository.RoomRepository, roomID uint) (*models.HotelRoom, error) {
	room, err := rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room %d: %w", roomID, err)
	}
	return room, nil
}
