package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	RoutingKeyBooking      = "ledger.booking"
	RoutingKeyBlockedRooms = "ledger.blocked_rooms"
)

var errMalformed = errors.New("malformed ledger message")

// LedgerWriter mirrors upstream ledger rows into the local read model.
type LedgerWriter interface {
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	UpsertBlockedRoom(ctx context.Context, block *models.BlockedRoom) error
}

type bookingMessage struct {
	ID                uint            `json:"id"`
	HotelRoomID       uint            `json:"hotelroom_id"`
	ReservedNightDate string          `json:"reserved_night_date"`
	BookingDatetime   time.Time       `json:"booking_datetime"`
	RowType           models.RowType  `json:"row_type"`
	Price             decimal.Decimal `json:"price"`
}

type blockedRoomMessage struct {
	ID                uint   `json:"id"`
	HotelRoomID       uint   `json:"hotelroom_id"`
	ReservedNightDate string `json:"reserved_night_date"`
	Rooms             int    `json:"rooms"`
}

type LedgerConsumer struct {
	writer LedgerWriter
	logger *zap.Logger
}

func NewLedgerConsumer(writer LedgerWriter, logger *zap.Logger) *LedgerConsumer {
	return &LedgerConsumer{writer: writer, logger: logger}
}

// Start consumes deliveries until msgs is closed.
func (lc *LedgerConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			lc.handleMessage(ctx, msg)
		}
		lc.logger.Info("ledger channel closed, stopping consumer")
	}()
}

func (lc *LedgerConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	log := lc.logger.With(zap.String("routing_key", msg.RoutingKey), zap.Uint64("delivery_tag", msg.DeliveryTag))

	err := lc.apply(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		log.Debug("ledger row synced")
		_ = msg.Ack(false)
	case errors.Is(err, errMalformed):
		log.Warn("dropping ledger message", zap.Error(err))
		_ = msg.Nack(false, false)
	default:
		log.Error("failed to store ledger row, requeueing", zap.Error(err))
		_ = msg.Nack(false, true)
	}
}

func (lc *LedgerConsumer) apply(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case RoutingKeyBooking:
		booking, err := decodeBooking(body)
		if err != nil {
			return err
		}
		return lc.writer.UpsertBooking(ctx, booking)
	case RoutingKeyBlockedRooms:
		block, err := decodeBlockedRoom(body)
		if err != nil {
			return err
		}
		return lc.writer.UpsertBlockedRoom(ctx, block)
	default:
		return fmt.Errorf("%w: unknown routing key %q", errMalformed, routingKey)
	}
}

func decodeBooking(body []byte) (*models.Booking, error) {
	var m bookingMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if m.ID == 0 || m.HotelRoomID == 0 {
		return nil, fmt.Errorf("%w: id and hotelroom_id are required", errMalformed)
	}
	if !m.RowType.Valid() {
		return nil, fmt.Errorf("%w: row_type %q", errMalformed, m.RowType)
	}
	if m.BookingDatetime.IsZero() {
		return nil, fmt.Errorf("%w: booking_datetime is required", errMalformed)
	}
	night, err := time.Parse(repository.DateLayout, m.ReservedNightDate)
	if err != nil {
		return nil, fmt.Errorf("%w: reserved_night_date: %v", errMalformed, err)
	}

	return &models.Booking{
		ID:                m.ID,
		HotelRoomID:       m.HotelRoomID,
		ReservedNightDate: night,
		BookingDatetime:   m.BookingDatetime,
		RowType:           m.RowType,
		Price:             m.Price,
	}, nil
}

func decodeBlockedRoom(body []byte) (*models.BlockedRoom, error) {
	var m blockedRoomMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if m.ID == 0 || m.HotelRoomID == 0 {
		return nil, fmt.Errorf("%w: id and hotelroom_id are required", errMalformed)
	}
	if m.Rooms < 0 {
		return nil, fmt.Errorf("%w: rooms must not be negative", errMalformed)
	}
	night, err := time.Parse(repository.DateLayout, m.ReservedNightDate)
	if err != nil {
		return nil, fmt.Errorf("%w: reserved_night_date: %v", errMalformed, err)
	}

	return &models.BlockedRoom{
		ID:                m.ID,
		HotelRoomID:       m.HotelRoomID,
		ReservedNightDate: night,
		Rooms:             m.Rooms,
	}, nil
}
