package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RowType string

const (
	RowBooking      RowType = "booking"
	RowCancellation RowType = "cancellation"
	RowBlock        RowType = "block"
)

func (t RowType) Valid() bool {
	switch t {
	case RowBooking, RowCancellation, RowBlock:
		return true
	}
	return false
}

// Booking is one row of the event ledger. Price is only meaningful for RowBooking.
type Booking struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	HotelRoomID       uint            `gorm:"column:hotelroom_id;not null;index" json:"hotelroom_id"`
	ReservedNightDate time.Time       `gorm:"type:date;not null;index" json:"reserved_night_date"`
	BookingDatetime   time.Time       `gorm:"not null" json:"booking_datetime"`
	RowType           RowType         `gorm:"type:text;not null" json:"row_type"`
	Price             decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	HotelRoom *HotelRoom `gorm:"foreignKey:HotelRoomID" json:"-"`
}

// BlockedRoom holds a bulk block of Rooms for one night.
type BlockedRoom struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	HotelRoomID       uint      `gorm:"column:hotelroom_id;not null;index" json:"hotelroom_id"`
	ReservedNightDate time.Time `gorm:"type:date;not null" json:"reserved_night_date"`
	Rooms             int       `gorm:"not null" json:"rooms"`

	HotelRoom *HotelRoom `gorm:"foreignKey:HotelRoomID" json:"-"`
}
