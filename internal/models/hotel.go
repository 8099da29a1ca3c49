package models

type Hotel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// HotelRoom is a room type of a hotel; Capacity is the number of rooms sold per night.
type HotelRoom struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HotelID  uint   `gorm:"not null;index" json:"hotel_id"`
	Name     string `gorm:"not null" json:"name"`
	Capacity int    `gorm:"not null" json:"capacity"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
