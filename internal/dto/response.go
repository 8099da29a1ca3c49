package dto

import (
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/shopspring/decimal"
)

// Money is a currency amount encoded as a JSON number with two decimals.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

type OccupancyResponse struct {
	Occupancy *string `json:"occupancy"`
}

type BookingCurve struct {
	Occupancy []string `json:"occupancy"`
	Revenue   []Money  `json:"revenue"`
}

type BookingCurveResponse struct {
	BookingCurve BookingCurve `json:"booking_curve"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingCurveResponse(c *models.BookingCurve) BookingCurveResponse {
	revenue := make([]Money, len(c.Revenue))
	for i, r := range c.Revenue {
		revenue[i] = Money(r)
	}
	return BookingCurveResponse{
		BookingCurve: BookingCurve{
			Occupancy: c.Occupancy,
			Revenue:   revenue,
		},
	}
}
