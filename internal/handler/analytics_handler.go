package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/models"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	occupancy   service.OccupancyService
	curve       service.BookingCurveService
	defaultDays int
	maxDays     int
}

func NewAnalyticsHandler(occupancy service.OccupancyService, curve service.BookingCurveService, defaultDays, maxDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		occupancy:   occupancy,
		curve:       curve,
		defaultDays: defaultDays,
		maxDays:     maxDays,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/occupancy/:room_id/:start_date/:end_date", h.GetOccupancy)
	g.GET("/booking-curve/:room_id/:reserved_night_date", h.GetBookingCurve)
}

func (h *AnalyticsHandler) GetOccupancy(c echo.Context) error {
	roomID, err := parseRoomID(c)
	if err != nil {
		return err
	}
	start, err := parseDate(c, "start_date")
	if err != nil {
		return err
	}
	end, err := parseDate(c, "end_date")
	if err != nil {
		return err
	}

	occ, err := h.occupancy.Occupancy(c.Request().Context(), roomID, models.DateRange{Start: start, End: end})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.OccupancyResponse{Occupancy: occ})
}

func (h *AnalyticsHandler) GetBookingCurve(c echo.Context) error {
	roomID, err := parseRoomID(c)
	if err != nil {
		return err
	}
	night, err := parseDate(c, "reserved_night_date")
	if err != nil {
		return err
	}

	days := h.defaultDays
	if s := c.QueryParam("days"); s != "" {
		days, err = strconv.Atoi(s)
		if err != nil || days < 1 || days > h.maxDays {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("days must be an integer between 1 and %d", h.maxDays))
		}
	}

	curve, err := h.curve.BookingCurve(c.Request().Context(), roomID, night, days)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingCurveResponse(curve))
}

func parseRoomID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("room_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	return uint(id), nil
}

func parseDate(c echo.Context, name string) (time.Time, error) {
	d, err := time.Parse(repository.DateLayout, c.Param(name))
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s, expected YYYY-MM-DD", name))
	}
	return d, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidWindow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoCapacity):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}
