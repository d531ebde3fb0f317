// Package handler maps HTTP requests onto the booking coordinator and
// translates domain errors into response codes. The response shapes for
// the four public endpoints are the contract the browser client already
// depends on and must not change.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-booking/internal/model"
	"github.com/iliyamo/office-seat-booking/internal/service"
)

// APIHandler serves the public booking endpoints. It holds no state of
// its own; all business logic lives in the coordinator.
type APIHandler struct {
	Svc *service.BookingService
}

// NewAPIHandler constructs an APIHandler. The service must be non-nil.
func NewAPIHandler(svc *service.BookingService) *APIHandler {
	if svc == nil {
		panic("nil service passed to NewAPIHandler")
	}
	return &APIHandler{Svc: svc}
}

// Book handles POST /api/book. On success it responds 201 with
// {bookingId, seatNumber, seatType, bookingDate}; every failure carries
// a {message} body with a status from the domain-error mapping.
func (h *APIHandler) Book(c echo.Context) error {
	var body struct {
		UserID      uint64 `json:"userId"`
		SeatID      uint64 `json:"seatId"`
		BookingDate string `json:"bookingDate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if body.UserID == 0 || body.SeatID == 0 || body.BookingDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId, seatId and bookingDate are required"})
	}

	b, seat, err := h.Svc.Book(c.Request().Context(), body.UserID, body.SeatID, body.BookingDate)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"bookingId":   b.ID,
		"seatNumber":  seat.SeatNumber,
		"seatType":    seat.SeatType,
		"bookingDate": b.BookingDate.Format(model.DateLayout),
	})
}

// Cancel handles DELETE /api/cancel/:id. On success it responds 200
// with {bookingId, seatNumber}.
func (h *APIHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}
	b, seat, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookingId":  b.ID,
		"seatNumber": seat.SeatNumber,
	})
}

// writeDomainError maps coordinator errors onto HTTP statuses. Anything
// outside the known taxonomy is reported as a generic server error and
// logged; internal detail never reaches the caller.
func writeDomainError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrUnknownSeat),
		errors.Is(err, service.ErrInvalidSeatInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrBatchNotAllowed),
		errors.Is(err, service.ErrFloaterWindow):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSeatTaken),
		errors.Is(err, service.ErrUserAlreadyBooked),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrSeatNumberTaken):
		status = http.StatusConflict
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}
	return c.JSON(status, echo.Map{"message": err.Error()})
}
