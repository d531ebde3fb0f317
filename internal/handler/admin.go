package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-booking/internal/model"
)

// ListBookings handles GET /api/admin/bookings: the full ledger,
// cancelled rows included, newest first. Intended for auditing.
func (h *APIHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Svc.ListBookings(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]echo.Map, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, echo.Map{
			"bookingId":   b.ID,
			"userId":      b.UserID,
			"seatId":      b.SeatID,
			"bookingDate": b.BookingDate.Format(model.DateLayout),
			"status":      b.Status,
			"createdAt":   b.CreatedAt,
			"updatedAt":   b.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// AddSeats handles POST /api/admin/seats. The body is a list of
// {seatNumber, seatType} pairs; all rows are inserted in one statement
// so catalog growth is all-or-nothing.
func (h *APIHandler) AddSeats(c echo.Context) error {
	var body struct {
		Seats []struct {
			SeatNumber uint32 `json:"seatNumber"`
			SeatType   string `json:"seatType"`
		} `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if len(body.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "seats list is required"})
	}

	seats := make([]model.Seat, 0, len(body.Seats))
	for _, s := range body.Seats {
		seats = append(seats, model.Seat{SeatNumber: s.SeatNumber, SeatType: s.SeatType})
	}
	if err := h.Svc.AddSeats(c.Request().Context(), seats); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"added": len(seats)})
}
