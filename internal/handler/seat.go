package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSeats handles GET /api/seats and returns the seat catalog as
// [{id, seatNumber, seatType}], ordered by seat number.
func (h *APIHandler) ListSeats(c echo.Context) error {
	seats, err := h.Svc.ListSeats(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]echo.Map, 0, len(seats))
	for _, s := range seats {
		out = append(out, echo.Map{
			"id":         s.ID,
			"seatNumber": s.SeatNumber,
			"seatType":   s.SeatType,
		})
	}
	return c.JSON(http.StatusOK, out)
}
