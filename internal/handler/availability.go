package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Availability handles GET /api/availability?date=YYYY-MM-DD. It
// returns one row per catalog seat: {seatId, seatNumber, seatType,
// available}. The report is always computed from the ledger so a
// booking or cancellation is visible to the very next call.
func (h *APIHandler) Availability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date query parameter is required"})
	}
	report, err := h.Svc.Availability(c.Request().Context(), date)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
