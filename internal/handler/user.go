package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListUsers handles GET /api/users and returns the employee directory
// as [{id, name, batch}], ordered by id.
func (h *APIHandler) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		out = append(out, echo.Map{
			"id":    u.ID,
			"name":  u.Name,
			"batch": u.Batch,
		})
	}
	return c.JSON(http.StatusOK, out)
}
