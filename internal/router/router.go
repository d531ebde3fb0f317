// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-booking/internal/handler"
	"github.com/iliyamo/office-seat-booking/internal/middleware"
)

// Register mounts every route on e. cacheMW is applied only to the
// immutable reference endpoints (users, seats); availability is always
// computed fresh so bookings are visible to the next call.
func Register(e *echo.Echo, api *handler.APIHandler, auth *handler.AuthHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/api")

	// Public client surface.
	g.GET("/users", api.ListUsers, cacheMW)
	g.GET("/seats", api.ListSeats, cacheMW)
	g.GET("/availability", api.Availability)
	g.POST("/book", api.Book)
	g.DELETE("/cancel/:id", api.Cancel)

	// Admin surface.
	g.POST("/admin/login", auth.Login)

	admin := g.Group("/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	admin.GET("/bookings", api.ListBookings)
	admin.POST("/seats", api.AddSeats)
}
