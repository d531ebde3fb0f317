package model

import "time"

// Seat type values as stored in the seats.seat_type column.  FIXED seats
// can be booked anywhere inside the booking window; FLOATER seats are
// short-notice seats subject to the floater policy when it is enabled.
const (
	SeatTypeFixed   = "FIXED"
	SeatTypeFloater = "FLOATER"
)

// Seat describes a single bookable desk on the office floor.  Seats are
// identified by their numeric display label, which is unique across the
// catalog.  The catalog is loaded at startup and only grows via the
// admin surface; existing rows are never mutated.
//
// Fields:
//  ID         – primary key identifier.
//  SeatNumber – display label shown to employees (unique).
//  SeatType   – FIXED or FLOATER.
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         uint64    // seats.id
	SeatNumber uint32    // seats.seat_number
	SeatType   string    // seats.seat_type
	CreatedAt  time.Time // seats.created_at
}

// ValidSeatType reports whether t is one of the known seat type values.
func ValidSeatType(t string) bool {
	return t == SeatTypeFixed || t == SeatTypeFloater
}
