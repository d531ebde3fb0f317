// Package repository defines sentinel errors shared by the data access
// layer. Handlers and the booking service use errors.Is against these
// values to distinguish failure scenarios without inspecting driver
// error strings themselves.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatNumberExists signals that a seat insert collided with the
// unique seat_number index.
var ErrSeatNumberExists = errors.New("seat number already exists")

// ErrSeatDateConflict signals that an insert collided with the unique
// index guarding one ACTIVE booking per seat per date. It is the
// storage-level backstop for the coordinator's conflict check.
var ErrSeatDateConflict = errors.New("seat already booked for this date")

// ErrUserDateConflict signals that an insert collided with the unique
// index guarding one ACTIVE booking per user per date.
var ErrUserDateConflict = errors.New("user already has a booking for this date")
