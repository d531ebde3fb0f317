package model

import "time"

// Booking lifecycle states.  The transition is one-directional: a
// booking starts ACTIVE and may move to CANCELLED exactly once.
// Rows are never deleted so the ledger doubles as an audit trail.
const (
	BookingActive    = "ACTIVE"
	BookingCancelled = "CANCELLED"
)

// DateLayout is the wire and storage format for calendar dates.  Booking
// dates carry no time component; all comparisons happen on whole days in
// the server's reference timezone.
const DateLayout = "2006-01-02"

// Booking records one employee holding one seat for one calendar date.
// At most one ACTIVE booking may exist per (seat, date) pair and per
// (user, date) pair; the coordinator enforces this under concurrency and
// the storage layer backs it with unique indexes.
//
// Fields:
//  ID          – primary key identifier (monotonic).
//  UserID      – employee who made the booking.
//  SeatID      – seat being held.
//  BookingDate – calendar date of the booking (no time component).
//  Status      – ACTIVE or CANCELLED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last status change.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	SeatID      uint64    // bookings.seat_id
	BookingDate time.Time // bookings.booking_date (DATE column)
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
	UpdatedAt   time.Time // bookings.updated_at
}
