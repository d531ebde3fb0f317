package service

import "errors"

// Domain errors surfaced by the booking coordinator. Handlers translate
// these into HTTP status codes with errors.Is; none of them is
// transient, so nothing is ever retried internally.
var (
	// ErrInvalidDate covers malformed dates and dates outside the
	// booking window (including weekend rejections when the policy is
	// enabled). User-correctable.
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrUnknownUser is returned when the request names a user id that
	// does not exist in the directory.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownSeat is returned when the request names a seat id that
	// does not exist in the catalog.
	ErrUnknownSeat = errors.New("unknown seat")

	// ErrSeatTaken signals that the seat already has an ACTIVE booking
	// for the requested date.
	ErrSeatTaken = errors.New("seat is already booked for this date")

	// ErrUserAlreadyBooked signals that the user already holds an
	// ACTIVE booking on the requested date.
	ErrUserAlreadyBooked = errors.New("user already has a booking for this date")

	// ErrBookingNotFound is returned by cancel when the id is unknown.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled is returned when cancelling a booking that
	// has already been cancelled. The ACTIVE→CANCELLED transition is
	// terminal and fires exactly once.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrBatchNotAllowed signals that the rotation policy assigns the
	// requested weekday to the other batch.
	ErrBatchNotAllowed = errors.New("batch is not allowed to book on this day")

	// ErrFloaterWindow signals a floater-seat request outside the
	// allowed booking window (before the daily cutoff or for a date
	// other than tomorrow).
	ErrFloaterWindow = errors.New("floater seat outside its booking window")

	// ErrSeatNumberTaken signals an admin catalog insert with a seat
	// number that already exists.
	ErrSeatNumberTaken = errors.New("seat number already exists")

	// ErrInvalidSeatInput covers malformed admin catalog input (zero
	// seat numbers, unknown seat types).
	ErrInvalidSeatInput = errors.New("invalid seat definition")
)
