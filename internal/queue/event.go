// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingEventQueue is the durable queue carrying all booking lifecycle
// events. Consumers switch on the Type field.
const BookingEventQueue = "booking.events"

// Booking event types.
const (
	EventBookingConfirmed = "confirmed"
	EventBookingCancelled = "cancelled"
)

// BookingEvent is published when a booking is confirmed or cancelled.
// It carries enough denormalized detail for downstream consumers to
// log or notify without querying the primary database.
type BookingEvent struct {
	Type        string `json:"type"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	SeatID      uint64 `json:"seat_id"`
	SeatNumber  uint32 `json:"seat_number"`
	SeatType    string `json:"seat_type,omitempty"`
	BookingDate string `json:"booking_date"`
	OccurredAt  string `json:"occurred_at"`
}
