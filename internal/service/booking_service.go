// Package service implements the booking coordinator: the single write
// path into the booking ledger. It validates requests, enforces the
// booking window and cohort policies, and guarantees that at most one
// ACTIVE booking exists per (seat, date) and per (user, date) even
// under concurrent requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/office-seat-booking/internal/model"
	"github.com/iliyamo/office-seat-booking/internal/queue"
	"github.com/iliyamo/office-seat-booking/internal/repository"
)

// SeatStore is the catalog access the coordinator needs.
type SeatStore interface {
	ListAll(ctx context.Context) ([]model.Seat, error)
	GetByID(ctx context.Context, id uint64) (model.Seat, error)
	CreateBulk(ctx context.Context, seats []model.Seat) error
}

// UserStore is the read-only directory access the coordinator needs.
type UserStore interface {
	ListAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// BookingStore is the ledger interface. The MySQL implementation lives
// in the repository package; tests substitute an in-memory store.
type BookingStore interface {
	Insert(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	MarkCancelled(ctx context.Context, id uint64) (bool, error)
	ExistsActive(ctx context.Context, seatID uint64, date time.Time) (bool, error)
	ExistsActiveForUser(ctx context.Context, userID uint64, date time.Time) (bool, error)
	ActiveSeatIDsByDate(ctx context.Context, date time.Time) (map[uint64]struct{}, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
}

// EventPublisher delivers a booking event to the message broker.
// Publishing is best-effort; failures must not fail the request.
type EventPublisher func(ctx context.Context, ev queue.BookingEvent) error

// Policy holds the booking rules beyond the core seat/date invariant.
// HorizonDays is always enforced. The remaining rules mirror the office
// rota and are switched on per deployment.
type Policy struct {
	HorizonDays     int       // bookable window: [today, today+HorizonDays]
	WeekdaysOnly    bool      // reject Saturday and Sunday dates
	BatchRotation   bool      // alternate Mon–Wed / Thu–Fri between batches week by week
	RotationBase    time.Time // Monday anchoring the week-parity calculation
	FloaterRules    bool      // floater seats: tomorrow only, after the cutoff hour
	FloaterOpenHour int       // local hour from which floater seats open (e.g. 15)
}

// SeatAvailability is one row of the availability report for a date.
// Field names match the client wire contract.
type SeatAvailability struct {
	SeatID     uint64 `json:"seatId"`
	SeatNumber uint32 `json:"seatNumber"`
	SeatType   string `json:"seatType"`
	Available  bool   `json:"available"`
}

// BookingService coordinates all reads and writes against the ledger.
// The zero value is not usable; construct with NewBookingService.
type BookingService struct {
	seats    SeatStore
	users    UserStore
	bookings BookingStore
	publish  EventPublisher // nil disables event publishing
	policy   Policy
	locks    *keyedMutex
	now      func() time.Time // injected clock; defaults to time.Now
}

// NewBookingService wires the coordinator. publish may be nil when no
// broker is configured.
func NewBookingService(seats SeatStore, users UserStore, bookings BookingStore, publish EventPublisher, policy Policy) *BookingService {
	if policy.HorizonDays <= 0 {
		policy.HorizonDays = 14
	}
	if policy.FloaterOpenHour <= 0 {
		policy.FloaterOpenHour = 15
	}
	return &BookingService{
		seats:    seats,
		users:    users,
		bookings: bookings,
		publish:  publish,
		policy:   policy,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// Book validates and commits a new booking. The conflict check and the
// insert run under a per-(seat, date) mutex, so two concurrent requests
// for the same pair cannot both observe a free seat. On success the
// created booking and its seat are returned and a confirmed event is
// published in the background.
func (s *BookingService) Book(ctx context.Context, userID, seatID uint64, dateStr string) (model.Booking, model.Seat, error) {
	date, err := s.parseDate(dateStr)
	if err != nil {
		return model.Booking{}, model.Seat{}, err
	}
	if err := s.checkHorizon(date); err != nil {
		return model.Booking{}, model.Seat{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Booking{}, model.Seat{}, fmt.Errorf("%w: id %d", ErrUnknownUser, userID)
		}
		return model.Booking{}, model.Seat{}, err
	}
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return model.Booking{}, model.Seat{}, fmt.Errorf("%w: id %d", ErrUnknownSeat, seatID)
		}
		return model.Booking{}, model.Seat{}, err
	}

	if err := s.checkPolicy(user, seat, date); err != nil {
		return model.Booking{}, model.Seat{}, err
	}

	// Critical section: the check-then-insert below must be indivisible
	// with respect to other Book calls on the same (seat, date) key.
	unlock := s.locks.lock(bookingKey(seatID, date))
	defer unlock()

	taken, err := s.bookings.ExistsActive(ctx, seatID, date)
	if err != nil {
		return model.Booking{}, model.Seat{}, err
	}
	if taken {
		return model.Booking{}, model.Seat{}, ErrSeatTaken
	}
	hasBooking, err := s.bookings.ExistsActiveForUser(ctx, userID, date)
	if err != nil {
		return model.Booking{}, model.Seat{}, err
	}
	if hasBooking {
		return model.Booking{}, model.Seat{}, ErrUserAlreadyBooked
	}

	b := model.Booking{
		UserID:      userID,
		SeatID:      seatID,
		BookingDate: date,
		Status:      model.BookingActive,
	}
	if err := s.bookings.Insert(ctx, &b); err != nil {
		// The unique indexes catch writers outside this process.
		switch {
		case errors.Is(err, repository.ErrSeatDateConflict):
			return model.Booking{}, model.Seat{}, ErrSeatTaken
		case errors.Is(err, repository.ErrUserDateConflict):
			return model.Booking{}, model.Seat{}, ErrUserAlreadyBooked
		}
		return model.Booking{}, model.Seat{}, err
	}

	s.publishEvent(queue.BookingEvent{
		Type:        queue.EventBookingConfirmed,
		BookingID:   b.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		SeatID:      seat.ID,
		SeatNumber:  seat.SeatNumber,
		SeatType:    seat.SeatType,
		BookingDate: date.Format(model.DateLayout),
		OccurredAt:  s.now().UTC().Format(time.RFC3339),
	})
	return b, seat, nil
}

// Cancel transitions an ACTIVE booking to CANCELLED. The transition is
// terminal: a second cancel for the same id fails with
// ErrAlreadyCancelled. Availability reflects the freed seat as soon as
// Cancel returns.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint64) (model.Booking, model.Seat, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return model.Booking{}, model.Seat{}, fmt.Errorf("%w: id %d", ErrBookingNotFound, bookingID)
		}
		return model.Booking{}, model.Seat{}, err
	}
	if b.Status == model.BookingCancelled {
		return model.Booking{}, model.Seat{}, ErrAlreadyCancelled
	}

	unlock := s.locks.lock(bookingKey(b.SeatID, b.BookingDate))
	defer unlock()

	ok, err := s.bookings.MarkCancelled(ctx, bookingID)
	if err != nil {
		return model.Booking{}, model.Seat{}, err
	}
	if !ok {
		// Lost the race against a concurrent cancel.
		return model.Booking{}, model.Seat{}, ErrAlreadyCancelled
	}
	b.Status = model.BookingCancelled

	seat, err := s.seats.GetByID(ctx, b.SeatID)
	if err != nil {
		return model.Booking{}, model.Seat{}, err
	}

	s.publishEvent(queue.BookingEvent{
		Type:        queue.EventBookingCancelled,
		BookingID:   b.ID,
		UserID:      b.UserID,
		SeatID:      seat.ID,
		SeatNumber:  seat.SeatNumber,
		BookingDate: b.BookingDate.Format(model.DateLayout),
		OccurredAt:  s.now().UTC().Format(time.RFC3339),
	})
	return b, seat, nil
}

// Availability reports, for every catalog seat, whether it is free on
// the given date. The report is computed from the ledger on every call;
// repeated calls with no intervening mutation return identical results.
func (s *BookingService) Availability(ctx context.Context, dateStr string) ([]SeatAvailability, error) {
	date, err := s.parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if err := s.checkHorizon(date); err != nil {
		return nil, err
	}
	seats, err := s.seats.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	taken, err := s.bookings.ActiveSeatIDsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	report := make([]SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		_, booked := taken[seat.ID]
		report = append(report, SeatAvailability{
			SeatID:     seat.ID,
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.SeatType,
			Available:  !booked,
		})
	}
	return report, nil
}

// ListUsers returns the employee directory.
func (s *BookingService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// ListSeats returns the full seat catalog.
func (s *BookingService) ListSeats(ctx context.Context) ([]model.Seat, error) {
	return s.seats.ListAll(ctx)
}

// ListBookings returns the full ledger including cancelled rows.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// AddSeats extends the catalog. Seat numbers must be positive and
// types valid; a colliding seat number maps to ErrSeatNumberTaken.
func (s *BookingService) AddSeats(ctx context.Context, seats []model.Seat) error {
	for _, seat := range seats {
		if seat.SeatNumber == 0 {
			return fmt.Errorf("%w: seat number must be positive", ErrInvalidSeatInput)
		}
		if !model.ValidSeatType(seat.SeatType) {
			return fmt.Errorf("%w: unknown seat type %q", ErrInvalidSeatInput, seat.SeatType)
		}
	}
	if err := s.seats.CreateBulk(ctx, seats); err != nil {
		if errors.Is(err, repository.ErrSeatNumberExists) {
			return ErrSeatNumberTaken
		}
		return err
	}
	return nil
}

// parseDate parses an ISO calendar date in the server's reference
// timezone. Malformed input maps to ErrInvalidDate.
func (s *BookingService) parseDate(dateStr string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, dateStr, s.now().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: want YYYY-MM-DD, got %q", ErrInvalidDate, dateStr)
	}
	return d, nil
}

// checkHorizon enforces the bookable window [today, today+HorizonDays],
// evaluated against the injected clock.
func (s *BookingService) checkHorizon(date time.Time) error {
	today := truncateToDay(s.now())
	if date.Before(today) {
		return fmt.Errorf("%w: cannot book a past date", ErrInvalidDate)
	}
	if date.After(today.AddDate(0, 0, s.policy.HorizonDays)) {
		return fmt.Errorf("%w: cannot book more than %d days in advance", ErrInvalidDate, s.policy.HorizonDays)
	}
	return nil
}

// checkPolicy applies the optional rota rules: weekday-only booking,
// weekly batch rotation and the floater-seat window.
func (s *BookingService) checkPolicy(user model.User, seat model.Seat, date time.Time) error {
	wd := date.Weekday()
	if s.policy.WeekdaysOnly && (wd == time.Saturday || wd == time.Sunday) {
		return fmt.Errorf("%w: bookings are only allowed on working days", ErrInvalidDate)
	}
	if s.policy.BatchRotation {
		if err := s.checkRotation(user.Batch, date); err != nil {
			return err
		}
	}
	if s.policy.FloaterRules && seat.SeatType == model.SeatTypeFloater {
		now := s.now()
		if now.Hour() < s.policy.FloaterOpenHour {
			return fmt.Errorf("%w: floater seats open at %02d:00", ErrFloaterWindow, s.policy.FloaterOpenHour)
		}
		tomorrow := truncateToDay(now).AddDate(0, 0, 1)
		if !date.Equal(tomorrow) {
			return fmt.Errorf("%w: floater seats can only be booked for tomorrow", ErrFloaterWindow)
		}
	}
	return nil
}

// checkRotation alternates office days between the two batches week by
// week: on even weeks (counted from the rotation base) Mon–Wed belongs
// to BATCH_1 and Thu–Fri to BATCH_2; odd weeks invert the assignment.
func (s *BookingService) checkRotation(batch string, date time.Time) error {
	days := int(date.Sub(truncateToDay(s.policy.RotationBase)).Hours() / 24)
	evenWeek := (days/7)%2 == 0

	var allowed string
	switch date.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday:
		if evenWeek {
			allowed = model.BatchOne
		} else {
			allowed = model.BatchTwo
		}
	case time.Thursday, time.Friday:
		if evenWeek {
			allowed = model.BatchTwo
		} else {
			allowed = model.BatchOne
		}
	default:
		return fmt.Errorf("%w: bookings are only allowed on working days", ErrInvalidDate)
	}
	if batch != allowed {
		return fmt.Errorf("%w: %s is allowed on %s", ErrBatchNotAllowed, allowed, date.Weekday())
	}
	return nil
}

// publishEvent hands the event to the broker in the background. A nil
// publisher or a publish failure never affects the request outcome.
func (s *BookingService) publishEvent(ev queue.BookingEvent) {
	if s.publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.publish(ctx, ev) // errors are logged by the publisher
	}()
}

func bookingKey(seatID uint64, date time.Time) string {
	return fmt.Sprintf("%d|%s", seatID, date.Format(model.DateLayout))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
