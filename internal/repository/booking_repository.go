package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/office-seat-booking/internal/model"
)

// BookingRepo is the booking ledger: an append-style store where rows
// are inserted ACTIVE, transitioned to CANCELLED at most once and never
// deleted. The bookings table carries generated-column unique indexes
// (uq_seat_date, uq_user_date) restricted to ACTIVE rows, so even
// writers outside this process cannot create a second ACTIVE booking
// for the same seat/date or user/date pair.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Insert creates a new ACTIVE booking and populates the generated ID
// and timestamps on the provided record. Unique index collisions are
// mapped to ErrSeatDateConflict or ErrUserDateConflict so callers can
// translate them without parsing driver messages.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, seat_id, booking_date, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.UserID, b.SeatID, b.BookingDate.Format(model.DateLayout), model.BookingActive)
	if err != nil {
		return mapDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingActive
	// Query back the full row to populate DB-generated timestamps.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches a booking regardless of status. Returns
// ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	const q = `SELECT id, user_id, seat_id, booking_date, status, created_at, updated_at
	           FROM bookings WHERE id = ? LIMIT 1`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.SeatID, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// MarkCancelled transitions a booking from ACTIVE to CANCELLED. The
// update is conditional on the current status, so it reports false both
// when the booking is already cancelled and when the id does not exist;
// callers that need to tell those cases apart look the row up first.
func (r *BookingRepo) MarkCancelled(ctx context.Context, id uint64) (bool, error) {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.BookingCancelled, id, model.BookingActive)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsActive reports whether an ACTIVE booking exists for the given
// seat and date. This is the coordinator's O(1) conflict probe; it is
// served by the uq_seat_date index.
func (r *BookingRepo) ExistsActive(ctx context.Context, seatID uint64, date time.Time) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM bookings WHERE seat_id = ? AND booking_date = ? AND status = ?
	           )`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, seatID, date.Format(model.DateLayout), model.BookingActive).Scan(&exists)
	return exists, err
}

// ExistsActiveForUser reports whether the user already holds an ACTIVE
// booking on the given date.
func (r *BookingRepo) ExistsActiveForUser(ctx context.Context, userID uint64, date time.Time) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM bookings WHERE user_id = ? AND booking_date = ? AND status = ?
	           )`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, userID, date.Format(model.DateLayout), model.BookingActive).Scan(&exists)
	return exists, err
}

// ActiveSeatIDsByDate returns the set of seat IDs that have an ACTIVE
// booking on the given date. The availability engine subtracts this set
// from the catalog.
func (r *BookingRepo) ActiveSeatIDsByDate(ctx context.Context, date time.Time) (map[uint64]struct{}, error) {
	const q = `SELECT seat_id FROM bookings WHERE booking_date = ? AND status = ?`
	rows, err := r.db.QueryContext(ctx, q, date.Format(model.DateLayout), model.BookingActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	taken := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// ListAll returns the full ledger, newest first, including CANCELLED
// rows. Used by the admin audit endpoint.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT id, user_id, seat_id, booking_date, status, created_at, updated_at
	           FROM bookings ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.SeatID, &b.BookingDate, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// mapDuplicate converts MySQL duplicate-key errors (1062) into the
// sentinel matching the violated index.
func mapDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	switch {
	case strings.Contains(msg, "uq_seat_date"):
		return ErrSeatDateConflict
	case strings.Contains(msg, "uq_user_date"):
		return ErrUserDateConflict
	}
	return err
}
