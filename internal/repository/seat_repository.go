package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/office-seat-booking/internal/model"
)

// SeatRepo provides read access to the seat catalog plus bulk creation
// used by seeding and the admin surface. The catalog is append-only;
// there are no update or delete operations.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// ListAll returns every seat ordered by seat_number for deterministic
// output. An empty catalog yields an empty slice, not an error.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT id, seat_number, seat_type, created_at
	           FROM seats
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.SeatType, &s.CreatedAt); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetByID fetches a single seat. Returns ErrSeatNotFound when no row
// matches.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	const q = `SELECT id, seat_number, seat_type, created_at FROM seats WHERE id = ? LIMIT 1`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.SeatNumber, &s.SeatType, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Seat{}, ErrSeatNotFound
	}
	if err != nil {
		return model.Seat{}, err
	}
	return s, nil
}

// CreateBulk inserts multiple seats in a single statement. Passing an
// empty slice has no effect. A duplicate seat_number maps to
// ErrSeatNumberExists.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (seat_number, seat_type) VALUES `
	args := make([]interface{}, 0, len(seats)*2)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, s.SeatNumber, s.SeatType)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSeatNumberExists
		}
		return err
	}
	return nil
}
