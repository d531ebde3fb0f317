package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/office-seat-booking/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestBookingInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(uint64(7), uint64(3), "2024-06-01", model.BookingActive).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM bookings").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewBookingRepo(db)
	b := model.Booking{UserID: 7, SeatID: 3, BookingDate: mustDate(t, "2024-06-01")}
	if err := repo.Insert(context.Background(), &b); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.ID != 42 {
		t.Errorf("expected generated id 42, got %d", b.ID)
	}
	if b.Status != model.BookingActive {
		t.Errorf("expected status ACTIVE, got %s", b.Status)
	}
	if !b.CreatedAt.Equal(now) {
		t.Errorf("created_at not populated from row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingInsertDuplicateMapping(t *testing.T) {
	cases := []struct {
		name    string
		driver  error
		wantErr error
	}{
		{
			name:    "seat date conflict",
			driver:  errors.New("Error 1062 (23000): Duplicate entry '3-2024-06-01-A' for key 'bookings.uq_seat_date'"),
			wantErr: ErrSeatDateConflict,
		},
		{
			name:    "user date conflict",
			driver:  errors.New("Error 1062 (23000): Duplicate entry '7-2024-06-01-A' for key 'bookings.uq_user_date'"),
			wantErr: ErrUserDateConflict,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()

			mock.ExpectExec("INSERT INTO bookings").
				WillReturnError(tc.driver)

			repo := NewBookingRepo(db)
			b := model.Booking{UserID: 7, SeatID: 3, BookingDate: mustDate(t, "2024-06-01")}
			err = repo.Insert(context.Background(), &b)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBookingInsertUnrelatedErrorPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	driverErr := errors.New("Error 1205 (HY000): Lock wait timeout exceeded")
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(driverErr)

	repo := NewBookingRepo(db)
	b := model.Booking{UserID: 1, SeatID: 1, BookingDate: mustDate(t, "2024-06-01")}
	err = repo.Insert(context.Background(), &b)
	if !errors.Is(err, driverErr) {
		t.Fatalf("expected driver error to pass through, got %v", err)
	}
}

func TestMarkCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(model.BookingCancelled, uint64(5), model.BookingActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(model.BookingCancelled, uint64(5), model.BookingActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepo(db)
	ok, err := repo.MarkCancelled(context.Background(), 5)
	if err != nil || !ok {
		t.Fatalf("first cancel: ok=%v err=%v", ok, err)
	}
	ok, err = repo.MarkCancelled(context.Background(), 5)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if ok {
		t.Error("second cancel must report no rows affected")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, seat_id, booking_date").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "seat_id", "booking_date", "status", "created_at", "updated_at"}))

	repo := NewBookingRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestExistsActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(3), "2024-06-01", model.BookingActive).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewBookingRepo(db)
	exists, err := repo.ExistsActive(context.Background(), 3, mustDate(t, "2024-06-01"))
	if err != nil {
		t.Fatalf("ExistsActive: %v", err)
	}
	if !exists {
		t.Error("expected exists=true")
	}
}

func TestActiveSeatIDsByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT seat_id FROM bookings").
		WithArgs("2024-06-01", model.BookingActive).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(2).AddRow(5))

	repo := NewBookingRepo(db)
	taken, err := repo.ActiveSeatIDsByDate(context.Background(), mustDate(t, "2024-06-01"))
	if err != nil {
		t.Fatalf("ActiveSeatIDsByDate: %v", err)
	}
	if len(taken) != 2 {
		t.Fatalf("expected 2 taken seats, got %d", len(taken))
	}
	for _, id := range []uint64{2, 5} {
		if _, ok := taken[id]; !ok {
			t.Errorf("seat %d missing from taken set", id)
		}
	}
}
