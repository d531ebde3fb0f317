package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-booking/internal/model"
	"github.com/iliyamo/office-seat-booking/internal/repository"
	"github.com/iliyamo/office-seat-booking/internal/service"
)

// Minimal stores for wire-level tests; the coordinator's own semantics
// are covered in the service package.

type stubSeats struct{ seats []model.Seat }

func (s *stubSeats) ListAll(ctx context.Context) ([]model.Seat, error) { return s.seats, nil }
func (s *stubSeats) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	for _, seat := range s.seats {
		if seat.ID == id {
			return seat, nil
		}
	}
	return model.Seat{}, repository.ErrSeatNotFound
}
func (s *stubSeats) CreateBulk(ctx context.Context, seats []model.Seat) error {
	s.seats = append(s.seats, seats...)
	return nil
}

type stubUsers struct{ users []model.User }

func (s *stubUsers) ListAll(ctx context.Context) ([]model.User, error) { return s.users, nil }
func (s *stubUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

type stubLedger struct {
	nextID uint64
	rows   map[uint64]model.Booking
}

func newStubLedger() *stubLedger { return &stubLedger{rows: make(map[uint64]model.Booking)} }

func (l *stubLedger) Insert(ctx context.Context, b *model.Booking) error {
	l.nextID++
	b.ID = l.nextID
	l.rows[b.ID] = *b
	return nil
}
func (l *stubLedger) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, ok := l.rows[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}
func (l *stubLedger) MarkCancelled(ctx context.Context, id uint64) (bool, error) {
	b, ok := l.rows[id]
	if !ok || b.Status != model.BookingActive {
		return false, nil
	}
	b.Status = model.BookingCancelled
	l.rows[id] = b
	return true, nil
}
func (l *stubLedger) ExistsActive(ctx context.Context, seatID uint64, date time.Time) (bool, error) {
	for _, b := range l.rows {
		if b.SeatID == seatID && b.Status == model.BookingActive && b.BookingDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}
func (l *stubLedger) ExistsActiveForUser(ctx context.Context, userID uint64, date time.Time) (bool, error) {
	for _, b := range l.rows {
		if b.UserID == userID && b.Status == model.BookingActive && b.BookingDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}
func (l *stubLedger) ActiveSeatIDsByDate(ctx context.Context, date time.Time) (map[uint64]struct{}, error) {
	taken := make(map[uint64]struct{})
	for _, b := range l.rows {
		if b.Status == model.BookingActive && b.BookingDate.Equal(date) {
			taken[b.SeatID] = struct{}{}
		}
	}
	return taken, nil
}
func (l *stubLedger) ListAll(ctx context.Context) ([]model.Booking, error) {
	out := make([]model.Booking, 0, len(l.rows))
	for id := l.nextID; id >= 1; id-- {
		if b, ok := l.rows[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestHandler() *APIHandler {
	seats := &stubSeats{seats: []model.Seat{
		{ID: 1, SeatNumber: 1, SeatType: model.SeatTypeFixed},
		{ID: 2, SeatNumber: 2, SeatType: model.SeatTypeFloater},
	}}
	users := &stubUsers{users: []model.User{
		{ID: 1, Name: "Aarav Shah", Batch: model.BatchOne},
		{ID: 2, Name: "Isha Verma", Batch: model.BatchTwo},
	}}
	svc := service.NewBookingService(seats, users, newStubLedger(), nil, service.Policy{})
	return NewAPIHandler(svc)
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
}

func doJSON(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestBookEndpointContract(t *testing.T) {
	e := echo.New()
	h := newTestHandler()
	date := tomorrow()

	rec, c := doJSON(e, http.MethodPost, "/api/book",
		`{"userId":1,"seatId":2,"bookingDate":"`+date+`"}`)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["bookingId"])
	assert.Equal(t, float64(2), body["seatNumber"])
	assert.Equal(t, model.SeatTypeFloater, body["seatType"])
	assert.Equal(t, date, body["bookingDate"])
}

func TestBookEndpointRejectsIncompleteBody(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodPost, "/api/book", `{"userId":1}`)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestBookEndpointConflict(t *testing.T) {
	e := echo.New()
	h := newTestHandler()
	date := tomorrow()

	rec, c := doJSON(e, http.MethodPost, "/api/book",
		`{"userId":1,"seatId":1,"bookingDate":"`+date+`"}`)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = doJSON(e, http.MethodPost, "/api/book",
		`{"userId":2,"seatId":1,"bookingDate":"`+date+`"}`)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
}

func TestBookEndpointUnknownUser(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodPost, "/api/book",
		`{"userId":99,"seatId":1,"bookingDate":"`+tomorrow()+`"}`)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelEndpointContract(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodPost, "/api/book",
		`{"userId":1,"seatId":1,"bookingDate":"`+tomorrow()+`"}`)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = doJSON(e, http.MethodDelete, "/api/cancel/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["bookingId"])
	assert.Equal(t, float64(1), body["seatNumber"])

	// Cancelling again is a conflict.
	rec, c = doJSON(e, http.MethodDelete, "/api/cancel/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelEndpointNotFound(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodDelete, "/api/cancel/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelEndpointBadID(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodDelete, "/api/cancel/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityEndpointContract(t *testing.T) {
	e := echo.New()
	h := newTestHandler()
	date := tomorrow()

	rec, c := doJSON(e, http.MethodPost, "/api/book",
		`{"userId":1,"seatId":1,"bookingDate":"`+date+`"}`)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = doJSON(e, http.MethodGet, "/api/availability?date="+date, "")
	require.NoError(t, h.Availability(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	for _, row := range rows {
		for _, key := range []string{"seatId", "seatNumber", "seatType", "available"} {
			assert.Contains(t, row, key)
		}
		if row["seatId"] == float64(1) {
			assert.Equal(t, false, row["available"])
		} else {
			assert.Equal(t, true, row["available"])
		}
	}
}

func TestAvailabilityEndpointRequiresDate(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodGet, "/api/availability", "")
	require.NoError(t, h.Availability(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUsersEndpointContract(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodGet, "/api/users", "")
	require.NoError(t, h.ListUsers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["id"])
	assert.Equal(t, "Aarav Shah", rows[0]["name"])
	assert.Equal(t, model.BatchOne, rows[0]["batch"])
}

func TestSeatsEndpointContract(t *testing.T) {
	e := echo.New()
	h := newTestHandler()

	rec, c := doJSON(e, http.MethodGet, "/api/seats", "")
	require.NoError(t, h.ListSeats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["id"])
	assert.Equal(t, float64(1), rows[0]["seatNumber"])
	assert.Equal(t, model.SeatTypeFixed, rows[0]["seatType"])
}
