package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seat-booking/internal/utils"
)

func newTestAuth(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := utils.HashPassword("s3cret", 4) // low cost keeps the test fast
	require.NoError(t, err)
	return NewAuthHandler("admin@example.com", hash, "test-secret", 30)
}

func TestLoginIssuesToken(t *testing.T) {
	e := echo.New()
	h := newTestAuth(t)

	rec, c := doJSON(e, http.MethodPost, "/api/admin/login",
		`{"email":"Admin@Example.com","password":"s3cret"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["expires_at"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := echo.New()
	h := newTestAuth(t)

	cases := []string{
		`{"email":"admin@example.com","password":"wrong"}`,
		`{"email":"other@example.com","password":"s3cret"}`,
	}
	for _, body := range cases {
		rec, c := doJSON(e, http.MethodPost, "/api/admin/login", body)
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "body: %s", body)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	e := echo.New()
	h := newTestAuth(t)

	rec, c := doJSON(e, http.MethodPost, "/api/admin/login", `{"email":"admin@example.com"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
