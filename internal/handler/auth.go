package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-booking/internal/utils"
)

// AuthHandler issues access tokens for the admin endpoints. There is a
// single operator account configured through the environment; the
// password is bcrypt-hashed once at startup so the plain text never
// lives on the handler.
type AuthHandler struct {
	AdminEmail   string
	AdminHash    string
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler from the pre-hashed admin
// credentials.
func NewAuthHandler(adminEmail, adminHash, jwtSecret string, accessTTLMin int) *AuthHandler {
	return &AuthHandler{
		AdminEmail:   adminEmail,
		AdminHash:    adminHash,
		JWTSecret:    jwtSecret,
		AccessTTLMin: accessTTLMin,
	}
}

// Login handles POST /api/admin/login. A valid email and password pair
// yields 200 {token, expires_at}; anything else is 401 without detail
// on which part failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	if body.Email != strings.ToLower(h.AdminEmail) || !utils.VerifyPassword(h.AdminHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, 1, "ADMIN", h.AccessTTLMin)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
	})
}
