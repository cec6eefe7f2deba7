package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/middleware"
	"github.com/flmoreno/movie-recs-api/internal/store"
	"github.com/flmoreno/movie-recs-api/internal/utils"
)

type userLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type serviceLoginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// login finds the principal record matching (field, value) in col, verifies
// the password against the stored hash and issues an access token carrying
// the record key and role. Lookup misses and bad passwords are
// indistinguishable to the caller.
func (h *Handler) login(c echo.Context, col *store.Collection, field, value, password, role string) error {
	if value == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": field + " and password are required"})
	}
	matches, err := col.GetByField(c.Request().Context(), field, value)
	if err != nil {
		return httpErr(c, err)
	}
	if len(matches) == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	principal := matches[0]
	hash, _ := principal["password"].(string)
	if !utils.VerifyPassword(hash, password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	id, _ := principal[col.IDField()].(string)
	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, token)
}

// UserLogin handles POST /auth/users/login.
func (h *Handler) UserLogin(c echo.Context) error {
	var req userLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	return h.login(c, h.DB.Users, "email", email, req.Password, middleware.RoleUser)
}

// AdminLogin handles POST /auth/admins/login.
func (h *Handler) AdminLogin(c echo.Context) error {
	var req serviceLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	return h.login(c, h.DB.Admins, "name", req.Name, req.Password, middleware.RoleAdmin)
}

// AILogin handles POST /auth/ais/login for the recommender service.
func (h *Handler) AILogin(c echo.Context) error {
	var req serviceLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	return h.login(c, h.DB.Ais, "name", req.Name, req.Password, middleware.RoleAI)
}
