package handler

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLoginIssuesToken(t *testing.T) {
	h, _ := newTestHandler()

	created := call(t, h.CreateUser, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret"}`, "", "")
	require.Equal(t, http.StatusCreated, created.Code)
	userID := decodeBody(t, created)["user_id"].(string)

	login := call(t, h.UserLogin, http.MethodPost, "/auth/users/login",
		`{"email":"ana@example.com","password":"secret"}`, "", "")
	require.Equal(t, http.StatusOK, login.Code)

	raw, _ := decodeBody(t, login)["token"].(string)
	require.NotEmpty(t, raw)

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.Cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, userID, claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestUserLoginWrongPassword(t *testing.T) {
	h, _ := newTestHandler()
	call(t, h.CreateUser, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret"}`, "", "")

	rec := call(t, h.UserLogin, http.MethodPost, "/auth/users/login",
		`{"email":"ana@example.com","password":"wrong"}`, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserLoginUnknownEmail(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.UserLogin, http.MethodPost, "/auth/users/login",
		`{"email":"ghost@example.com","password":"secret"}`, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginRoleClaim(t *testing.T) {
	h, _ := newTestHandler()

	created := call(t, h.CreateAdmin, http.MethodPost, "/admins",
		`{"name":"root","password":"secret"}`, "", "")
	require.Equal(t, http.StatusCreated, created.Code)

	login := call(t, h.AdminLogin, http.MethodPost, "/auth/admins/login",
		`{"name":"root","password":"secret"}`, "", "")
	require.Equal(t, http.StatusOK, login.Code)

	raw, _ := decodeBody(t, login)["token"].(string)
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.Cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", tok.Claims.(jwt.MapClaims)["role"])
}
