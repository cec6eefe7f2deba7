package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flmoreno/movie-recs-api/internal/utils"
)

func TestCreateUserRoundTrip(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.CreateUser, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret"}`, "", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)
	assert.Equal(t, "Ana", created["name"])
	assert.Equal(t, "ana@example.com", created["email"])
	assert.NotEmpty(t, created["user_id"])
	assert.NotEmpty(t, created["created_at"])
	// Stored password is a bcrypt hash of the submitted plaintext.
	hash, _ := created["password"].(string)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, utils.VerifyPassword(hash, "secret"))

	got := call(t, h.GetUser, http.MethodGet, "/users/:id", "", created["user_id"].(string), "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, created["user_id"], decodeBody(t, got)["user_id"])
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"name":"Ana","email":"ana@example.com","password":"secret"}`

	first := call(t, h.CreateUser, http.MethodPost, "/users", body, "", "")
	require.Equal(t, http.StatusCreated, first.Code)

	second := call(t, h.CreateUser, http.MethodPost, "/users", body, "", "")
	require.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, "Email already registered.", decodeBody(t, second)["error"])
}

func TestCreateUserMissingFields(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.CreateUser, http.MethodPost, "/users", `{"name":"Ana"}`, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	all := call(t, h.ListUsers, http.MethodGet, "/users", "", "", "")
	assert.Empty(t, decodeList(t, all))
}

func TestUpdateUserNotFound(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.UpdateUser, http.MethodPut, "/users/:id",
		`{"name":"Ana","email":"new@example.com","password":"secret"}`, "missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "user_id == missing")
}

func TestDeleteUserEchoesRecordThenGone(t *testing.T) {
	h, _ := newTestHandler()
	id := seedUser(t, h, "bye@example.com")

	deleted := call(t, h.DeleteUser, http.MethodDelete, "/users/:id", "", id, "")
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, "bye@example.com", decodeBody(t, deleted)["email"])

	gone := call(t, h.GetUser, http.MethodGet, "/users/:id", "", id, "")
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestListUsersEmpty(t *testing.T) {
	h, _ := newTestHandler()

	rec := call(t, h.ListUsers, http.MethodGet, "/users", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
