package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flmoreno/movie-recs-api/internal/config"
	"github.com/flmoreno/movie-recs-api/internal/handler"
	"github.com/flmoreno/movie-recs-api/internal/middleware"
	"github.com/flmoreno/movie-recs-api/internal/router"
	"github.com/flmoreno/movie-recs-api/internal/service/queuepub"
	"github.com/flmoreno/movie-recs-api/internal/store"
	"github.com/flmoreno/movie-recs-api/internal/utils"
)

const secret = "router-test-secret"

func newServer(t *testing.T, adminRoutes bool) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		JWTSecret:         secret,
		AccessTTLMin:      60,
		BcryptCost:        bcrypt.MinCost,
		EnableAdminRoutes: adminRoutes,
	}
	h := handler.New(cfg, store.NewCollections(store.NewMemoryStore()), queuepub.New(""))
	e := echo.New()
	router.Register(e, h)
	return e
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, id, role, 5)
	require.NoError(t, err)
	return tok.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	e := newServer(t, false)
	rec := do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenreMutationAuthMatrix(t *testing.T) {
	e := newServer(t, false)
	body := `{"name":"Action"}`

	anon := do(e, http.MethodPost, "/genres", body, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	asUser := do(e, http.MethodPost, "/genres", body, token(t, "u1", middleware.RoleUser))
	assert.Equal(t, http.StatusForbidden, asUser.Code)

	asAdmin := do(e, http.MethodPost, "/genres", body, token(t, "adm1", middleware.RoleAdmin))
	assert.Equal(t, http.StatusCreated, asAdmin.Code)

	// Reads stay public.
	list := do(e, http.MethodGet, "/genres", "", "")
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestRecommendationMutationRequiresAI(t *testing.T) {
	e := newServer(t, false)

	// Self-registration is open; the created user becomes the target.
	created := do(e, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, created.Code)
	userID := decode(t, created)["user_id"].(string)

	movie := do(e, http.MethodPost, "/movies",
		`{"title":"M","synopsis":"s","year":2020,"image_url":"u","rating":4}`,
		token(t, "adm1", middleware.RoleAdmin))
	require.Equal(t, http.StatusCreated, movie.Code)
	movieID := decode(t, movie)["movie_id"].(string)

	recBody := fmt.Sprintf(`{"user_id":%q,"movie_id":%q}`, userID, movieID)

	asUser := do(e, http.MethodPost, "/recommendations", recBody, token(t, userID, middleware.RoleUser))
	assert.Equal(t, http.StatusForbidden, asUser.Code)

	asAI := do(e, http.MethodPost, "/recommendations", recBody, token(t, "svc1", middleware.RoleAI))
	assert.Equal(t, http.StatusCreated, asAI.Code)

	// The user sees only their own recommendations, and only with a token.
	listAnon := do(e, http.MethodGet, "/recommendations", "", "")
	assert.Equal(t, http.StatusUnauthorized, listAnon.Code)

	list := do(e, http.MethodGet, "/recommendations", "", token(t, userID, middleware.RoleUser))
	require.Equal(t, http.StatusOK, list.Code)
	var recs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, movieID, recs[0]["movie_id"])
}

func TestRatingFlowOverHTTP(t *testing.T) {
	e := newServer(t, false)

	created := do(e, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, created.Code)
	userID := decode(t, created)["user_id"].(string)

	login := do(e, http.MethodPost, "/auth/users/login",
		`{"email":"ana@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, login.Code)
	userToken := decode(t, login)["token"].(string)

	movie := do(e, http.MethodPost, "/movies",
		`{"title":"M","synopsis":"s","year":2020,"image_url":"u","rating":4}`,
		token(t, "adm1", middleware.RoleAdmin))
	movieID := decode(t, movie)["movie_id"].(string)

	rating := do(e, http.MethodPost, "/ratings",
		fmt.Sprintf(`{"movie_id":%q,"score":5}`, movieID), userToken)
	require.Equal(t, http.StatusCreated, rating.Code)
	assert.Equal(t, userID, decode(t, rating)["user_id"])
}

func TestAdminRoutesDisabledByDefault(t *testing.T) {
	e := newServer(t, false)
	adm := token(t, "adm1", middleware.RoleAdmin)

	rec := do(e, http.MethodGet, "/admins", "", adm)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	enabled := newServer(t, true)
	rec = do(enabled, http.MethodGet, "/admins", "", adm)
	assert.Equal(t, http.StatusOK, rec.Code)

	asUser := do(enabled, http.MethodGet, "/admins", "", token(t, "u1", middleware.RoleUser))
	assert.Equal(t, http.StatusForbidden, asUser.Code)
}
