package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flmoreno/movie-recs-api/internal/config"
	"github.com/flmoreno/movie-recs-api/internal/service/queuepub"
	"github.com/flmoreno/movie-recs-api/internal/store"
)

func newTestHandler() (*Handler, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	cfg := config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
	return New(cfg, store.NewCollections(mem), queuepub.New("")), mem
}

// call invokes an echo handler directly with a JSON body and returns the
// recorded response. principalID, when non-empty, is injected the way the
// auth middleware would.
func call(t *testing.T, fn echo.HandlerFunc, method, path, body, paramID, principalID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	if principalID != "" {
		c.Set("principal_id", principalID)
	}
	require.NoError(t, fn(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// seedUser and seedMovie insert records through the accessors so tests get
// real push keys back.
func seedUser(t *testing.T, h *Handler, email string) string {
	t.Helper()
	rec, err := h.DB.Users.Create(t.Context(), store.Record{
		"name": "Test User", "email": email, "password": "x",
	})
	require.NoError(t, err)
	return rec["user_id"].(string)
}

func seedMovie(t *testing.T, h *Handler, title string) string {
	t.Helper()
	rec, err := h.DB.Movies.Create(t.Context(), store.Record{
		"title": title, "synopsis": "s", "year": 2000, "image_url": "http://img", "rating": 4.0,
	})
	require.NoError(t, err)
	return rec["movie_id"].(string)
}

func seedGenre(t *testing.T, h *Handler, name string) string {
	t.Helper()
	rec, err := h.DB.Genres.Create(t.Context(), store.Record{"name": name})
	require.NoError(t, err)
	return rec["genre_id"].(string)
}

func seedLink(t *testing.T, h *Handler, movieID, genreID string) string {
	t.Helper()
	rec, err := h.DB.MoviesGenres.Create(t.Context(), store.Record{
		"movie_id": movieID, "genre_id": genreID,
	})
	require.NoError(t, err)
	return rec["movie_genre_id"].(string)
}
