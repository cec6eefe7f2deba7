// Package handler implements the HTTP endpoints of the movie-recommendation
// API. Each entity has a file with its CRUD handlers and, where the entity
// needs one, a sanity check that runs before any mutating store call.
package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/config"
	"github.com/flmoreno/movie-recs-api/internal/service/queuepub"
	"github.com/flmoreno/movie-recs-api/internal/store"
)

// Bounds enforced by the movie and rating sanity checks. The upper year bound
// is the current year, taken at request time.
const (
	MinYear   = 1888
	MinRating = 0.0
	MaxRating = 5.0
)

// Handler bundles the dependencies shared by all endpoints: configuration,
// the configured collection accessors and the optional event publisher.
type Handler struct {
	Cfg    config.Config
	DB     *store.Collections
	Events *queuepub.Publisher
}

func New(cfg config.Config, db *store.Collections, events *queuepub.Publisher) *Handler {
	return &Handler{Cfg: cfg, DB: db, Events: events}
}

// httpErr renders an error in the uniform {"error": msg} shape. Sanity checks
// produce *echo.HTTPError with the status already chosen; accessor errors map
// to 404 for absent records and 500 for store failures, with the underlying
// message carried through in both cases.
func httpErr(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, echo.Map{"error": fmt.Sprint(he.Message)})
	}
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
