package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/store"
)

type movieGenreReq struct {
	MovieID string `json:"movie_id"`
	GenreID string `json:"genre_id"`
}

// movieGenreSanityCheck verifies both ends of the link exist. There is no
// uniqueness constraint on the pair: the same movie can be linked to the same
// genre more than once.
func (h *Handler) movieGenreSanityCheck(ctx context.Context, req movieGenreReq) error {
	ok, err := h.DB.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Movie not found.")
	}
	ok, err = h.DB.Genres.Exists(ctx, req.GenreID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Genre not found.")
	}
	return nil
}

// GetMovieGenre handles GET /moviesgenres/:id.
func (h *Handler) GetMovieGenre(c echo.Context) error {
	link, err := h.DB.MoviesGenres.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, link)
}

// ListMovieGenres handles GET /moviesgenres.
func (h *Handler) ListMovieGenres(c echo.Context) error {
	links, err := h.DB.MoviesGenres.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, links)
}

// CreateMovieGenre handles POST /moviesgenres (admin only).
func (h *Handler) CreateMovieGenre(c echo.Context) error {
	var req movieGenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if err := h.movieGenreSanityCheck(ctx, req); err != nil {
		return httpErr(c, err)
	}

	link, err := h.DB.MoviesGenres.Create(ctx, store.Record{
		"movie_id": req.MovieID,
		"genre_id": req.GenreID,
	})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusCreated, link)
}

// UpdateMovieGenre handles PUT /moviesgenres/:id (admin only).
func (h *Handler) UpdateMovieGenre(c echo.Context) error {
	var req movieGenreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if err := h.movieGenreSanityCheck(ctx, req); err != nil {
		return httpErr(c, err)
	}

	link, err := h.DB.MoviesGenres.Update(ctx, c.Param("id"), store.Record{
		"movie_id": req.MovieID,
		"genre_id": req.GenreID,
	})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, link)
}

// DeleteMovieGenre handles DELETE /moviesgenres/:id (admin only).
func (h *Handler) DeleteMovieGenre(c echo.Context) error {
	link, err := h.DB.MoviesGenres.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, link)
}
