package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/store"
)

type movieReq struct {
	Title    string  `json:"title"`
	Synopsis string  `json:"synopsis"`
	Year     int     `json:"year"`
	ImageURL string  `json:"image_url"`
	Rating   float64 `json:"rating"`
}

// movieSanityCheck validates the release year against [MinYear, current year]
// and the mean rating against [MinRating, MaxRating].
func movieSanityCheck(req movieReq) error {
	maxYear := time.Now().Year()
	if req.Year < MinYear || req.Year > maxYear {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Year %d is not within the allowed bounds [%d, %d]", req.Year, MinYear, maxYear))
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Mean rating %g is not within the allowed bounds [%g, %g]", req.Rating, MinRating, MaxRating))
	}
	return nil
}

func movieFields(req movieReq) store.Record {
	return store.Record{
		"title":     req.Title,
		"synopsis":  req.Synopsis,
		"year":      req.Year,
		"image_url": req.ImageURL,
		"rating":    req.Rating,
	}
}

// GetMovie handles GET /movies/:id.
func (h *Handler) GetMovie(c echo.Context) error {
	movie, err := h.DB.Movies.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// ListMovies handles GET /movies.
func (h *Handler) ListMovies(c echo.Context) error {
	movies, err := h.DB.Movies.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, movies)
}

// ListMoviesByGenre handles GET /movies/by_genre/:id. Link duplicates are not
// suppressed: a movie linked to the genre twice appears twice.
func (h *Handler) ListMoviesByGenre(c echo.Context) error {
	ctx := c.Request().Context()
	links, err := h.DB.MoviesGenres.GetByField(ctx, "genre_id", c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	movies := make([]store.Record, 0, len(links))
	for _, link := range links {
		movieID, _ := link["movie_id"].(string)
		movie, err := h.DB.Movies.GetByID(ctx, movieID)
		if err != nil {
			return httpErr(c, err)
		}
		movies = append(movies, movie)
	}
	return c.JSON(http.StatusOK, movies)
}

// CreateMovie handles POST /movies (admin only).
func (h *Handler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := movieSanityCheck(req); err != nil {
		return httpErr(c, err)
	}

	movie, err := h.DB.Movies.Create(c.Request().Context(), movieFields(req))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusCreated, movie)
}

// UpdateMovie handles PUT /movies/:id (admin only).
func (h *Handler) UpdateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := movieSanityCheck(req); err != nil {
		return httpErr(c, err)
	}

	movie, err := h.DB.Movies.Update(c.Request().Context(), c.Param("id"), movieFields(req))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// DeleteMovie handles DELETE /movies/:id (admin only). Ratings, links and
// recommendations referencing the movie are left in place; there is no
// cascade.
func (h *Handler) DeleteMovie(c echo.Context) error {
	movie, err := h.DB.Movies.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}
