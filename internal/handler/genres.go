package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/store"
)

type genreReq struct {
	Name string `json:"name"`
}

// GetGenre handles GET /genres/:id.
func (h *Handler) GetGenre(c echo.Context) error {
	genre, err := h.DB.Genres.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, genre)
}

// ListGenres handles GET /genres.
func (h *Handler) ListGenres(c echo.Context) error {
	genres, err := h.DB.Genres.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, genres)
}

// ListGenresByMovie handles GET /genres/by_movie/:id. It resolves the link
// records for the movie and fetches each referenced genre, keeping the order
// the link scan produced.
func (h *Handler) ListGenresByMovie(c echo.Context) error {
	ctx := c.Request().Context()
	links, err := h.DB.MoviesGenres.GetByField(ctx, "movie_id", c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	genres := make([]store.Record, 0, len(links))
	for _, link := range links {
		genreID, _ := link["genre_id"].(string)
		genre, err := h.DB.Genres.GetByID(ctx, genreID)
		if err != nil {
			return httpErr(c, err)
		}
		genres = append(genres, genre)
	}
	return c.JSON(http.StatusOK, genres)
}

// CreateGenre handles POST /genres (admin only). Genre names must be unique;
// the check runs on create only, update does not re-verify it.
func (h *Handler) CreateGenre(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	existing, err := h.DB.Genres.GetByField(ctx, "name", req.Name)
	if err != nil {
		return httpErr(c, err)
	}
	if len(existing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Genre already registered."})
	}

	genre, err := h.DB.Genres.Create(ctx, store.Record{"name": req.Name})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusCreated, genre)
}

// UpdateGenre handles PUT /genres/:id (admin only).
func (h *Handler) UpdateGenre(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	genre, err := h.DB.Genres.Update(c.Request().Context(), c.Param("id"), store.Record{"name": req.Name})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, genre)
}

// DeleteGenre handles DELETE /genres/:id (admin only).
func (h *Handler) DeleteGenre(c echo.Context) error {
	genre, err := h.DB.Genres.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, genre)
}
