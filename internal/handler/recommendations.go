package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/middleware"
	"github.com/flmoreno/movie-recs-api/internal/queue"
	"github.com/flmoreno/movie-recs-api/internal/store"
)

type recommendationReq struct {
	UserID  string `json:"user_id"`
	MovieID string `json:"movie_id"`
}

// recommendationSanityCheck verifies the referenced user and movie exist.
func (h *Handler) recommendationSanityCheck(ctx context.Context, req recommendationReq) error {
	ok, err := h.DB.Users.Exists(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found.")
	}
	ok, err = h.DB.Movies.Exists(ctx, req.MovieID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Movie not found.")
	}
	return nil
}

// ListRecommendations handles GET /recommendations and returns only the
// authenticated user's recommendations.
func (h *Handler) ListRecommendations(c echo.Context) error {
	userID := middleware.PrincipalID(c)
	recs, err := h.DB.Recommendations.GetByField(c.Request().Context(), "user_id", userID)
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}

// ListRecommendationsByGenre handles GET /recommendations/by_genre/:id. The
// caller's recommendations are filtered down to movies linked to the genre.
func (h *Handler) ListRecommendationsByGenre(c echo.Context) error {
	userID := middleware.PrincipalID(c)
	ctx := c.Request().Context()

	recs, err := h.DB.Recommendations.GetByField(ctx, "user_id", userID)
	if err != nil {
		return httpErr(c, err)
	}
	links, err := h.DB.MoviesGenres.GetByField(ctx, "genre_id", c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	inGenre := make(map[any]bool, len(links))
	for _, link := range links {
		inGenre[link["movie_id"]] = true
	}

	out := make([]store.Record, 0, len(recs))
	for _, rec := range recs {
		if inGenre[rec["movie_id"]] {
			out = append(out, rec)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// CreateRecommendation handles POST /recommendations (ai service only).
func (h *Handler) CreateRecommendation(c echo.Context) error {
	var req recommendationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if err := h.recommendationSanityCheck(ctx, req); err != nil {
		return httpErr(c, err)
	}

	rec, err := h.DB.Recommendations.Create(ctx, store.Record{
		"user_id":  req.UserID,
		"movie_id": req.MovieID,
	})
	if err != nil {
		return httpErr(c, err)
	}

	createdAt, _ := rec["created_at"].(string)
	recordID, _ := rec["recommendation_id"].(string)
	_ = h.Events.Publish(ctx, queue.RecommendationCreatedQueue, queue.EntityEvent{
		RecordID:  recordID,
		UserID:    req.UserID,
		MovieID:   req.MovieID,
		CreatedAt: createdAt,
	})

	return c.JSON(http.StatusCreated, rec)
}

// UpdateRecommendation handles PUT /recommendations/:id (ai service only).
func (h *Handler) UpdateRecommendation(c echo.Context) error {
	var req recommendationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := h.DB.Recommendations.GetByID(ctx, id); err != nil {
		return httpErr(c, err)
	}
	if err := h.recommendationSanityCheck(ctx, req); err != nil {
		return httpErr(c, err)
	}

	rec, err := h.DB.Recommendations.Update(ctx, id, store.Record{
		"user_id":  req.UserID,
		"movie_id": req.MovieID,
	})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteRecommendation handles DELETE /recommendations/:id (ai service only).
func (h *Handler) DeleteRecommendation(c echo.Context) error {
	rec, err := h.DB.Recommendations.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
