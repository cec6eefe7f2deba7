package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/middleware"
	"github.com/flmoreno/movie-recs-api/internal/queue"
	"github.com/flmoreno/movie-recs-api/internal/store"
)

type ratingPostReq struct {
	MovieID string  `json:"movie_id"`
	Score   float64 `json:"score"`
}

type ratingUpdateReq struct {
	Score float64 `json:"score"`
}

// ratingSanityCheck verifies the referenced user and movie exist and the
// score is within bounds.
func (h *Handler) ratingSanityCheck(ctx context.Context, userID, movieID string, score float64) error {
	ok, err := h.DB.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found.")
	}
	ok, err = h.DB.Movies.Exists(ctx, movieID)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Movie not found.")
	}
	if score < MinRating || score > MaxRating {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Invalid rating score. Score must be between 0 and 5.")
	}
	return nil
}

// GetRating handles GET /ratings/:id.
func (h *Handler) GetRating(c echo.Context) error {
	rating, err := h.DB.Ratings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, rating)
}

// ListRatings handles GET /ratings.
func (h *Handler) ListRatings(c echo.Context) error {
	ratings, err := h.DB.Ratings.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// CreateRating handles POST /ratings. The user_id is stamped from the access
// token, never taken from the body. A user may rate a movie once; the check
// scans the caller's existing ratings and runs on create only.
func (h *Handler) CreateRating(c echo.Context) error {
	var req ratingPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	userID := middleware.PrincipalID(c)
	ctx := c.Request().Context()

	existing, err := h.DB.Ratings.GetByField(ctx, "user_id", userID)
	if err != nil {
		return httpErr(c, err)
	}
	for _, r := range existing {
		if r["movie_id"] == req.MovieID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "The user has already rated this movie."})
		}
	}
	if err := h.ratingSanityCheck(ctx, userID, req.MovieID, req.Score); err != nil {
		return httpErr(c, err)
	}

	rating, err := h.DB.Ratings.Create(ctx, store.Record{
		"user_id":  userID,
		"movie_id": req.MovieID,
		"score":    req.Score,
	})
	if err != nil {
		return httpErr(c, err)
	}

	createdAt, _ := rating["created_at"].(string)
	recordID, _ := rating["rating_id"].(string)
	_ = h.Events.Publish(ctx, queue.RatingCreatedQueue, queue.EntityEvent{
		RecordID:  recordID,
		UserID:    userID,
		MovieID:   req.MovieID,
		Score:     req.Score,
		CreatedAt: createdAt,
	})

	return c.JSON(http.StatusCreated, rating)
}

// UpdateRating handles PUT /ratings/:id. Only the score is taken from the
// body; user_id comes from the token and movie_id from the stored record.
// The one-rating-per-movie check is not re-applied here.
func (h *Handler) UpdateRating(c echo.Context) error {
	var req ratingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	userID := middleware.PrincipalID(c)
	ctx := c.Request().Context()

	old, err := h.DB.Ratings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	movieID, _ := old["movie_id"].(string)

	if err := h.ratingSanityCheck(ctx, userID, movieID, req.Score); err != nil {
		return httpErr(c, err)
	}
	if old["user_id"] != userID {
		return c.JSON(http.StatusForbidden,
			echo.Map{"error": "The user doesn't have authorization to modify this rating"})
	}

	rating, err := h.DB.Ratings.Update(ctx, c.Param("id"), store.Record{
		"user_id":  userID,
		"movie_id": movieID,
		"score":    req.Score,
	})
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, rating)
}

// DeleteRating handles DELETE /ratings/:id. Only the rating's owner may
// delete it.
func (h *Handler) DeleteRating(c echo.Context) error {
	userID := middleware.PrincipalID(c)
	ctx := c.Request().Context()

	old, err := h.DB.Ratings.GetByID(ctx, c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	if old["user_id"] != userID {
		return c.JSON(http.StatusForbidden,
			echo.Map{"error": "The user doesn't have authorization to delete this rating"})
	}

	rating, err := h.DB.Ratings.Delete(ctx, c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, rating)
}
