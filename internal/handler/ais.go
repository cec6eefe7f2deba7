package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetAI handles GET /ais/:id.
func (h *Handler) GetAI(c echo.Context) error {
	ai, err := h.DB.Ais.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, ai)
}

// ListAIs handles GET /ais.
func (h *Handler) ListAIs(c echo.Context) error {
	ais, err := h.DB.Ais.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, ais)
}

// CreateAI handles POST /ais, registering a recommender-service principal.
func (h *Handler) CreateAI(c echo.Context) error {
	var req credentialReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and password are required"})
	}
	fields, err := h.credentialFields(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ai, err := h.DB.Ais.Create(c.Request().Context(), fields)
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusCreated, ai)
}

// UpdateAI handles PUT /ais/:id.
func (h *Handler) UpdateAI(c echo.Context) error {
	var req credentialReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and password are required"})
	}
	fields, err := h.credentialFields(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ai, err := h.DB.Ais.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, ai)
}

// DeleteAI handles DELETE /ais/:id.
func (h *Handler) DeleteAI(c echo.Context) error {
	ai, err := h.DB.Ais.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, ai)
}
