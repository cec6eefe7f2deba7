package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flmoreno/movie-recs-api/internal/store"
	"github.com/flmoreno/movie-recs-api/internal/utils"
)

type credentialReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) credentialFields(req credentialReq) (store.Record, error) {
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return store.Record{"name": req.Name, "password": hash}, nil
}

// GetAdmin handles GET /admins/:id.
func (h *Handler) GetAdmin(c echo.Context) error {
	admin, err := h.DB.Admins.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, admin)
}

// ListAdmins handles GET /admins.
func (h *Handler) ListAdmins(c echo.Context) error {
	admins, err := h.DB.Admins.GetAll(c.Request().Context())
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, admins)
}

// CreateAdmin handles POST /admins.
func (h *Handler) CreateAdmin(c echo.Context) error {
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

	admin, err := h.DB.Admins.Create(c.Request().Context(), fields)
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin handles PUT /admins/:id.
func (h *Handler) UpdateAdmin(c echo.Context) error {
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

	admin, err := h.DB.Admins.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, admin)
}

// DeleteAdmin handles DELETE /admins/:id.
func (h *Handler) DeleteAdmin(c echo.Context) error {
	admin, err := h.DB.Admins.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpErr(c, err)
	}
	return c.JSON(http.StatusOK, admin)
}
