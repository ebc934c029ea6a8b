package department

import (
	"net/http"
	"time"

	"CollegeHub/internal/apperr"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Departments are a small flat collection; handlers talk to the repository
// directly.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	now := time.Now()
	d := &Department{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(c.Request().Context(), d); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	var req UpdateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Code != nil {
		set["code"] = *req.Code
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	updated, err := h.repo.Update(c.Request().Context(), id, set)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
