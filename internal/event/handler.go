package event

import (
	"net/http"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

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
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	now := time.Now()
	e := &Event{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
		Tags:        req.Tags,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished != nil {
		e.IsPublished = *req.IsPublished
	}
	if principal := auth.PrincipalFrom(c); principal != nil {
		if creator, err := primitive.ObjectIDFromHex(principal.ID); err == nil {
			e.CreatedBy = creator
		}
	}
	if err := h.repo.Create(c.Request().Context(), e); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}
