package contact

import (
	"net/http"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) Submit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m := &Message{
		ID:        primitive.NewObjectID(),
		Reference: uuid.NewString(),
		Name:      req.Name,
		Email:     auth.NormalizeEmail(req.Email),
		Subject:   req.Subject,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Insert(c.Request().Context(), m); err != nil {
		return err
	}
	h.logger.Info("contact message received", zap.String("reference", m.Reference), zap.String("subject", m.Subject))
	return c.JSON(http.StatusCreated, SubmitResponse{Ok: true, Reference: m.Reference})
}
