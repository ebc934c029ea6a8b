package alumni

import (
	"net/http"
	"strconv"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func filterFromQuery(c echo.Context) ListFilter {
	f := ListFilter{
		Search:     c.QueryParam("search"),
		Department: c.QueryParam("department"),
		Degree:     c.QueryParam("degree"),
	}
	if year, err := strconv.Atoi(c.QueryParam("graduationYear")); err == nil {
		f.GraduationYear = year
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		active := raw == "true"
		f.IsActive = &active
	}
	f.Page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	if f.Page < 1 {
		f.Page = 1
	}
	f.Limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if f.Limit < 1 {
		f.Limit = 10
	}
	return f
}

func (h *Handler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Search(c echo.Context) error {
	f := filterFromQuery(c)
	if f.Search == "" && f.Department == "" && f.Degree == "" && f.GraduationYear == 0 {
		return apperr.Validation("At least one search parameter is required")
	}
	items, err := h.service.Search(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) Detail(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	a, err := h.service.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Create(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	if p == nil {
		return apperr.Unauthorized("Authentication required")
	}
	var req CreateAlumniRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.Create(c.Request().Context(), p, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	if p == nil {
		return apperr.Unauthorized("Authentication required")
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	var req UpdateAlumniRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.Update(c.Request().Context(), p, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	p := auth.PrincipalFrom(c)
	if p == nil {
		return apperr.Unauthorized("Authentication required")
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
