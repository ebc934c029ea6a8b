package course

import (
	"net/http"
	"strconv"
	"time"

	"CollegeHub/internal/apperr"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

type listResponse struct {
	Items []*Course `json:"items"`
	Total int64     `json:"total"`
	Page  int64     `json:"page"`
	Limit int64     `json:"limit"`
}

func (h *Handler) List(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 {
		limit = 10
	}
	items, total, err := h.repo.List(c.Request().Context(), c.QueryParam("search"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	now := time.Now()
	course := &Course{
		ID:          primitive.NewObjectID(),
		Code:        req.Code,
		Title:       req.Title,
		Credits:     req.Credits,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if course.Credits == 0 {
		course.Credits = 3
	}
	if req.DepartmentID != "" {
		deptID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return apperr.Validation("Invalid departmentId")
		}
		course.DepartmentID = deptID
	}
	if err := h.repo.Create(c.Request().Context(), course); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	var req UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	set := bson.M{"updated_at": time.Now()}
	if req.Code != nil {
		set["code"] = *req.Code
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Credits != nil {
		set["credits"] = *req.Credits
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.DepartmentID != nil {
		deptID, err := primitive.ObjectIDFromHex(*req.DepartmentID)
		if err != nil {
			return apperr.Validation("Invalid departmentId")
		}
		set["department_id"] = deptID
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
