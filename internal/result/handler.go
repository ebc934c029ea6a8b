package result

import (
	"net/http"
	"strconv"
	"time"

	"CollegeHub/internal/apperr"
	"CollegeHub/internal/auth"

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
	Items []*Result `json:"items"`
	Total int64     `json:"total"`
	Page  int64     `json:"page"`
	Limit int64     `json:"limit"`
}

func (h *Handler) List(c echo.Context) error {
	f := ListFilter{Search: c.QueryParam("search"), Page: 1, Limit: 10}
	if page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64); page > 0 {
		f.Page = page
	}
	if limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64); limit > 0 {
		f.Limit = limit
	}
	if raw := c.QueryParam("studentId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperr.Validation("Invalid studentId")
		}
		f.StudentID = id
	}
	if raw := c.QueryParam("courseId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return apperr.Validation("Invalid courseId")
		}
		f.CourseID = id
	}
	if raw := c.QueryParam("semester"); raw != "" {
		semester, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Invalid semester")
		}
		f.Semester = semester
	}

	items, total, err := h.repo.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: items, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *Handler) StudentResults(c echo.Context) error {
	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		return apperr.Validation("Invalid studentId")
	}
	semester := 0
	if raw := c.QueryParam("semester"); raw != "" {
		semester, err = strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("Invalid semester")
		}
	}
	items, err := h.repo.ListByStudent(c.Request().Context(), studentID, semester, c.QueryParam("academicYear"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateResultRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentUserID)
	if err != nil {
		return apperr.Validation("Invalid studentUserId")
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return apperr.Validation("Invalid courseId")
	}

	now := time.Now()
	res := &Result{
		ID:            primitive.NewObjectID(),
		StudentUserID: studentID,
		CourseID:      courseID,
		Semester:      req.Semester,
		Marks:         req.Marks,
		Grade:         req.Grade,
		ExamType:      req.ExamType,
		AcademicYear:  req.AcademicYear,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if res.ExamType == "" {
		res.ExamType = "final"
	}
	if principal := auth.PrincipalFrom(c); principal != nil {
		if creator, err := primitive.ObjectIDFromHex(principal.ID); err == nil {
			res.CreatedBy = creator
		}
	}
	if err := h.repo.Create(c.Request().Context(), res); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperr.Validation("Invalid id")
	}
	var req UpdateResultRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	set := bson.M{"updated_at": time.Now()}
	if req.Semester != nil {
		set["semester"] = *req.Semester
	}
	if req.Marks != nil {
		set["marks"] = *req.Marks
	}
	if req.Grade != nil {
		set["grade"] = *req.Grade
	}
	if req.ExamType != nil {
		set["exam_type"] = *req.ExamType
	}
	if req.AcademicYear != nil {
		set["academic_year"] = *req.AcademicYear
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
