package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
)

// StudentHandler serves CRUD for student profiles.
type StudentHandler struct {
	Students *repository.StudentRepo
}

func NewStudentHandler(s *repository.StudentRepo) *StudentHandler {
	return &StudentHandler{Students: s}
}

type studentReq struct {
	UserID      uint64  `json:"userId"`
	StudentCode string  `json:"studentCode"`
	FullName    string  `json:"fullName"`
	DateOfBirth string  `json:"dateOfBirth"` // "2006-01-02", optional
	Gender      string  `json:"gender"`
	Status      string  `json:"status"`
	RoomID      *uint64 `json:"roomId"`
}

func (r studentReq) toModel() (model.Student, error) {
	s := model.Student{
		UserID:      r.UserID,
		StudentCode: strings.TrimSpace(r.StudentCode),
		FullName:    strings.TrimSpace(r.FullName),
		Gender:      r.Gender,
		Status:      r.Status,
		RoomID:      r.RoomID,
	}
	if s.Status == "" {
		s.Status = "active"
	}
	if r.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", r.DateOfBirth)
		if err != nil {
			return s, err
		}
		s.DateOfBirth = &t
	}
	return s, nil
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	s, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dateOfBirth, expected YYYY-MM-DD"})
	}
	if s.UserID == 0 || s.StudentCode == "" || s.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId/studentCode/fullName required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Students.Create(ctx, s)
	if err != nil {
		return repoError(c, err, "create student failed")
	}
	s.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"message": "student created successfully", "data": s})
}

func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Students.List(ctx)
	if err != nil {
		return repoError(c, err, "list students failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "students retrieved successfully", "data": out})
}

func (h *StudentHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	s, err := h.Students.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load student failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student retrieved successfully", "data": s})
}

func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	s, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dateOfBirth, expected YYYY-MM-DD"})
	}
	if s.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "fullName required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Students.Update(ctx, id, s); err != nil {
		return repoError(c, err, "update student failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student updated successfully"})
}

func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Students.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete student failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student deleted successfully"})
}
