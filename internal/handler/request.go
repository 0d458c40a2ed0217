package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/middleware"
	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/queue"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/service"
	"github.com/iliyamo/dorm-management/internal/utils"
)

// RequestHandler serves CRUD plus assign/resolve transitions for
// maintenance and service requests.
type RequestHandler struct {
	Requests *repository.RequestRepo
	Students *repository.StudentRepo
}

func NewRequestHandler(r *repository.RequestRepo, s *repository.StudentRepo) *RequestHandler {
	return &RequestHandler{Requests: r, Students: s}
}

type requestReq struct {
	StudentID   uint64  `json:"studentId"`
	RoomID      *uint64 `json:"roomId"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
}

type assignReq struct {
	AssignedTo uint64 `json:"assignedTo"`
}

func (r requestReq) toModel() model.Request {
	req := model.Request{
		StudentID:   r.StudentID,
		RoomID:      r.RoomID,
		Type:        r.Type,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if req.Status == "" {
		req.Status = "pending"
	}
	return req
}

// Create files a request. Students may only file for their own profile;
// staff and admins may file on behalf of any student.
func (h *RequestHandler) Create(c echo.Context) error {
	var req requestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	rq := req.toModel()
	if rq.Type == "" || rq.Title == "" || rq.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "type/title/description required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, _ := middleware.PrincipalFrom(c)
	if p.Role == model.RoleStudent {
		st, err := h.Students.GetByUserID(ctx, p.ID)
		if err != nil {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "no student profile for this account"})
		}
		rq.StudentID = st.ID
	}
	if rq.StudentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "studentId required"})
	}
	rq.RequestNumber = utils.NewDocumentNumber("RQ")

	id, err := h.Requests.Create(ctx, rq)
	if err != nil {
		return repoError(c, err, "create request failed")
	}
	rq.ID = id

	ev := queue.RequestCreatedEvent{
		RequestID:     id,
		RequestNumber: rq.RequestNumber,
		UserID:        p.ID,
		StudentID:     rq.StudentID,
		Type:          rq.Type,
		Title:         rq.Title,
		Priority:      rq.Priority,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = service.PublishRequestCreated(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, echo.Map{"message": "request created successfully", "data": rq})
}

func (h *RequestHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Requests.List(ctx)
	if err != nil {
		return repoError(c, err, "list requests failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "requests retrieved successfully", "data": out})
}

func (h *RequestHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rq, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load request failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request retrieved successfully", "data": rq})
}

func (h *RequestHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req requestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	rq := req.toModel()
	if rq.Type == "" || rq.Title == "" || rq.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "type/title/description required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Update(ctx, id, rq); err != nil {
		return repoError(c, err, "update request failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request updated successfully"})
}

// Assign hands a request to a staff user.
func (h *RequestHandler) Assign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil || req.AssignedTo == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "assignedTo required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Assign(ctx, id, req.AssignedTo); err != nil {
		return repoError(c, err, "assign request failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request assigned successfully"})
}

// Resolve closes a request.
func (h *RequestHandler) Resolve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Resolve(ctx, id, time.Now().UTC()); err != nil {
		return repoError(c, err, "resolve request failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request resolved successfully"})
}

func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete request failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request deleted successfully"})
}
