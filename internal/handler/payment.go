package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/queue"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/service"
	"github.com/iliyamo/dorm-management/internal/utils"
)

// PaymentHandler serves CRUD plus the confirm transition and the overdue
// listing for payments.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Students *repository.StudentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo, s *repository.StudentRepo) *PaymentHandler {
	return &PaymentHandler{Payments: p, Students: s}
}

type paymentReq struct {
	ContractID    uint64  `json:"contractId"`
	StudentID     uint64  `json:"studentId"`
	PaymentType   string  `json:"paymentType"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"dueDate"` // "2006-01-02"
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	Note          string  `json:"note"`
}

type confirmReq struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (r paymentReq) toModel() (model.Payment, error) {
	p := model.Payment{
		ContractID:    r.ContractID,
		StudentID:     r.StudentID,
		PaymentType:   r.PaymentType,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		Note:          r.Note,
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	var err error
	p.DueDate, err = time.Parse("2006-01-02", r.DueDate)
	return p, err
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dueDate, expected YYYY-MM-DD"})
	}
	if p.ContractID == 0 || p.StudentID == 0 || p.PaymentType == "" || p.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "contractId/studentId/paymentType/amount required"})
	}
	p.InvoiceNumber = utils.NewDocumentNumber("INV")

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Payments.Create(ctx, p)
	if err != nil {
		return repoError(c, err, "create payment failed")
	}
	p.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"message": "payment created successfully", "data": p})
}

func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Payments.List(ctx)
	if err != nil {
		return repoError(c, err, "list payments failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payments retrieved successfully", "data": out})
}

// ListOverdue returns overdue payments plus pending ones past their due date.
func (h *PaymentHandler) ListOverdue(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Payments.ListOverdue(ctx)
	if err != nil {
		return repoError(c, err, "list overdue payments failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "overdue payments retrieved successfully", "data": out})
}

func (h *PaymentHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load payment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment retrieved successfully", "data": p})
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dueDate, expected YYYY-MM-DD"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Payments.Update(ctx, id, p); err != nil {
		return repoError(c, err, "update payment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment updated successfully"})
}

// Confirm marks a payment as paid and notifies the student. The
// notification is best-effort: publish failures are logged by the
// publisher and never fail the confirmation.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req confirmReq
	if err := c.Bind(&req); err != nil || req.PaymentMethod == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "paymentMethod required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	now := time.Now().UTC()
	if err := h.Payments.Confirm(ctx, id, req.PaymentMethod, now); err != nil {
		return repoError(c, err, "confirm payment failed")
	}

	p, err := h.Payments.GetByID(ctx, id)
	if err == nil {
		ev := queue.PaymentConfirmedEvent{
			PaymentID:     p.ID,
			InvoiceNumber: p.InvoiceNumber,
			StudentID:     p.StudentID,
			Amount:        p.Amount,
			Method:        req.PaymentMethod,
			ConfirmedAt:   now.Format(time.RFC3339),
		}
		if st, err := h.Students.GetByID(ctx, p.StudentID); err == nil {
			ev.UserID = st.UserID
		}
		go func() { _ = service.PublishPaymentConfirmed(context.Background(), ev) }()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment confirmed successfully"})
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Payments.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete payment failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment deleted successfully"})
}
