package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/middleware"
	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/utils"
)

// ContractHandler serves CRUD plus the sign transition for contracts.
type ContractHandler struct {
	Contracts *repository.ContractRepo
	Payments  *repository.PaymentRepo
}

func NewContractHandler(c *repository.ContractRepo, p *repository.PaymentRepo) *ContractHandler {
	return &ContractHandler{Contracts: c, Payments: p}
}

type contractReq struct {
	StudentID       uint64  `json:"studentId"`
	RoomID          uint64  `json:"roomId"`
	StartDate       string  `json:"startDate"` // "2006-01-02"
	EndDate         string  `json:"endDate"`
	MonthlyRent     float64 `json:"monthlyRent"`
	Deposit         float64 `json:"deposit"`
	ElectricityRate float64 `json:"electricityRate"`
	WaterRate       float64 `json:"waterRate"`
	Status          string  `json:"status"`
	Terms           string  `json:"terms"`
}

func (r contractReq) toModel() (model.Contract, error) {
	c := model.Contract{
		StudentID:       r.StudentID,
		RoomID:          r.RoomID,
		MonthlyRent:     r.MonthlyRent,
		Deposit:         r.Deposit,
		ElectricityRate: r.ElectricityRate,
		WaterRate:       r.WaterRate,
		Status:          r.Status,
		Terms:           r.Terms,
	}
	if c.Status == "" {
		c.Status = "draft"
	}
	var err error
	if c.StartDate, err = time.Parse("2006-01-02", r.StartDate); err != nil {
		return c, err
	}
	if c.EndDate, err = time.Parse("2006-01-02", r.EndDate); err != nil {
		return c, err
	}
	return c, nil
}

func (h *ContractHandler) Create(c echo.Context) error {
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ct, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dates, expected YYYY-MM-DD"})
	}
	if ct.StudentID == 0 || ct.RoomID == 0 || ct.MonthlyRent <= 0 || !ct.EndDate.After(ct.StartDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "studentId/roomId/monthlyRent/date range required"})
	}
	ct.ContractNumber = utils.NewDocumentNumber("CT")
	if p, ok := middleware.PrincipalFrom(c); ok {
		ct.CreatedBy = &p.ID
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Contracts.Create(ctx, ct)
	if err != nil {
		return repoError(c, err, "create contract failed")
	}
	ct.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"message": "contract created successfully", "data": ct})
}

func (h *ContractHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Contracts.List(ctx)
	if err != nil {
		return repoError(c, err, "list contracts failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contracts retrieved successfully", "data": out})
}

func (h *ContractHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	ct, err := h.Contracts.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load contract failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contract retrieved successfully", "data": ct})
}

func (h *ContractHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	ct, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dates, expected YYYY-MM-DD"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Contracts.Update(ctx, id, ct); err != nil {
		return repoError(c, err, "update contract failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contract updated successfully"})
}

// Sign activates a draft contract.
func (h *ContractHandler) Sign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Contracts.Sign(ctx, id, time.Now().UTC()); err != nil {
		return repoError(c, err, "sign contract failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contract signed successfully"})
}

// PaymentsByContract lists the payments attached to one contract.
func (h *ContractHandler) PaymentsByContract(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Contracts.GetByID(ctx, id); err != nil {
		return repoError(c, err, "load contract failed")
	}
	out, err := h.Payments.ListByContract(ctx, id)
	if err != nil {
		return repoError(c, err, "list payments failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payments retrieved successfully", "data": out})
}

func (h *ContractHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Contracts.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete contract failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contract deleted successfully"})
}
