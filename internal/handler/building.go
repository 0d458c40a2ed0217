package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
)

// BuildingHandler serves CRUD for dormitory buildings.
type BuildingHandler struct {
	Buildings *repository.BuildingRepo
}

func NewBuildingHandler(b *repository.BuildingRepo) *BuildingHandler {
	return &BuildingHandler{Buildings: b}
}

type buildingReq struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	TotalFloors int     `json:"totalFloors"`
	TotalRooms  int     `json:"totalRooms"`
	ManagerID   *uint64 `json:"managerId"`
	Status      string  `json:"status"`
}

func (r buildingReq) toModel() model.Building {
	status := r.Status
	if status == "" {
		status = "active"
	}
	return model.Building{
		Name:        strings.TrimSpace(r.Name),
		Code:        strings.TrimSpace(r.Code),
		Address:     r.Address,
		Description: r.Description,
		TotalFloors: r.TotalFloors,
		TotalRooms:  r.TotalRooms,
		ManagerID:   r.ManagerID,
		Status:      status,
	}
}

func (h *BuildingHandler) Create(c echo.Context) error {
	var req buildingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b := req.toModel()
	if b.Name == "" || b.Code == "" || b.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name/code/address required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Buildings.Create(ctx, b)
	if err != nil {
		return repoError(c, err, "create building failed")
	}
	b.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"message": "building created successfully", "data": b})
}

func (h *BuildingHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Buildings.List(ctx)
	if err != nil {
		return repoError(c, err, "list buildings failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "buildings retrieved successfully", "data": out})
}

func (h *BuildingHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	b, err := h.Buildings.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load building failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "building retrieved successfully", "data": b})
}

func (h *BuildingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req buildingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	b := req.toModel()
	if b.Name == "" || b.Code == "" || b.Address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name/code/address required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Buildings.Update(ctx, id, b); err != nil {
		return repoError(c, err, "update building failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "building updated successfully"})
}

func (h *BuildingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Buildings.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete building failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "building deleted successfully"})
}
