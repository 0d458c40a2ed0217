package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
)

// RoomHandler serves CRUD for rooms.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(r *repository.RoomRepo) *RoomHandler { return &RoomHandler{Rooms: r} }

type roomReq struct {
	RoomNumber       string `json:"roomNumber"`
	BuildingID       uint64 `json:"buildingId"`
	RoomType         string `json:"roomType"`
	Capacity         int    `json:"capacity"`
	CurrentOccupancy int    `json:"currentOccupancy"`
	Status           string `json:"status"`
}

func (r roomReq) toModel() model.Room {
	status := r.Status
	if status == "" {
		status = "Available"
	}
	roomType := r.RoomType
	if roomType == "" {
		roomType = "standard"
	}
	return model.Room{
		RoomNumber:       strings.TrimSpace(r.RoomNumber),
		BuildingID:       r.BuildingID,
		RoomType:         roomType,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Status:           status,
	}
}

func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	rm := req.toModel()
	if rm.RoomNumber == "" || rm.BuildingID == 0 || rm.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "roomNumber/buildingId/capacity required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Rooms.Create(ctx, rm)
	if err != nil {
		return repoError(c, err, "create room failed")
	}
	rm.ID = id
	return c.JSON(http.StatusCreated, echo.Map{"message": "room created successfully", "data": rm})
}

// List returns all rooms; ?buildingId= filters by building.
func (h *RoomHandler) List(c echo.Context) error {
	var buildingID uint64
	if q := c.QueryParam("buildingId"); q != "" {
		n, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid buildingId"})
		}
		buildingID = n
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Rooms.List(ctx, buildingID)
	if err != nil {
		return repoError(c, err, "list rooms failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rooms retrieved successfully", "data": out})
}

func (h *RoomHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load room failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room retrieved successfully", "data": rm})
}

func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	rm := req.toModel()
	if rm.RoomNumber == "" || rm.BuildingID == 0 || rm.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "roomNumber/buildingId/capacity required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Rooms.Update(ctx, id, rm); err != nil {
		return repoError(c, err, "update room failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room updated successfully"})
}

func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete room failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted successfully"})
}
