package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/config"
	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/utils"
)

// UserHandler serves the admin user management routes. Unlike Register it
// can create accounts with any role.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type userCreateReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userUpdateReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func validRole(role string) bool {
	switch role {
	case model.RoleStudent, model.RoleStaff, model.RoleAdmin:
		return true
	}
	return false
}

func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/name/password required"})
	}
	if req.Role == "" {
		req.Role = model.RoleStudent
	}
	if !validRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid role"})
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, req.Name, req.Phone, req.Password, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		return repoError(c, err, "create user failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"data":    userPart{ID: id, Email: req.Email, Name: req.Name, Role: req.Role},
	})
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return repoError(c, err, "list users failed")
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "users retrieved successfully", "data": out})
}

func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "load user failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "user retrieved successfully",
		"data":    userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	})
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req userUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Name == "" || !validRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and valid role required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.Update(ctx, id, req.Name, req.Phone, req.Role); err != nil {
		return repoError(c, err, "update user failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated successfully"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return repoError(c, err, "delete user failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}
