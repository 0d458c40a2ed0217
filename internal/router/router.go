// Package router wires HTTP routes to handlers and attaches the
// middleware chain: identity verification, role gating, response caching
// and write invalidation, in that order.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/dorm-management/internal/config"
	"github.com/iliyamo/dorm-management/internal/handler"
	"github.com/iliyamo/dorm-management/internal/middleware"
	"github.com/iliyamo/dorm-management/internal/model"
	"github.com/iliyamo/dorm-management/internal/repository"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg      config.Config
	Cache    config.CacheConfig
	Rate     config.RateLimitConfig
	Redis    *redis.Client
	Users    *repository.UserRepo
	Auth     *handler.AuthHandler
	UsersH   *handler.UserHandler
	Building *handler.BuildingHandler
	Room     *handler.RoomHandler
	Student  *handler.StudentHandler
	Contract *handler.ContractHandler
	Payment  *handler.PaymentHandler
	Request  *handler.RequestHandler
	Report   *handler.ReportHandler
}

// Register mounts every route on the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	limited := middleware.RateLimit(d.Rate, d.Redis)
	cached := middleware.ResponseCache(d.Cache, d.Redis)

	// Unauthenticated auth operations.
	auth := e.Group("/v1/auth", limited)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	// Everything below requires a verified identity.
	v1 := e.Group("/v1", limited, middleware.Authenticate(d.Cfg.JWTSecret, d.Users))
	v1.GET("/me", d.Auth.Me)
	v1.POST("/logout-all", d.Auth.LogoutAll)

	staff := []string{model.RoleStaff, model.RoleAdmin}
	admin := []string{model.RoleAdmin}
	anyone := []string{model.RoleStudent, model.RoleStaff, model.RoleAdmin}

	// User administration.
	users := v1.Group("/users", middleware.RequireRole(admin...))
	users.POST("", d.UsersH.Create)
	users.GET("", d.UsersH.List)
	users.GET("/:id", d.UsersH.GetByID)
	users.PUT("/:id", d.UsersH.Update)
	users.DELETE("/:id", d.UsersH.Delete)

	// Buildings: anyone signed in can read, admins manage. Writes drop the
	// cached building and room listings since occupancy views join both.
	bInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/buildings", "/v1/rooms")
	buildings := v1.Group("/buildings")
	buildings.GET("", d.Building.List, middleware.RequireRole(anyone...), cached)
	buildings.GET("/:id", d.Building.GetByID, middleware.RequireRole(anyone...), cached)
	buildings.POST("", d.Building.Create, middleware.RequireRole(admin...), bInval)
	buildings.PUT("/:id", d.Building.Update, middleware.RequireRole(admin...), bInval)
	buildings.DELETE("/:id", d.Building.Delete, middleware.RequireRole(admin...), bInval)

	// Rooms: read for all roles, manage for admins.
	rInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/rooms")
	rooms := v1.Group("/rooms")
	rooms.GET("", d.Room.List, middleware.RequireRole(anyone...), cached)
	rooms.GET("/:id", d.Room.GetByID, middleware.RequireRole(anyone...), cached)
	rooms.POST("", d.Room.Create, middleware.RequireRole(admin...), rInval)
	rooms.PUT("/:id", d.Room.Update, middleware.RequireRole(admin...), rInval)
	rooms.DELETE("/:id", d.Room.Delete, middleware.RequireRole(admin...), rInval)

	// Students: admins manage records, any signed-in user can look one up.
	// Room assignment changes also touch the room listings.
	sInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/students", "/v1/rooms")
	students := v1.Group("/students")
	students.GET("", d.Student.List, middleware.RequireRole(admin...), cached)
	students.GET("/:id", d.Student.GetByID, middleware.RequireRole(anyone...), cached)
	students.POST("", d.Student.Create, middleware.RequireRole(admin...), sInval)
	students.PUT("/:id", d.Student.Update, middleware.RequireRole(admin...), sInval)
	students.DELETE("/:id", d.Student.Delete, middleware.RequireRole(admin...), sInval)

	// Contracts: staff manage the lifecycle, students sign their own and
	// can read a single contract and its payment schedule.
	cInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/contracts")
	contracts := v1.Group("/contracts")
	contracts.GET("", d.Contract.List, middleware.RequireRole(staff...), cached)
	contracts.GET("/:id", d.Contract.GetByID, middleware.RequireRole(anyone...), cached)
	contracts.GET("/:id/payments", d.Contract.PaymentsByContract, middleware.RequireRole(anyone...), cached)
	contracts.POST("", d.Contract.Create, middleware.RequireRole(staff...), cInval)
	contracts.PUT("/:id", d.Contract.Update, middleware.RequireRole(staff...), cInval)
	contracts.PUT("/:id/sign", d.Contract.Sign, middleware.RequireRole(anyone...), cInval)
	contracts.DELETE("/:id", d.Contract.Delete, middleware.RequireRole(admin...), cInval)

	// Payments. Confirmation changes contract payment listings too.
	pInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/payments", "/v1/contracts")
	payments := v1.Group("/payments")
	payments.GET("", d.Payment.List, middleware.RequireRole(staff...), cached)
	payments.GET("/overdue", d.Payment.ListOverdue, middleware.RequireRole(staff...), cached)
	payments.GET("/:id", d.Payment.GetByID, middleware.RequireRole(anyone...), cached)
	payments.POST("", d.Payment.Create, middleware.RequireRole(staff...), pInval)
	payments.PUT("/:id", d.Payment.Update, middleware.RequireRole(staff...), pInval)
	payments.PUT("/:id/confirm", d.Payment.Confirm, middleware.RequireRole(staff...), pInval)
	payments.DELETE("/:id", d.Payment.Delete, middleware.RequireRole(admin...), pInval)

	// Requests: students file and amend their own, staff work the queue.
	qInval := middleware.InvalidateCache(d.Cache, d.Redis, "/v1/requests")
	requests := v1.Group("/requests")
	requests.POST("", d.Request.Create, middleware.RequireRole(anyone...), qInval)
	requests.GET("", d.Request.List, middleware.RequireRole(staff...), cached)
	requests.GET("/:id", d.Request.GetByID, middleware.RequireRole(anyone...), cached)
	requests.PUT("/:id", d.Request.Update, middleware.RequireRole(anyone...), qInval)
	requests.PUT("/:id/assign", d.Request.Assign, middleware.RequireRole(staff...), qInval)
	requests.PUT("/:id/resolve", d.Request.Resolve, middleware.RequireRole(staff...), qInval)
	requests.DELETE("/:id", d.Request.Delete, middleware.RequireRole(staff...), qInval)

	// Reporting: staff and admins only. Statistics are cheap enough to
	// compute per request, so the response cache is applied only to the
	// dashboard join.
	reports := v1.Group("/reports", middleware.RequireRole(staff...))
	reports.GET("/dashboard", d.Report.Dashboard, cached)
	reports.GET("/students", d.Report.StudentStats)
	reports.GET("/rooms", d.Report.RoomStats)
	reports.GET("/contracts", d.Report.ContractStats)
	reports.GET("/payments", d.Report.PaymentStats)
	reports.GET("/requests", d.Report.RequestStats)
	reports.GET("/:domain/excel", d.Report.Export)
}
