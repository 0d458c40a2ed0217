package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/dorm-management/internal/config"
	"github.com/iliyamo/dorm-management/internal/database"
	"github.com/iliyamo/dorm-management/internal/handler"
	"github.com/iliyamo/dorm-management/internal/queue"
	"github.com/iliyamo/dorm-management/internal/report"
	"github.com/iliyamo/dorm-management/internal/repository"
	"github.com/iliyamo/dorm-management/internal/router"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	db, err := database.Open(database.Options{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpen,
		MaxIdleConns:    cfg.DBMaxIdle,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// nil when Redis is unreachable; cache and limiter then pass through.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	buildings := repository.NewBuildingRepo(db)
	rooms := repository.NewRoomRepo(db)
	students := repository.NewStudentRepo(db)
	contracts := repository.NewContractRepo(db)
	payments := repository.NewPaymentRepo(db)
	requests := repository.NewRequestRepo(db)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, router.Deps{
		Cfg:      cfg,
		Cache:    cacheCfg,
		Rate:     rateCfg,
		Redis:    rdb,
		Users:    users,
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		UsersH:   handler.NewUserHandler(cfg, users),
		Building: handler.NewBuildingHandler(buildings),
		Room:     handler.NewRoomHandler(rooms),
		Student:  handler.NewStudentHandler(students),
		Contract: handler.NewContractHandler(contracts, payments),
		Payment:  handler.NewPaymentHandler(payments, students),
		Request:  handler.NewRequestHandler(requests, students),
		Report:   handler.NewReportHandler(report.NewStats(db)),
	})

	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notify-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
