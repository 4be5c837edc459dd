package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-api/internal/config"
	"github.com/fleetops/fleet-api/internal/db"
	"github.com/fleetops/fleet-api/internal/graph"
	"github.com/fleetops/fleet-api/internal/logger"
	"github.com/fleetops/fleet-api/internal/model"
	"github.com/fleetops/fleet-api/internal/mqtt"
	"github.com/fleetops/fleet-api/internal/repository"
	"github.com/fleetops/fleet-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, "fleet-api")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	dbConn, err := db.Init(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	if err != nil {
		zlog.Fatal("failed to connect DB", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := dbConn.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := dbConn.AutoMigrate(
		&model.UserProfile{},
		&model.Robot{},
		&model.Task{},
		&model.TelemetryPoint{},
		&model.MaintenanceEvent{},
		&model.Prediction{},
		&model.AuditLog{},
	); err != nil {
		zlog.Fatal("failed to migrate DB", zap.Error(err))
	}

	mqttClient, err := mqtt.Init(cfg.MQTTBroker, cfg.MQTTEnabled, zlog)
	if err != nil {
		zlog.Fatal("failed to init MQTT", zap.Error(err))
	}

	robotRepo := repository.NewRobotRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)
	telemetryRepo := repository.NewTelemetryRepository(dbConn)
	maintenanceRepo := repository.NewMaintenanceRepository(dbConn)
	predictionRepo := repository.NewPredictionRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)
	auditRepo := repository.NewAuditRepository(dbConn)

	audit := service.NewAuditRecorder(auditRepo, zlog)

	svcs := &graph.Services{
		Robots:      service.NewRobotService(robotRepo, telemetryRepo, audit, mqttClient, zlog),
		Tasks:       service.NewTaskService(taskRepo, robotRepo, audit, zlog),
		Telemetry:   service.NewTelemetryService(telemetryRepo, robotRepo, audit, mqttClient, zlog),
		Maintenance: service.NewMaintenanceService(maintenanceRepo, robotRepo, userRepo, audit, zlog),
		Predictions: service.NewPredictionService(predictionRepo, robotRepo, audit, zlog),
		Users:       service.NewUserService(userRepo, audit),
	}

	schema, err := graph.NewSchema(svcs)
	if err != nil {
		zlog.Fatal("failed to build schema", zap.Error(err))
	}

	app := fiber.New()

	h := graph.NewHandler(schema, zlog)
	app.Post("/graphql", h.Execute)
	app.Get("/healthz", h.Health)

	addr := ":" + cfg.ServerPort
	zlog.Info("starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
