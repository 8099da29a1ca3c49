package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/booking-microservice/analytics-service/config"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/consumer"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/handler"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/analytics-service/internal/service"
	"github.com/Eursukkul/booking-microservice/analytics-service/pkg/database"
	"github.com/Eursukkul/booking-microservice/analytics-service/pkg/logger"
	"github.com/Eursukkul/booking-microservice/analytics-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const serviceName = "analytics-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	loc, err := cfg.Location()
	if err != nil {
		zl.Fatal("invalid report timezone", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		ConnMaxIdleTime: cfg.DBConnIdleLimit,
	}, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	blocks, err := repository.NewBlockSource(db, cfg.BlockSource)
	if err != nil {
		zl.Fatal("failed to build block source", zap.Error(err))
	}
	roomRepo := repository.NewRoomRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db, blocks)

	// Optional mirror of the upstream ledger
	if cfg.LedgerSyncEnabled {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, zl)
		if err != nil {
			zl.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			zl.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewLedgerConsumer(ledgerRepo, zl.Named("ledger-sync")).Start(ctx, msgs)
	}

	// Services
	occupancySvc := service.NewOccupancyService(roomRepo, ledgerRepo)
	curveSvc := service.NewBookingCurveService(roomRepo, ledgerRepo, service.WithLocation(loc))

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(zl)
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(zl))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	})

	handler.NewAnalyticsHandler(occupancySvc, curveSvc, cfg.CurveDefaultDays, cfg.CurveMaxDays).
		RegisterRoutes(e.Group("/api/v1"))

	go func() {
		zl.Info("analytics service starting",
			zap.String("port", cfg.ServerPort),
			zap.String("block_source", cfg.BlockSource),
			zap.String("report_timezone", loc.String()),
		)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
