package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/kewps3/backend/internal/application/report"
	stockcardapp "github.com/kewps3/backend/internal/application/stockcard"
	"github.com/kewps3/backend/internal/infrastructure/config"
	"github.com/kewps3/backend/internal/infrastructure/event"
	"github.com/kewps3/backend/internal/infrastructure/export"
	"github.com/kewps3/backend/internal/infrastructure/logger"
	"github.com/kewps3/backend/internal/infrastructure/persistence"
	"github.com/kewps3/backend/internal/interfaces/http/handler"
	"github.com/kewps3/backend/internal/interfaces/http/middleware"
	"github.com/kewps3/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting KEW.PS-3 Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Initialize repositories
	itemRepo := persistence.NewGormStockItemRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(stockcardapp.NewLowStockHandler(log))

	// Initialize application services
	itemService := stockcardapp.NewItemService(itemRepo, txRepo, txScope)
	itemService.SetEventPublisher(eventBus)
	ledgerService := stockcardapp.NewLedgerService(itemRepo, txRepo, txScope)
	ledgerService.SetEventPublisher(eventBus)
	reportService := reportapp.NewService(itemRepo, txRepo, export.NewExcelWorkbookExporter())

	// Setup gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(),
	)

	// Register routes
	router.NewRouter(engine).
		Register(handler.NewStockItemHandler(itemService)).
		Register(handler.NewTransactionHandler(ledgerService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSystemHandler(db)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
