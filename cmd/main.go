package main

import (
	"context"
	"net/http"
	"time"

	"lostfound-service/internal/handler"
	"lostfound-service/internal/lostfound"
	mid "lostfound-service/internal/middleware"
	"lostfound-service/pkg/config"
	"lostfound-service/pkg/database"
	"lostfound-service/pkg/jwtutil"
	"lostfound-service/pkg/logger"
	"lostfound-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting lostfound-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize the lost & found engine
	engine := lostfound.NewService(database.GetDB(), log, appConfig.LostFound)
	handler.Init(engine)

	// Start the disposal scheduler
	go runDisposalScheduler(engine, log, appConfig.LostFound.DisposalSweepEvery)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Lost & Found API routes - auth middleware validates JWT and extracts tenant ID
	api := e.Group("/api/lostfound", mid.AuthMiddleware)

	api.GET("/stats", handler.GetStats)

	api.GET("/lost-items", handler.ListLostItems)
	api.POST("/lost-items", handler.ReportLostItem)
	api.GET("/lost-items/:id", handler.GetLostItem)
	api.POST("/lost-items/:id/close", handler.CloseLostItem)

	api.GET("/found-items", handler.ListFoundItems)
	api.POST("/found-items", handler.RegisterFoundItem)
	api.GET("/found-items/urgent", handler.ListUrgentFoundItems)
	api.GET("/found-items/:id", handler.GetFoundItem)
	api.POST("/found-items/:id/dispose", handler.DisposeFoundItem)

	api.GET("/matches", handler.ListMatches)
	api.GET("/matches/pending", handler.ListPendingMatches)
	api.POST("/matches/find", handler.FindMatches)
	api.POST("/matches/:id/verify", handler.VerifyMatch)
	api.POST("/matches/:id/claim", handler.ClaimMatch)
	api.POST("/matches/:id/guest-confirm", handler.GuestConfirmMatch)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// runDisposalScheduler periodically sweeps found items past their retention
// deadline. Sweep failures are logged and retried on the next tick.
func runDisposalScheduler(engine *lostfound.Service, log *zap.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	log.Info("Disposal scheduler started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		disposed, err := engine.SweepDisposals(ctx)
		cancel()

		if disposed > 0 {
			prometheus.ItemsDisposedCounter.Add(float64(disposed))
		}
		if err != nil {
			prometheus.DisposalSweepErrCounter.Inc()
			log.Error("Disposal sweep finished with errors",
				zap.Int("disposed", disposed), zap.Error(err))
			continue
		}
		log.Info("Disposal sweep completed", zap.Int("disposed", disposed))
	}
}
