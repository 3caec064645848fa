// Package app wires repositories, services and handlers into a runnable API.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fuelprice/internal/config"
	"fuelprice/internal/database"
	"fuelprice/internal/handler"
	"fuelprice/internal/mailer"
	"fuelprice/internal/middleware"
	"fuelprice/internal/observability/metrics"
	"fuelprice/internal/ratefeed"
	"fuelprice/internal/repository"
	"fuelprice/internal/service"
	"fuelprice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Services groups every service the API and CLI use.
type Services struct {
	Auth       service.AuthService
	Catalog    service.CatalogService
	TaxRates   service.TaxRateService
	Operators  service.OperatorService
	RackPrices service.RackPriceService
	EmailLogs  service.EmailLogService
	Dashboard  service.DashboardService
	Audit      service.AuditService
	Ingest     service.IngestService
	Daily      service.DailyPriceService
}

type App struct {
	Config   config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Hub      *websocket.Hub
	Auth     *middleware.Auth
	Services Services
}

// Open connects to the database described by cfg.
func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg.Database.DSN(), log)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// New builds the dependency graph (Repository -> Service -> Handler).
func New(cfg config.Config, log *zap.Logger, db *gorm.DB) *App {
	metrics.Init()

	hub := websocket.NewHub(log)
	secret := []byte(cfg.Auth.JWTSecret)

	txManager := repository.NewTransactionManager(db)
	provinceRepo := repository.NewProvinceRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	fuelTypeRepo := repository.NewFuelTypeRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	rackPriceRepo := repository.NewRackPriceRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	feed := ratefeed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout)
	sender := mailer.NewSender(cfg.SMTP.Mailer())
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP_HOST not set, price emails will be logged as errors")
	}

	return &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		Hub:    hub,
		Auth:   middleware.NewAuth(secret, cfg.Auth.TokenTTL, cfg.Server.GinMode == gin.ReleaseMode),
		Services: Services{
			Auth:       service.NewAuthService(userRepo, secret, cfg.Auth.TokenTTL),
			Catalog:    service.NewCatalogService(provinceRepo, locationRepo, fuelTypeRepo, auditRepo, txManager),
			TaxRates:   service.NewTaxRateService(taxRateRepo, provinceRepo, fuelTypeRepo, auditRepo, txManager),
			Operators:  service.NewOperatorService(operatorRepo, locationRepo, auditRepo, txManager),
			RackPrices: service.NewRackPriceService(rackPriceRepo),
			EmailLogs:  service.NewEmailLogService(emailLogRepo),
			Dashboard:  service.NewDashboardService(operatorRepo, rackPriceRepo, emailLogRepo, nil),
			Audit:      service.NewAuditService(auditRepo),
			Ingest:     service.NewIngestService(feed, locationRepo, fuelTypeRepo, rackPriceRepo, hub, nil, log),
			Daily: service.NewDailyPriceService(service.DailyPriceDeps{
				RackPrices: rackPriceRepo,
				Operators:  operatorRepo,
				TaxRates:   taxRateRepo,
				EmailLogs:  emailLogRepo,
				Sender:     sender,
				From:       cfg.SMTP.From,
				Events:     hub,
				Log:        log,
			}),
		},
	}
}

// Router builds the gin engine with every route registered.
func (a *App) Router() *gin.Engine {
	gin.SetMode(a.Config.Server.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(a.Log), middleware.RequestLogger(a.Log.Named("http")))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.Config.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(a.Hub, c, a.Auth)
	})

	s := a.Services
	handler.NewAuthHandler(s.Auth, a.Auth).RegisterRoutes(router.Group(""))
	handler.NewCatalogHandler(s.Catalog, a.Auth).RegisterRoutes(router.Group(""))
	handler.NewTaxRateHandler(s.TaxRates, a.Auth).RegisterRoutes(router.Group(""))
	handler.NewOperatorHandler(s.Operators, a.Auth).RegisterRoutes(router.Group(""))
	handler.NewReportHandler(s.RackPrices, s.EmailLogs, s.Dashboard, s.Audit, a.Auth).RegisterRoutes(router.Group(""))
	handler.NewJobHandler(s.Ingest, s.Daily, a.Auth).RegisterRoutes(router.Group(""))

	return router
}

// Serve runs the HTTP server and the websocket hub until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.Hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the database pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
