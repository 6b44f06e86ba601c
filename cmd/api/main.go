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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homebooking/internal/config"
	"homebooking/internal/database"
	"homebooking/internal/logging"
	"homebooking/internal/middleware"
	"homebooking/internal/modules/booking"
	"homebooking/internal/modules/feed"
	"homebooking/internal/repository"
	"homebooking/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open booking store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	hub := feed.NewHub(originChecker(cfg.AllowedOrigins()), logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := setupRouter(cfg, logger, store, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Booking API listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("store", cfg.StoreDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// setupRouter mounts every route and the shared middleware. The booking
// list and the live feed hand out customer details, so they are only
// mounted when EXPOSE_BOOKING_LIST is set.
func setupRouter(cfg *config.Config, logger *zap.Logger, store booking.RowStore, hub *feed.Hub) *gin.Engine {
	var events booking.EventPublisher
	if cfg.ExposeBookingList {
		events = hub
	}
	bookingService := booking.NewService(store, events, cfg.Location(), logger)
	bookingHandler := booking.NewHandler(bookingService, booking.HandlerOptions{
		ExposeErrors: cfg.IsDevelopment(),
		ExposeList:   cfg.ExposeBookingList,
	})

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.AllowedOrigins()),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		if cfg.ExposeBookingList {
			// the websocket feed is long-lived, keep it out of the limiter
			feed.NewHandler(hub).RegisterRoutes(api)
		}

		limited := api.Group("/")
		limited.Use(middleware.RateLimit(cfg.MaxRequestsPerMin, logger))
		{
			bookingHandler.RegisterRoutes(limited)
		}
	}
	return r
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (booking.RowStore, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Connect(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		repo := repository.NewBookingRowRepository(db)
		if err := repo.EnsureHeaders(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	default:
		sc, err := cfg.Sheets()
		if err != nil {
			return nil, err
		}
		return sheets.New(ctx, sc, logger)
	}
}

// originChecker admits websocket upgrades from the CORS origins. No list, or
// "*", admits everyone.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return origin == "" || allowed[origin]
	}
}
