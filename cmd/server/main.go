package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"haulage/internal/app"
	"haulage/internal/config"
	"haulage/internal/handler"
	internalRedis "haulage/internal/redis"
	"haulage/internal/repository/postgres"
	"haulage/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, reminderService := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Run the pending-completion reminder sweep on its own ticker.
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go runReminderSweep(sweepCtx, reminderService, cfg.Reminder.Interval)

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	sweepCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// reminder sweep service.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.ReminderService) {
	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	jobRepo := postgres.NewJobRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	matrixRepo := postgres.NewPriceMatrixRepository(db)
	commitStore := postgres.NewCommitStore(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	pricingService := service.NewPricingService(matrixRepo, cacheStore)
	jobService := service.NewJobService(jobRepo, cacheStore)
	mutationService := service.NewMutationService(jobRepo, commitStore, pricingService, lockStore, notificationService)
	reminderService := service.NewReminderService(jobRepo, notificationService, cfg.Reminder.Cutoff)

	// Initialize handlers.
	jobHandler := handler.NewJobHandler(jobService, mutationService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		JobHandler:     jobHandler,
		PricingHandler: pricingHandler,
		AuditHandler:   auditHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, reminderService
}

// runReminderSweep fires the pending-completion sweep until ctx is done.
func runReminderSweep(ctx context.Context, reminders *service.ReminderService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fired, err := reminders.Sweep(ctx)
			if err != nil {
				log.Printf("reminder sweep failed: %v", err)
				continue
			}
			if fired > 0 {
				log.Printf("reminder sweep fired %d pending-completion reminders", fired)
			}
		}
	}
}
