// File: concierge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge/config"
	"concierge/cron"
	"concierge/database"
	venueRepo "concierge/database/repository/venue"
	"concierge/handlers"
	"concierge/middleware"
	"concierge/models"
	"concierge/routes"
	"concierge/services/booking"
	"concierge/services/conversation"
	"concierge/services/decision"
	"concierge/services/venue"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Venue catalogue.
	mock := venue.NewMockGenerator(cfg.MockSeed, cfg.MockVenueCount).Generate()
	var (
		venues      venue.Provider
		mongoClient *mongo.Client
	)
	switch cfg.VenueSource {
	case "mongo":
		if err := database.InitDB(); err != nil {
			logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
		}
		mongoClient = database.MongoClient
		repo, err := venueRepo.NewMongoVenueRepo(database.Database())
		if err != nil {
			logger.Sugar().Fatalf("main: failed to prepare venue collection: %v", err)
		}
		seedVenues(rootCtx, repo, mock, logger)
		venues = repo
	default:
		venues = venue.NewMemoryProvider(mock)
		logger.Info("using in-memory venue catalogue", zap.Int("venues", len(mock)))
	}

	// Conversation context.
	var (
		store       conversation.Store = conversation.NewMemoryStore()
		redisClient *redis.Client
	)
	if cfg.ContextStoreOn {
		if err := utils.InitContextCache(); err != nil {
			logger.Warn("conversation context falls back to memory", zap.Error(err))
		} else {
			redisClient = utils.GetContextCacheClient()
			store = conversation.NewRedisContextStore(redisClient, time.Duration(cfg.ContextTTLMinutes)*time.Minute)
		}
	}

	// Booking orchestration.
	latency := time.Duration(cfg.SimulatedLatencyMs) * time.Millisecond
	opts := booking.SimulatedOptions(cfg.MockSeed, cfg.SimulatedSuccessRate, latency)
	opts.Venues = venues
	opts.Logger = logger.Named("booking")
	opts.BatchPause = time.Duration(cfg.BatchPauseMs) * time.Millisecond

	var (
		queue  *asynq.Client
		worker *asynq.Server
	)
	if cfg.RemindersEnabled {
		queue = asynq.NewClient(cron.RedisOpt())
		worker = cron.InitReminderWorker(logger.Named("reminders"))
		opts.Notifier = booking.NewReminderNotifier(queue, time.Duration(cfg.ReminderLeadHours)*time.Hour, logger.Named("reminders"))
	}
	orchestrator := booking.NewOrchestrator(opts)
	decisionCfg, err := decision.LoadConfig(viper.GetViper(), "decision")
	if err != nil {
		logger.Sugar().Fatalf("main: invalid decision config: %v", err)
	}
	engine := decision.NewEngine(decisionCfg)

	utils.StartHealthMonitor(rootCtx, 30*time.Second, redisClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	decisionHandler := handlers.NewDecisionHandler(engine, store, logger.Named("decision"))
	bookingHandler := handlers.NewBookingHandler(orchestrator, logger.Named("booking"))
	availabilityHandler := handlers.NewAvailabilityHandler(orchestrator, venues, logger.Named("availability"))
	venueHandler := handlers.NewVenueHandler(venues)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Decide:            decisionHandler.Decide,
		Book:              bookingHandler.Book,
		BookBatch:         bookingHandler.BookBatch,
		CheckAvailability: availabilityHandler.CheckAvailability,
		SearchVenues:      venueHandler.SearchVenues,
		Health:            handlers.HealthHandler,
		Metrics:           handlers.MetricsHandler(),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := database.Close(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// seedVenues loads the generated catalogue into an empty collection.
func seedVenues(ctx context.Context, repo venueRepo.VenueRepository, seed []models.Venue, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("could not count venues; skipping seed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("venue collection already populated", zap.Int64("venues", n))
		return
	}
	written, err := repo.UpsertMany(ctx, seed)
	if err != nil {
		logger.Warn("venue seed failed", zap.Error(err))
		return
	}
	logger.Info("seeded venue collection", zap.Int("venues", written))
}
