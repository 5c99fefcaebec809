package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinova/intake/internal/api/router"
	"github.com/clinova/intake/internal/bookings"
	appconfig "github.com/clinova/intake/internal/config"
	"github.com/clinova/intake/internal/conversation"
	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/internal/observability/metrics"
	"github.com/clinova/intake/internal/symptoms"
	"github.com/clinova/intake/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: Mongo when reachable, in-memory demo mode otherwise.
	var (
		repo      bookings.Repository
		directory doctors.Directory
	)
	mongoClient, err := connectMongo(ctx, cfg)
	if err != nil {
		logger.Warn("mongodb unavailable, running in demo mode", "error", err)
		repo = bookings.NewMemoryRepository()
		directory = doctors.NewMemoryDirectory()
	} else {
		db := mongoClient.Database(cfg.MongoDatabase)
		repo = bookings.NewMongoRepository(db)
		directory = doctors.NewMongoDirectory(db.Collection("doctors"), logger.WithComponent("doctors"))
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("mongodb disconnect failed", "error", err)
			}
		}()
	}

	// Sessions: Redis when configured, process-local otherwise.
	var sessions conversation.SessionStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, using in-memory sessions", "error", err)
			sessions = conversation.NewMemorySessionStore()
		} else {
			sessions = conversation.NewRedisSessionStore(redisClient, cfg.SessionTTL)
		}
	} else {
		sessions = conversation.NewMemorySessionStore()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	convMetrics := metrics.NewConversationMetrics(reg)

	convLogger := logger.WithComponent("conversation")
	analyzer := symptoms.New(logger.WithComponent("symptoms"))
	booking := bookings.NewService(repo, directory, logger.WithComponent("bookings"))
	engine := conversation.NewEngine(sessions, analyzer, booking, directory, convMetrics, convLogger)
	handler := conversation.NewHandler(engine, booking, directory, convLogger, cfg.DefaultWorkStart, cfg.DefaultWorkEnd)

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: handler,
		MetricsHandler:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		ChatRateLimit:       float64(cfg.ChatRatePerSec),
		ChatRateBurst:       cfg.ChatRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// connectMongo dials MongoDB and verifies the connection with a ping so
// startup can fall back to demo mode when no database is reachable.
func connectMongo(ctx context.Context, cfg *appconfig.Config) (*mongo.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
