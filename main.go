package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/postdigester/donation-backend/handlers"
	"github.com/postdigester/donation-backend/internal/comments"
	"github.com/postdigester/donation-backend/internal/config"
	"github.com/postdigester/donation-backend/internal/database"
	donationhandler "github.com/postdigester/donation-backend/internal/donation/handler"
	donationservice "github.com/postdigester/donation-backend/internal/donation/service"
	"github.com/postdigester/donation-backend/internal/donor"
	"github.com/postdigester/donation-backend/internal/records"
	"github.com/postdigester/donation-backend/internal/storage"
	"github.com/postdigester/donation-backend/internal/tokens"
	"github.com/postdigester/donation-backend/internal/users"
	"github.com/postdigester/donation-backend/pkg/logger"
	"github.com/postdigester/donation-backend/pkg/metrics"
	"github.com/postdigester/donation-backend/pkg/middleware"
)

const mongoConnectAttempts = 5

func main() {
	// LOG_LEVEL is read again from config below; this covers config errors
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	if cfg.Server.Environment == "development" {
		logger.UseConsole()
	}
	logger.Infof("config loaded: mongo_db=%s redis=%v minio=%v rate_limit=%v", cfg.MongoDB.Database, cfg.Redis.Host != "", cfg.MinIO.Enabled(), cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	logger.Infof("connected to MongoDB database %s", cfg.MongoDB.Database)
	cols := database.NewCollections(client.Database(cfg.MongoDB.Database))

	userRepo := users.NewMongoUserRepository(cols.Users)
	donorRepo := donor.NewMongoRepository(cols.Donors)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.Warnf("%v", err)
	}
	if err := donorRepo.EnsureIndexes(ctx); err != nil {
		logger.Warnf("%v", err)
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.CORS.AllowedOrigins))

	// optional global rate limiter; it runs before any authentication, so it keys on client IP
	var userLimit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		r.Use(newRateLimiter(cfg, rdb))
		// authenticated routes also get a per-user bucket
		userLimit = append(userLimit, newRateLimiter(cfg, rdb))
	}

	deps := []handlers.Dependency{{
		Name: "mongo",
		Ping: func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}}
	if rdb != nil {
		deps = append(deps, handlers.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	handlers.RegisterStatus(r, deps...)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	userSvc := users.NewService(userRepo)
	auth := handlers.NewAuthHandler(cfg, userSvc)
	auth.Register(api)
	auth.RegisterProfile(api, tokens.NewVerifier(cfg.JWT.Secret), userLimit...)

	donationhandler.RegisterDonationRoutes(api, donationservice.NewMongoService(cols.Donations))
	handlers.NewDonorHandler(donor.NewService(donorRepo)).Register(api)
	handlers.NewCommunityHandler(
		comments.NewService(userSvc, records.NewMongoStore(cols.Comments)),
		records.NewMongoStore(cols.Testimonials),
		records.NewMongoStore(cols.Volunteers),
	).Register(api)

	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("image uploads disabled: %v", err)
		} else {
			handlers.NewUploadHandler(store).Register(api)
		}
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Server is running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdown(srv, client, rdb, cfg.Server.ShutdownTimeout)
}

func newRateLimiter(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if cfg.RateLimit.UseRedis && rdb != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
	}
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func shutdown(srv *http.Server, client *mongo.Client, rdb *redis.Client, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Errorf("redis close: %v", err)
		}
	}
}
