package di

import (
	"fmt"
	"time"

	"user-account-service/cmd/api/infrastructure"
	"user-account-service/internal/adapter/cache"
	"user-account-service/internal/adapter/db/postgres"
	ginhandler "user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/adapter/gin/middleware"
	"user-account-service/internal/adapter/repository/cached"
	"user-account-service/internal/config"
	"user-account-service/internal/usecase/user"
	redisclient "user-account-service/pkg/redis"
	"user-account-service/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserUC        user.Usecase
	RateLimiter   *middleware.RateLimiter
	UserHandler   *ginhandler.UserHandler
	SystemHandler *ginhandler.SystemHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize database
	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repository; Redis adds a caching decorator when enabled
	var repo user.Repository = postgres.NewUserRepoPG(db, l)

	var rdb *redisclient.Client
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)

		rateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				WindowSeconds:     cfg.RateLimit.WindowSeconds,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	// Initialize password hasher (zero cost falls back to bcrypt's default)
	hasher := security.NewBcryptHasher(0)

	// Initialize use case
	userUC := user.New(repo, hasher, l)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		RedisClient:   rdb,
		UserUC:        userUC,
		RateLimiter:   rateLimiter,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
		SystemHandler: ginhandler.NewSystemHandler(),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
