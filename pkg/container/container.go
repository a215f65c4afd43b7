package container

import (
	"context"
	"fmt"
	"time"

	"memoir-backend/internal/config"
	infraCache "memoir-backend/internal/infrastructure/cache"
	"memoir-backend/internal/infrastructure/database"
	"memoir-backend/internal/infrastructure/queue"
	"memoir-backend/internal/infrastructure/storage"
	"memoir-backend/pkg/cache"
	"memoir-backend/pkg/jwt"
	"memoir-backend/pkg/logger"

	biographyHandler "memoir-backend/internal/domains/biography/handler"
	biographyRepo "memoir-backend/internal/domains/biography/repository"
	biographyService "memoir-backend/internal/domains/biography/service"
	complianceHandler "memoir-backend/internal/domains/compliance/handler"
	complianceRepo "memoir-backend/internal/domains/compliance/repository"
	complianceService "memoir-backend/internal/domains/compliance/service"
	mediaHandler "memoir-backend/internal/domains/media/handler"
	mediaModel "memoir-backend/internal/domains/media/model"
	mediaRepo "memoir-backend/internal/domains/media/repository"
	mediaService "memoir-backend/internal/domains/media/service"
	userHandler "memoir-backend/internal/domains/user/handler"
	userRepo "memoir-backend/internal/domains/user/repository"
	userService "memoir-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; a failed build means the process exits.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	QueueClient *queue.Client
	JWTManager  *jwt.Manager

	// Repositories
	UserRepo      userRepo.Repository
	BiographyRepo biographyRepo.Repository
	MediaRepo     mediaRepo.Repository

	// Services
	UserService       userService.Service
	BiographyService  biographyService.Service
	MediaService      mediaService.Service
	ComplianceService complianceService.Service

	// Handlers
	UserHandler       *userHandler.UserHandler
	BiographyHandler  *biographyHandler.BiographyHandler
	MediaHandler      *mediaHandler.MediaHandler
	ComplianceHandler *complianceHandler.ComplianceHandler
}

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initDomains()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initInfrastructure() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.Storage = minioStorage

	c.QueueClient = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessTokenExpiry,
		c.Config.JWT.RefreshTokenExpiry,
	)

	return nil
}

func (c *Container) initDomains() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.BiographyRepo = biographyRepo.NewPostgresRepository(pool)
	c.MediaRepo = mediaRepo.NewPostgresRepository(pool)

	consents := complianceRepo.NewConsentRepository(pool)
	exports := complianceRepo.NewExportRepository(pool)
	restrictions := complianceRepo.NewRestrictionRepository(pool)
	deletions := complianceRepo.NewDeletionRepository(pool)
	breaches := complianceRepo.NewBreachRepository(pool)
	activity := complianceRepo.NewActivityRepository(pool)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	c.ComplianceService = complianceService.NewComplianceService(
		consents, exports, restrictions, deletions, breaches, activity,
		c.BiographyRepo, c.MediaRepo, c.UserRepo,
		pool, c.Storage, c.QueueClient,
		c.Config.Jobs,
	)

	// The compliance service doubles as the restriction checker for content
	// mutations.
	c.BiographyService = biographyService.NewBiographyService(
		c.BiographyRepo, c.MediaRepo, pool, c.QueueClient, c.Cache, c.ComplianceService,
	)

	processor := storage.NewImageProcessor(mediaModel.MaxUploadSize)
	c.MediaService = mediaService.NewMediaService(
		c.MediaRepo, c.BiographyRepo, c.Storage, processor, c.QueueClient,
	)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BiographyHandler = biographyHandler.NewBiographyHandler(c.BiographyService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
	c.ComplianceHandler = complianceHandler.NewComplianceHandler(c.ComplianceService)
}

// Cleanup releases infrastructure connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
