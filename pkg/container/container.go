package container

import (
	"context"
	"fmt"

	"gameportal-backend/internal/config"
	analyticsHandler "gameportal-backend/internal/domains/analytics/handler"
	analyticsRepository "gameportal-backend/internal/domains/analytics/repository"
	analyticsService "gameportal-backend/internal/domains/analytics/service"
	categoryHandler "gameportal-backend/internal/domains/category/handler"
	categoryRepository "gameportal-backend/internal/domains/category/repository"
	categoryService "gameportal-backend/internal/domains/category/service"
	gameHandler "gameportal-backend/internal/domains/game/handler"
	gameRepository "gameportal-backend/internal/domains/game/repository"
	gameService "gameportal-backend/internal/domains/game/service"
	tagHandler "gameportal-backend/internal/domains/tag/handler"
	tagRepository "gameportal-backend/internal/domains/tag/repository"
	tagService "gameportal-backend/internal/domains/tag/service"
	userHandler "gameportal-backend/internal/domains/user/handler"
	userRepository "gameportal-backend/internal/domains/user/repository"
	userService "gameportal-backend/internal/domains/user/service"
	"gameportal-backend/internal/infrastructure/cache"
	"gameportal-backend/internal/infrastructure/database"
	"gameportal-backend/pkg/jwt"

	"github.com/rs/zerolog/log"
)

// Container wires every layer together: infrastructure, repositories,
// services and handlers. One instance lives for the whole process.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *cache.RedisCache

	JWTManager *jwt.Manager

	GameHandler       *gameHandler.GameHandler
	BulkImportHandler *gameHandler.BulkImportHandler
	CategoryHandler   *categoryHandler.CategoryHandler
	TagHandler        *tagHandler.TagHandler
	UserHandler       *userHandler.UserHandler
	AnalyticsHandler  *analyticsHandler.AnalyticsHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Infrastructure
	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Repositories
	gameRepo := gameRepository.NewPostgresRepository(c.DB.Pool)
	categoryRepo := categoryRepository.NewPostgresRepository(c.DB.Pool)
	tagRepo := tagRepository.NewPostgresRepository(c.DB.Pool)
	userRepo := userRepository.NewPostgresRepository(c.DB.Pool)
	analyticsRepo := analyticsRepository.NewPostgresRepository(c.DB.Pool)

	// Services
	games := gameService.NewGameService(gameRepo, tagRepo, c.Cache)
	thumbnails := gameService.NewThumbnailResolver(cfg.Upload.Dir, nil)
	bulkImport := gameService.NewBulkImportService(gameRepo, categoryRepo, tagRepo, c.Cache, thumbnails)
	categories := categoryService.NewCategoryService(categoryRepo)
	tags := tagService.NewTagService(tagRepo)
	users := userService.NewUserService(userRepo, c.JWTManager)
	analytics := analyticsService.NewAnalyticsService(analyticsRepo, gameRepo, c.Cache)

	// Handlers
	c.GameHandler = gameHandler.NewGameHandler(games)
	c.BulkImportHandler = gameHandler.NewBulkImportHandler(bulkImport)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(categories)
	c.TagHandler = tagHandler.NewTagHandler(tags)
	c.UserHandler = userHandler.NewUserHandler(users)
	c.AnalyticsHandler = analyticsHandler.NewAnalyticsHandler(analytics)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup closes infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis connection")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleaned up")
}
