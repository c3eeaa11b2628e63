// Package container provides dependency injection using Uber FX.
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	aiapp "github.com/foodml/recipelab/internal/application/ai"
	collectionapp "github.com/foodml/recipelab/internal/application/collection"
	recipeapp "github.com/foodml/recipelab/internal/application/recipe"
	userapp "github.com/foodml/recipelab/internal/application/user"
	verificationapp "github.com/foodml/recipelab/internal/application/verification"
	"github.com/foodml/recipelab/internal/infrastructure/ai/anthropic"
	"github.com/foodml/recipelab/internal/infrastructure/ai/mock"
	"github.com/foodml/recipelab/internal/infrastructure/config"
	"github.com/foodml/recipelab/internal/infrastructure/http/apiserver"
	gormRepo "github.com/foodml/recipelab/internal/infrastructure/persistence/gorm"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/memory"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/foodml/recipelab/internal/infrastructure/persistence/redis"
	"github.com/foodml/recipelab/internal/infrastructure/persistence/sqlite"
	"github.com/foodml/recipelab/internal/infrastructure/security"
	"github.com/foodml/recipelab/internal/ports/outbound"
	"github.com/foodml/recipelab/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	AIModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the configured database backend
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			return postgres.SetupDatabase(cfg, log)
		case "sqlite":
			dbPath := cfg.Database.Database
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(dbPath, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}
			log.Info("connected to SQLite database",
				zap.String("path", dbPath),
				zap.Bool("in_memory", sqlite.IsInMemory(dbPath)),
			)
			return db, nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	},
)

// CacheModule provides the cache backend: Redis when enabled, an
// in-memory map otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			client, err := redisRepo.NewClient(cfg)
			if err != nil {
				return nil, err
			}
			log.Info("connected to redis",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
			return redisRepo.NewCacheRepository(client, log), nil
		}

		log.Info("using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// AIModule provides the model provider and the generator built on it
var AIModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.AIClient {
		switch cfg.AI.Provider {
		case "mock":
			log.Info("using mock AI provider")
			return mock.NewClient()
		default:
			return anthropic.NewClient(cfg, log)
		}
	},
	aiapp.NewGenerator,
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewVerificationRepository,
	gormRepo.NewCollectionRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	security.NewAuthService,
	userapp.NewService,
	recipeapp.NewService,
	verificationapp.NewService,
	collectionapp.NewService,
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule wires server start and graceful shutdown into the
// fx lifecycle.
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, server *apiserver.APIServer, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.Start(); err != nil {
						log.Error("server stopped unexpectedly", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	},
)
