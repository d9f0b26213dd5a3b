package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"portfolioCMS/internal/config"
	"portfolioCMS/internal/database"
	handlers "portfolioCMS/internal/handler"
	"portfolioCMS/internal/metrics"
	"portfolioCMS/internal/profile"
	"portfolioCMS/internal/repository"
	"portfolioCMS/internal/router"
	"portfolioCMS/internal/schema"
	"portfolioCMS/internal/service"
	"portfolioCMS/internal/storage"
)

// App holds the wired dependencies of one process.
type App struct {
	DB        *database.DB
	Redis     *redis.Client
	Storage   *storage.MinIOClient
	Registry  *schema.Registry
	Repo      *repository.Repository
	Service   *service.Service
	Routes    *router.RouteTable
	Activator *service.Activator
	log       *logrus.Logger
}

func newRedisClient(cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	a := &App{DB: db, log: log}

	if cfg.ProfileStore == profile.BackendRedis {
		a.Redis, err = newRedisClient(cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	// connection MinIO
	a.Storage, err = storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init minio: %w", err)
	}

	profiles, err := profile.NewStore(cfg.ProfileStore, db.DB, a.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Registry = schema.NewRegistry()
	if err := schema.DeclareDefaults(a.Registry); err != nil {
		a.Close()
		return nil, fmt.Errorf("declare schema: %w", err)
	}

	a.Repo = repository.NewRepository(db.DB)
	a.Service = service.NewService(service.Deps{
		Repo:     a.Repo,
		Profiles: profiles,
		Storage:  a.Storage,
		Registry: a.Registry,
		Config:   cfg,
		Log:      log,
	})

	h := handlers.NewHandlers(a.Service, a.Registry, db, cfg, log)
	a.Routes = router.NewRouteTable(a.Registry, h, metrics.New(), cfg.JWTSecretKey, log)
	a.Activator = service.NewActivator(a.Registry, a.Routes, a.Storage, cfg.SchemaExportDir, log)

	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.log.WithError(err).Warn("closing redis")
		}
	}
	if a.DB != nil {
		if err := a.DB.CloseDB(); err != nil {
			a.log.WithError(err).Warn("closing database")
		}
	}
}
