package app

import (
	"context"
	"fmt"
	"log"

	"nexustalent/config"
	"nexustalent/internal/api/handlers"
	"nexustalent/internal/database"
	"nexustalent/internal/notify"
	"nexustalent/internal/services"
	"nexustalent/internal/storage"
	"nexustalent/internal/storage/drafts"
	"nexustalent/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client // nil when drafts live in memory
	Validator   *validator.Validate
	Hub         *notify.Hub
	Pipelines   *services.PipelineViews
}

// New connects to the stores named in cfg and wires the pipeline service on top of them.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	dbPool, err := database.NewConnectionPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var (
		redisClient *redis.Client
		draftStore  storage.DraftStore
	)
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		draftStore = drafts.NewRedisStore(redisClient)
	} else {
		log.Println("Redis disabled, keeping notes drafts in memory")
		draftStore = drafts.NewMemoryStore()
	}

	hub := notify.NewHub(cfg.CORS.AllowedOrigins)
	pipelines := services.NewPipelineService(
		postgres.NewApplicationRepo(dbPool),
		postgres.NewJobPostingRepo(dbPool),
		draftStore,
		hub,
		cfg.Pipeline,
	)

	return &Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   handlers.NewValidator(),
		Hub:         hub,
		Pipelines:   pipelines,
	}, nil
}

// HealthChecks returns the dependency probes reported by /health.
func (a *Application) HealthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return a.DBPool.Ping(ctx) },
	}
	if a.RedisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return a.RedisClient.Ping(ctx).Err() }
	}
	return checks
}

// Close releases the store connections.
func (a *Application) Close() {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	a.DBPool.Close()
}
