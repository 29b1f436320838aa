package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveydash/internal/cache"
	"surveydash/internal/config"
	"surveydash/internal/repository"
)

// App holds the storage dependencies shared by the server and the seeder
type App struct {
	SurveyRepo   repository.SurveyRepo
	ResponseRepo repository.ResponseRepo
	ReportCache  cache.ReportCache

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// Open connects the configured stores. Redis is optional: with no address
// the report cache runs in process only.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	switch cfg.Store {
	case "memory":
		store := repository.NewMemoryStore()
		a.SurveyRepo = store.Surveys()
		a.ResponseRepo = store.Responses()
		slog.WarnContext(ctx, "using in-memory store, data is lost on exit")
	default:
		db, err := a.connectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.SurveyRepo = repository.NewSurveyRepo(ctx, db)
		a.ResponseRepo = repository.NewResponseRepo(ctx, db)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			a.Close(ctx)
			rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		a.redisClient = rdb
		slog.InfoContext(ctx, "connected to redis", "addr", cfg.RedisAddr)
	}
	a.ReportCache = cache.NewReportCache(a.redisClient, cfg.ReportCacheTTL)

	return a, nil
}

func (a *App) connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	a.mongoClient = client
	slog.InfoContext(ctx, "connected to mongodb", "database", cfg.MongoDatabase)
	return client.Database(cfg.MongoDatabase), nil
}

// Close releases the store connections
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.WarnContext(ctx, "closing redis", "error", err)
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			slog.WarnContext(ctx, "disconnecting mongodb", "error", err)
		}
	}
}
