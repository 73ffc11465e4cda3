package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/shivraj-io/Caption-io-Backend/internal/ai"
	"github.com/shivraj-io/Caption-io-Backend/internal/config"
	"github.com/shivraj-io/Caption-io-Backend/internal/handlers"
	"github.com/shivraj-io/Caption-io-Backend/internal/repo"
	"github.com/shivraj-io/Caption-io-Backend/internal/storage"
)

// App owns the process-wide resources: the database client, the optional
// Redis client and the router. Everything downstream receives these by
// injection; there is no lazily initialized global connection state.
type App struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	client *mongo.Client
	db     *mongo.Database
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, log *zap.SugaredLogger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	client, err := newMongo(cfg.Mongo)
	if err != nil {
		return nil, err
	}
	a.client = client
	a.db = client.Database(cfg.Mongo.Database)

	if err := repo.EnsureIndexes(context.Background(), a.db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		a.redis = rdb
	}

	captioner, err := ai.NewGemini(context.Background(), cfg.Gemini)
	if err != nil {
		a.closeClients()
		return nil, err
	}
	store := storage.NewImageKit(cfg.ImageKit)

	a.router = newRouter(cfg, a.db, a.redis, captioner, store, log)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func (a *App) closeClients() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.client != nil {
		_ = a.client.Disconnect(context.Background())
	}
}

func newMongo(cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func newRouter(cfg config.Config, db *mongo.Database, rdb *redis.Client, captioner ai.Captioner, store storage.Storage, log *zap.SugaredLogger) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = handlers.MaxUploadBytes

	// Exact-match allow-list. Origins are never matched by substring.
	allowed := []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.CORS.FrontendURL != "" {
		allowed = append(allowed, cfg.CORS.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, cfg, db, rdb, captioner, store, log)
	return r
}
