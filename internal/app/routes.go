package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shivraj-io/Caption-io-Backend/docs"
	"github.com/shivraj-io/Caption-io-Backend/internal/ai"
	"github.com/shivraj-io/Caption-io-Backend/internal/auth"
	"github.com/shivraj-io/Caption-io-Backend/internal/cache"
	"github.com/shivraj-io/Caption-io-Backend/internal/config"
	"github.com/shivraj-io/Caption-io-Backend/internal/handlers"
	"github.com/shivraj-io/Caption-io-Backend/internal/repo"
	"github.com/shivraj-io/Caption-io-Backend/internal/service"
	"github.com/shivraj-io/Caption-io-Backend/internal/storage"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *mongo.Database, rdb *redis.Client, captioner ai.Captioner, store storage.Storage, log *zap.SugaredLogger) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")
	detail := cfg.App.Dev()

	tokens := auth.NewIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL.Duration())
	userRepo := repo.NewMongoUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(userSvc, tokens, log, detail)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAuth(tokens, userRepo))
	postRepo := repo.NewMongoPostRepo(db)
	// Declared as the interface: a typed nil *PostCache must never reach the
	// service's nil check.
	var postCache service.ListCache
	if rdb != nil {
		postCache = cache.NewPostCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	postSvc := service.NewPostService(postRepo, store, captioner, postCache, log)
	postHandler := handlers.NewPostHandler(postSvc, log, detail)
	registerPostRoutes(protected, postHandler)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "API is running",
			"status":  "healthy",
			"service": "Caption.io API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"message": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
}

func registerPostRoutes(api *gin.RouterGroup, h *handlers.PostHandler) {
	api.POST("/posts/generate-caption", h.GenerateCaption)
	api.POST("/posts/create", h.Create)
	api.GET("/posts", h.List)
	api.DELETE("/posts/:id", h.Delete)
}
