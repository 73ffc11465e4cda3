// @title           Caption.io API
// @version         1.0
// @description     Social backend: auth, AI caption suggestions, post CRUD.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shivraj-io/Caption-io-Backend/internal/app"
	"github.com/shivraj-io/Caption-io-Backend/internal/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Sugar().Fatalw("config load failed", "error", err)
	}

	logger := newLogger(cfg)
	defer logger.Sync() //nolint:errcheck
	log := logger.Sugar()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatalw("app init failed", "error", err)
	}
	log.Infow("app ready, starting HTTP server", "addr", cfg.HTTP.Addr(), "env", cfg.App.Env)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutdown signal received, closing HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
	if err := application.Close(ctx); err != nil {
		log.Errorw("app close failed", "error", err)
	}
	log.Infow("server stopped")
}

func newLogger(cfg config.Config) *zap.Logger {
	if cfg.App.Dev() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}
