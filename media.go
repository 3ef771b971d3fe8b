//go:build !cli
// +build !cli

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"productmedia.GO/api"
	_ "productmedia.GO/api/media"
	"productmedia.GO/config"
	"productmedia.GO/core/auth"
	"productmedia.GO/core/logging"
	mediaService "productmedia.GO/service/media"
)

var authSkipPaths = []string{"/health"}

func main() {
	config.LoadEnv()
	cfg, err := config.LoadMediaConfig()
	if err != nil {
		panic(err)
	}
	logging.Initialize(cfg.Env, cfg.LogLevel)
	defer logging.Sync()
	log := logging.Named("server")

	rdb := config.NewRedis()
	if rdb != nil && !config.PingRedis(context.Background(), rdb) {
		log.Warn("Redis configured but not reachable, image mapping and shared registry disabled")
		rdb = nil
	}

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("failed to connect to DB", zap.Error(err))
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatal("failed to get DB instance", zap.Error(err))
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("Database connection successful.")

	runner, err := mediaService.NewRunner(db, rdb, cfg, logging.Named("media"))
	if err != nil {
		log.Fatal("media runner", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration.Milliseconds(), 10))
			log.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", duration))
			return err
		}
	})

	api.ApplyRoutes(e)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db, authSkipPaths))
	api.ApplyModules(apiGroup, runner)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	go func() {
		log.Info("Server running", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down media server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if serials, err := runner.Serials(ctx); err == nil && len(serials) > 0 {
		log.Info("run statuses left registered", zap.Strings("serials", serials))
	}
}
