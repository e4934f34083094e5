package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phillip/lbd-events-go/config"
	"github.com/phillip/lbd-events-go/logger"
	"github.com/phillip/lbd-events-go/middleware"
	"github.com/phillip/lbd-events-go/repositories"
	"github.com/phillip/lbd-events-go/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.JWTSecret == "" {
		logr.Fatal("JWT_SECRET is not configured")
	}

	client, err := config.ConnectMongo(cfg.MongoURI)
	if err != nil {
		logr.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	cfg.MongoClient = client
	defer client.Disconnect(context.Background()) //nolint:errcheck

	db := client.Database(cfg.DBName)
	events := repositories.NewEventRepository(db)
	admins := repositories.NewAdminRepository(db)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(logr))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders:    []string{"ETag", "Last-Modified", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(r, cfg, events, admins, logr)

	logr.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
