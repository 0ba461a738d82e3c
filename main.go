package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juegoteca/backend/handlers"
	"github.com/juegoteca/backend/internal/config"
	"github.com/juegoteca/backend/internal/database"
	"github.com/juegoteca/backend/internal/games"
	"github.com/juegoteca/backend/internal/reviews"
	"github.com/juegoteca/backend/internal/storage"
	"github.com/juegoteca/backend/pkg/logger"
	"github.com/juegoteca/backend/pkg/metrics"
	"github.com/juegoteca/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v minio=%v env=%s", cfg.MongoDB.URI != "", cfg.MinIO.Endpoint != "", cfg.Server.Environment)

	// request bodies with fields outside the input structs are rejected
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Bienvenido a la API de Juegoteca"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races.
	// The database is the only backing store, so failure here is fatal.
	ctx := context.Background()
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	// readiness depends on the database answering pings
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"minio": cfg.MinIO.Endpoint != ""}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["mongodb"] = client.Ping(pingCtx, nil) == nil
		if !deps["mongodb"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	gameSvc := games.NewService(games.NewMongoRepository(db.Collection("juegos")))
	reviewSvc := reviews.NewService(reviews.NewMongoRepository(db.Collection("resenas")), gameSvc)

	// cover-art storage is optional; the upload endpoint appears only when configured
	var covers games.CoverStore
	if cfg.MinIO.Endpoint != "" {
		cs, err := storage.NewCoverStore(cfg.MinIO)
		if err != nil {
			logger.Warnf("cover storage disabled: %v", err)
		} else {
			covers = cs
		}
	}

	api := r.Group("/api")
	games.RegisterRoutes(api, gameSvc, reviewSvc, covers)
	reviews.RegisterRoutes(api, reviewSvc)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting juegoteca API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
