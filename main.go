package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	bidding "auction-marketplace/internal/biddingService"
	"auction-marketplace/internal/cache"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/database"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/seed"
	"auction-marketplace/internal/server"
	"auction-marketplace/internal/storage"
	users "auction-marketplace/internal/userService"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
	}
	repo := repository.NewGormRepo(db)

	if cfg.SeedOnStart {
		_, err := seed.Run(ctx, repo, seed.Options{
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
			FakeAuctions:  cfg.FakeAuctions,
			FakerSeed:     time.Now().UnixNano(),
		}, time.Now().UTC())
		if err != nil {
			utils.Fatal("failed to seed database", map[string]any{"error": err.Error()})
		}
	}

	store := newCacheStore(ctx, cfg)
	images := newImageStore(ctx, cfg)

	services := server.Services{
		DB:       db,
		Bidding:  bidding.NewBiddingService(repo),
		Auctions: auction.NewAuctionService(repo, store, images),
		Auth:     auth.NewAuthService(repo, cfg.JWTSecret, cfg.TokenTTL, cache.NewTokenBlacklist(store)),
		Users:    users.NewUserService(repo),
	}
	router := server.SetupRouter(services, cfg.MaxUploadSize)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	utils.Info("server stopped", nil)
}

// newCacheStore uses Redis when REDIS_URL is set and reachable, memory otherwise
func newCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.RedisURL == "" {
		utils.Info("REDIS_URL not set, using in-memory cache", nil)
		return cache.NewMemoryStore()
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		utils.Warn("redis unavailable, using in-memory cache", map[string]any{"error": err.Error()})
		return cache.NewMemoryStore()
	}
	return cache.NewRedisStore(client)
}

// newImageStore returns nil when MinIO is not configured; uploads then answer 503
func newImageStore(ctx context.Context, cfg *config.Config) storage.ImageStore {
	if cfg.MinIOEndpoint == "" {
		utils.Info("MINIO_ENDPOINT not set, image uploads disabled", nil)
		return nil
	}
	client, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		utils.Warn("minio unavailable, image uploads disabled", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}
