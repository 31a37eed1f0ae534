package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafvai/DietShopper/internal/app/config"
	"github.com/rafvai/DietShopper/internal/app/dsn"
	"github.com/rafvai/DietShopper/internal/app/handler"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"
	"github.com/rafvai/DietShopper/internal/app/pkg/storage"
	"github.com/rafvai/DietShopper/internal/app/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("application start")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := repository.New(dsn.Dialector(), cfg.Debug)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer repo.Close()

	sessions, closeSessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}
	defer closeSessions()

	var images handler.ImageStore
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	minioClient, err := storage.NewMinIO(ctx, cfg.MinIOHost+":"+cfg.MinIOPort, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
	cancel()
	if err != nil {
		log.WithError(err).Warn("minio unavailable, food image uploads disabled")
	} else {
		images = minioClient
	}

	h := handler.NewHandler(repo, cfg, auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL), sessions, images)

	router := gin.New()
	h.RegisterMiddleware(router)
	h.RegisterStatic(router)
	h.RegisterHandler(router)
	h.RegisterAPI(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
	log.Info("application terminated")
}

// newSessionStore picks the session backend named by cfg.SessionStore.
func newSessionStore(cfg *config.Config) (auth.Store, func(), error) {
	switch cfg.SessionStore {
	case "", "redis":
		svc, err := auth.NewSessionService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return svc, func() { _ = svc.Close() }, nil
	case "memory":
		log.Warn("in-memory session store, sessions are lost on restart")
		return auth.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
