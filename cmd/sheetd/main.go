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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-character-sheet/internal/config"
	"github.com/KirkDiggler/dnd-character-sheet/internal/handlers/rest"
	"github.com/KirkDiggler/dnd-character-sheet/internal/logging"
	"github.com/KirkDiggler/dnd-character-sheet/internal/repositories/characters"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	log := logging.CreateLogger("sheetd", cfg.LogLevel)
	if envErr != nil {
		log.Debug("No .env file found")
	}

	repo, closeRepo := newRepository(cfg, log)
	defer closeRepo()

	handler := rest.NewHandler(&rest.HandlerConfig{
		Repository: repo,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", cfg.Server.Addr).Info("Character endpoint listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server stopped with error")
	}
}

// newRepository connects to Redis when REDIS_URL is set and reachable,
// otherwise characters live in memory
func newRepository(cfg *config.Config, log logrus.FieldLogger) (characters.Repository, func()) {
	if cfg.Redis.URL == "" {
		log.Info("No REDIS_URL found, using in-memory repository")
		return characters.NewInMemoryRepository(), func() {}
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.WithError(err).Warn("Failed to parse Redis URL, falling back to in-memory repository")
		return characters.NewInMemoryRepository(), func() {}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.WithError(err).Warn("Failed to connect to Redis, falling back to in-memory repository")
		return characters.NewInMemoryRepository(), func() {}
	}

	log.WithField("addr", opts.Addr).Info("Using Redis for persistence")
	return characters.NewRedis(client), func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis connection")
		}
	}
}
