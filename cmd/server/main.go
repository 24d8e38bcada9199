package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openfest/gatekeeper/internal/api"
	"github.com/openfest/gatekeeper/internal/factory"
	"github.com/openfest/gatekeeper/internal/model"
	redisstorage "github.com/openfest/gatekeeper/internal/storage/redis"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: envOrDefault("GATEKEEPER_STORAGE_TYPE", factory.StorageTypeMemory),
	}

	if factoryCfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if url := os.Getenv("GATEKEEPER_REDIS_URL"); url != "" {
			redisCfg.URL = url
		}
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.FeedHub.Run()
	defer app.FeedHub.Stop()

	if err := bootstrapAdmin(ctx, app, logger); err != nil {
		return fmt.Errorf("bootstrapping admin account: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:                logger,
		AuthService:           app.AuthService,
		ParticipantController: app.ParticipantController,
		CheckpointController:  app.CheckpointController,
		RosterImporter:        app.RosterImporter,
		FeedHub:               app.FeedHub,
	})

	serverCfg := api.DefaultServerConfig()
	if port := os.Getenv("GATEKEEPER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid GATEKEEPER_PORT %q: %w", port, err)
		}
		serverCfg.Port = p
	}

	server := api.NewServer(router, serverCfg, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("Server started",
		"addr", server.Addr(),
		"storage", factoryCfg.StorageType)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// bootstrapAdmin creates the initial admin account from the environment
// when no staff accounts exist yet.
func bootstrapAdmin(ctx context.Context, app *factory.App, logger *slog.Logger) error {
	username := os.Getenv("GATEKEEPER_ADMIN_USERNAME")
	password := os.Getenv("GATEKEEPER_ADMIN_PASSWORD")
	if username == "" || password == "" {
		count, err := app.Storage.CountStaff(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			logger.Warn("No staff accounts exist and GATEKEEPER_ADMIN_USERNAME/GATEKEEPER_ADMIN_PASSWORD are unset; all write endpoints will be inaccessible")
		}
		return nil
	}

	if err := app.AuthService.EnsureStaff(ctx, username, password, "Administrator", model.RoleAdmin); err != nil {
		return err
	}
	logger.Info("Ensured admin account", "username", username)
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
