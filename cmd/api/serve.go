package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/logger"
	"catalog-api/internal/pkg/clock"
	"catalog-api/internal/repository"
	"catalog-api/internal/routes"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes.NewRouter(store, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", srv.Addr), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// openStore connects the configured store once for the whole process. The
// returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.ProductStore, func(), error) {
	clk := clock.RealClock{}

	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store; data is lost on exit")
		return repository.NewMemoryProductRepository(clk), func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to mongo", slog.String("db", cfg.MongoDB), slog.String("collection", cfg.MongoCollection))

	coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
	closeFn := func() {
		if err := database.Disconnect(client, cfg.ShutdownTimeout); err != nil {
			log.Error("disconnect mongo", slog.Any("error", err))
		}
	}
	return repository.NewMongoProductRepository(coll, clk), closeFn, nil
}
