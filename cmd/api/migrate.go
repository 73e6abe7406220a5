package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"catalog-api/internal/config"
	"catalog-api/internal/database"
	"catalog-api/internal/logger"
)

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.StoreDriver != config.DriverMongo {
		return errors.New("migrate requires STORE_DRIVER=mongo")
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Disconnect(client, cfg.ShutdownTimeout); err != nil {
			log.Error("disconnect mongo", slog.Any("error", err))
		}
	}()

	coll := client.Database(cfg.MongoDB).Collection(cfg.MongoCollection)
	names, err := database.EnsureIndexes(ctx, coll)
	if err != nil {
		return err
	}
	log.Info("indexes ready", slog.String("collection", coll.Name()), slog.Any("indexes", names))
	return nil
}
