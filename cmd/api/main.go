package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:   "catalog-api",
		Usage:  "product catalog REST API",
		Flags:  serveFlags(),
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API (default)",
				Flags:  serveFlags(),
				Action: serveAction,
			},
			{
				Name:   "migrate",
				Usage:  "create the products collection indexes",
				Flags:  []cli.Flag{envFlag()},
				Action: migrateAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to a .env file",
		Value: ".env",
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		envFlag(),
		&cli.IntFlag{
			Name:  "port",
			Usage: "listen port (overrides PORT)",
		},
	}
}
