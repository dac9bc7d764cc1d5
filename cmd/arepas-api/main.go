// Command arepas-api serves the dataset-job HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fabiospaccavento00/arepas/internal/api"
	"github.com/fabiospaccavento00/arepas/internal/api/handler"
	"github.com/fabiospaccavento00/arepas/internal/config"
	"github.com/fabiospaccavento00/arepas/internal/store"
	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/router"
)

// @title Arepas Training Dataset API
// @version 1.0
// @description Builds hourly per-product training datasets from cooking-process sources.
// @BasePath /api/v1
func main() {
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*verbose)

	if err := store.InitDB(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "init store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	r := router.New(log)
	api.RegisterRoutes(r, handler.New(cfg, log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.Start(ctx, cfg.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
