package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/opencrew/orgcli/internal/api"
	"github.com/opencrew/orgcli/internal/buildinfo"
	"github.com/opencrew/orgcli/internal/cli"
	"github.com/opencrew/orgcli/internal/config"
	"github.com/opencrew/orgcli/internal/logging"
	"github.com/opencrew/orgcli/internal/store"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.Fatalf("creating state directory: %v", err)
		}
	}

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("opening state database: %v", err)
	}
	defer db.Close()

	stores := store.NewStores(store.NewSQLiteKV(db))
	client := api.NewRestClient(cfg.BaseURL, cfg.RequestTimeout)

	app := cli.NewApp(cfg, client, stores, logger)
	app.Run(ctx)
}
