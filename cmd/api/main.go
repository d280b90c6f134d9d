package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"crossval/adapters/api"
	"crossval/adapters/excel"
	"crossval/adapters/postgres"
	"crossval/app"
	"crossval/internal"
	"crossval/internal/config"
	"crossval/internal/engine"
)

func main() {
	// Optional .env for local development
	godotenv.Load()

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration failed: %v", err)
		os.Exit(1)
	}

	db, err := postgres.Connect(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Error("database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := postgres.NewReportRepository(db)
	eng := engine.New(engine.Config{SecondsPerCell: cfg.Engine.SecondsPerCell})
	service := app.NewValidationService(eng, repo, logger)

	server := api.NewServer(
		api.Config{ExportDir: cfg.Export.Dir},
		service, repo, excel.NewReportWriter(), logger,
	)
	if err := server.ListenAndServe(":" + cfg.Server.Port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
