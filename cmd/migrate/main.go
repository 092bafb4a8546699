package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mmoldabe-dev/subtrack/internal/config"
	"github.com/mmoldabe-dev/subtrack/internal/storage/postgres"
	"github.com/mmoldabe-dev/subtrack/pkg/logger"
)

// migrate brings the schema up to date without starting the API.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error to load config: %s", err)
		os.Exit(1)
	}
	log := logger.SetupLogger(cfg.Logger.Level, cfg.Logger.Format, "subtrack-migrate")

	if err := postgres.RunMigrations(cfg, log); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := postgres.NewPostgres(cfg, log)
	if err != nil {
		log.Error("could not initialize database storage")
		os.Exit(1)
	}
	defer db.Close()

	log.Info("database is ready to work")
}
