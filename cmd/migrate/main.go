package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -list

import (
	"context"
	"flag"
	"fmt"
	"os"

	"internship-backend/internal/shared/config"
	"internship-backend/internal/shared/storage/db"
	"internship-backend/internal/shared/telemetry"
)

func main() {
	list := flag.Bool("list", false, "print embedded migrations and exit")
	flag.Parse()

	if *list {
		names, err := db.MigrationNames()
		if err != nil {
			fmt.Fprintf(os.Stderr, "list migrations: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg := config.Load()
	if err := telemetry.Configure(cfg.LogFormat, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "configure logging: %v\n", err)
		os.Exit(1)
	}
	defer telemetry.Sync()
	ctx := context.Background()

	sqlDB, err := db.Open(ctx, cfg, db.RoleMigrate)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		telemetry.Sync()
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		telemetry.Sync()
		os.Exit(1)
	}
	telemetry.Info("migrate.complete", nil)
}
