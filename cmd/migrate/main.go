// Command migrate applies or rolls back database/migrations.
//
//	migrate up
//	migrate down [N | --all]
//	migrate version
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"mobility-profile/internal/config"
	"mobility-profile/internal/database"
	"mobility-profile/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	migrationsPath := flag.String("path", "database/migrations", "directory holding the migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if cfg.DB.Driver != config.DriverPostgres {
		l.Fatal("Migrations are only provided for postgres", zap.String("driver", cfg.DB.Driver))
	}

	db, err := sql.Open(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	mg, err := database.NewMigrator(db, *migrationsPath)
	if err != nil {
		l.Fatal("Failed to prepare migrations", zap.Error(err))
	}
	defer mg.Close()

	if err := run(mg, flag.Args()); err != nil {
		l.Fatal("Migration failed", zap.Error(err))
	}
}

func run(mg *database.Migrator, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		steps, err := parseDownSteps(args[1:])
		if err != nil {
			return err
		}
		if err := mg.Down(steps); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q, expected up, down or version", command)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	logger.Get().Info("Database schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	fmt.Fprintf(os.Stdout, "version %d (dirty=%t)\n", version, dirty)
	return nil
}

// parseDownSteps defaults to one step; --all rolls back every migration.
func parseDownSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	if args[0] == "--all" {
		return 0, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("invalid number of steps %q", args[0])
	}
	return steps, nil
}
