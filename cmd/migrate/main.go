package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"tracklist/internal/config"
	"tracklist/internal/logging"
)

func main() {
	logging.Setup(logging.Config{Level: "info", Format: "text"})

	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal().Msg("Usage: migrate [up|down]")
	}

	if err := run(os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("direction", os.Args[1]).Msg("Migration failed")
	}
}

func run(direction string) error {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dbCfg.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	sourceURL, err := migrationsSource(os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", verr)
	}
	log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	return nil
}

// migrationsSource resolves the migrations directory to a file:// URL,
// defaulting to ./migrations.
func migrationsSource(path string) (string, error) {
	if path == "" {
		path = "migrations"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("migrations directory: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
