package initializers

import (
	"embed"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateDB applies any pending schema migrations. Already-current
// databases pass through without error.
func MigrateDB() {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		log.Fatalf("failed to load migration source: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, os.Getenv("DB_URL"))
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("failed to run migrations: %v", err)
	}
}
