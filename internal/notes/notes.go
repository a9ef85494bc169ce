// Package notes stores training notes that can be appended to plans.
package notes

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"

	"github.com/meltforce/barbell/internal/models"
)

//go:embed migrations
var migrationsFS embed.FS

var ErrNotFound = errors.New("note not found")

// Store persists notes keyed by their source.
type Store interface {
	// Upsert inserts n, or replaces the note with the same source. The
	// stored note is returned with its ID and timestamps.
	Upsert(ctx context.Context, n models.Note) (models.Note, error)
	// IsImported reports whether source is stored with the given hash.
	IsImported(ctx context.Context, source, hash string) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (models.Note, error)
	// List returns every note ordered by source.
	List(ctx context.Context) ([]models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open migrates and opens the store for driver. For sqlite dsn is a file
// path; for postgres it is a connection URL.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating notes dir: %w", err)
		}
		if err := RunMigrations(driver, "sqlite://"+dsn); err != nil {
			return nil, err
		}
		return OpenSQLite(dsn)
	case DriverPostgres:
		if err := RunMigrations(driver, dsn); err != nil {
			return nil, err
		}
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown notes driver %q", driver)
	}
}

// RunMigrations applies all pending embedded migrations for driver.
func RunMigrations(driver, databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("loading %s migrations: %w", driver, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
