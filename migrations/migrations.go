// Package migrations embeds the database schema and applies it with
// golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
)

//go:embed sql/*.sql
var files embed.FS

// sourceName labels the embedded source in migrate's error messages
const sourceName = "iofs"

// Runner applies the embedded migrations to one database
type Runner struct {
	m *migrate.Migrate
}

// NewRunner opens its own connection to databaseURL (postgres://...)
func NewRunner(databaseURL string) (*Runner, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance(sourceName, src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	m.Log = migrateLogger{}

	return &Runner{m: m}, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations
func (r *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := r.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version returns the applied version and whether the last run left it dirty.
// A database without migrations reports version 0.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close releases the source and database connections
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateLogger routes migrate's progress output through zerolog
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	observability.GetLogger().Info().Str("component", "migrate").Msgf(format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}
