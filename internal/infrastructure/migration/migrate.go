// Package migration applies the SQL schema migrations with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stockpile/backend/migrations"
	"go.uber.org/zap"
)

// Status is the schema version recorded in schema_migrations.
type Status struct {
	Version uint
	Dirty   bool
}

// Migrator runs migrations against one postgres database.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// EmbeddedSource reads the migrations compiled into the binary.
func EmbeddedSource() (source.Driver, error) {
	return iofs.New(migrations.FS, ".")
}

// DirSource reads migrations from a directory on disk.
func DirSource(dir string) (source.Driver, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations directory: %w", err)
	}
	return iofs.New(os.DirFS(dir), ".")
}

// New creates a Migrator reading from src. An empty dir selects the embedded
// migrations.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	var (
		src source.Driver
		err error
	)
	if dir == "" {
		src, err = EmbeddedSource()
	} else {
		src, err = DirSource(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up() error {
	m.logger.Info("Applying pending migrations")
	if err := ignoreNoChange(m.migrate.Up()); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return m.logStatus("Migrations applied")
}

// Down rolls back the last n migrations. n <= 0 rolls back everything.
func (m *Migrator) Down(n int) error {
	var err error
	if n <= 0 {
		m.logger.Warn("Rolling back all migrations")
		err = m.migrate.Down()
	} else {
		m.logger.Info("Rolling back migrations", zap.Int("steps", n))
		err = m.migrate.Steps(-n)
	}
	if err := ignoreNoChange(err); err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return m.logStatus("Rollback finished")
}

// GoTo migrates up or down to version.
func (m *Migrator) GoTo(version uint) error {
	m.logger.Info("Migrating to version", zap.Uint("target_version", version))
	if err := ignoreNoChange(m.migrate.Migrate(version)); err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	}
	return m.logStatus("Migration finished")
}

// Status returns the current version. A fresh database reports version 0.
func (m *Migrator) Status() (Status, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// Force records version without running anything, clearing the dirty flag.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles.
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}

func (m *Migrator) logStatus(msg string) error {
	st, err := m.Status()
	if err != nil {
		return err
	}
	m.logger.Info(msg, zap.Uint("version", st.Version), zap.Bool("dirty", st.Dirty))
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
