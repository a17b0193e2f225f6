package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // Import postgres driver
	_ "github.com/mattn/go-sqlite3" // Import sqlite driver

	"github.com/Dosada05/tournament-api/config"
	"github.com/Dosada05/tournament-api/migrations"
)

// Connect открывает пул соединений к базе данных выбранного драйвера и проверяет его ping-ом.
func Connect(driver, dsn string, timeout time.Duration) (*sqlx.DB, error) {
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	switch driver {
	case config.DriverSQLite:
		// sqlite allows a single writer; in-memory databases also live per connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database handle after ping error", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	if driver == config.DriverSQLite {
		var enabled int
		if err = db.GetContext(ctx, &enabled, "PRAGMA foreign_keys"); err != nil || enabled != 1 {
			_ = db.Close()
			if err == nil {
				err = errors.New("foreign key enforcement is off")
			}
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	}

	return db, nil
}

// sqliteDSN включает проверку внешних ключей, если DSN её не задаёт.
// Без неё sqlite игнорирует ON DELETE CASCADE.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate применяет встроенные миграции для драйвера соединения.
// Returns the schema version after migrating.
func Migrate(db *sqlx.DB) (uint, error) {
	var (
		dbDriver database.Driver
		dir      string
		err      error
	)

	switch db.DriverName() {
	case config.DriverSQLite:
		dir = "sqlite"
		dbDriver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case config.DriverPostgres:
		dir = "postgres"
		dbDriver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return 0, fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate driver instance: %w", err)
	}

	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate source: %w", err)
	}

	// m.Close() is not called: it would close the shared *sql.DB.
	m, err := migrate.NewWithInstance("iofs", source, db.DriverName(), dbDriver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
