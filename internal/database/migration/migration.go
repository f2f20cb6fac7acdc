package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

var sqlOpen = sql.Open

// Source returns the embedded migration files as a golang-migrate source driver.
func Source() (source.Driver, error) {
	return iofs.New(migrationsFS, "sql")
}

// Up applies pending schema migrations.
// It opens a dedicated connection because closing a migrate instance also closes its database handle.
func Up(dsn string, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"))
	log.Info("db_migration_start")

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return fail(log, start, fmt.Errorf("open migration database: %w", err))
	}

	driver, err := pgx.WithInstance(db, &pgx.Config{})
	if err != nil {
		_ = db.Close()
		return fail(log, start, fmt.Errorf("create pgx driver: %w", err))
	}

	src, err := Source()
	if err != nil {
		_ = driver.Close()
		return fail(log, start, fmt.Errorf("create iofs source: %w", err))
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return fail(log, start, fmt.Errorf("create migrate instance: %w", err))
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("db_migration_skip",
				zap.String("reason", "schema already up to date"),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return nil
		}
		return fail(log, start, fmt.Errorf("run migrations: %w", err))
	}

	version, _, _ := m.Version()
	log.Info("db_migration_success",
		zap.Uint("version", version),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func fail(log *zap.Logger, start time.Time, err error) error {
	log.Error("db_migration_failed",
		zap.Error(err),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return err
}
