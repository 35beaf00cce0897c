package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/migrations"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps a *sql.DB with the dialect-specific pieces every repository needs:
// a squirrel statement builder with the right placeholder format and an error
// classifier for retry decisions.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		driver:  driver,
		logger:  log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}

	switch driver {
	case DriverSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Driver returns the database/sql driver name the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// retryOnce runs fn and repeats it a single time when the first failure is
// classified as [Retryable].
func (db *DB) retryOnce(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
		return err
	}
	if ctx.Err() != nil {
		return err
	}

	logger.FromContext(ctx).Warn().Err(err).Str("func", "DB.retryOnce").Msg("retrying transient database error")
	return fn()
}
