package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/crypto"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

// Storages groups every repository of the sync engine over one database
// connection.
type Storages struct {
	DB *DB

	Credentials  CredentialRepository
	Sessions     SessionRepository
	RecordStatus RecordStatusRepository
	ConflictLog  ConflictLogRepository
	Deals        DealRepository
}

// NewStorages connects to the configured database, applies pending
// migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, sealer crypto.Sealer, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, sealer), nil
}

// NewStoragesFromDB wires the repositories over an already migrated
// connection.
func NewStoragesFromDB(db *DB, sealer crypto.Sealer) *Storages {
	return &Storages{
		DB:           db,
		Credentials:  NewCredentialRepository(db, sealer),
		Sessions:     NewSessionRepository(db),
		RecordStatus: NewRecordStatusRepository(db),
		ConflictLog:  NewConflictLogRepository(db),
		Deals:        NewDealRepository(db),
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}
