package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/crypto"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// credentialRepository stores OAuth credentials in the "credentials" table.
// Tokens pass through a [crypto.Sealer] on the way in and out.
type credentialRepository struct {
	*DB
	sealer crypto.Sealer
	now    func() time.Time
}

// NewCredentialRepository constructs a [CredentialRepository]. A nil sealer
// stores tokens in plaintext.
func NewCredentialRepository(db *DB, sealer crypto.Sealer) CredentialRepository {
	if sealer == nil {
		sealer = crypto.NewNopSealer()
	}
	return &credentialRepository{DB: db, sealer: sealer, now: time.Now}
}

func (r *credentialRepository) GetCredential(ctx context.Context, account string) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCredentialQuery(r.builder, account)
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		cred   models.Credential
		scopes string
	)
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&cred.AccountIdentity,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&scopes,
		&cred.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.GetCredential").Str("account", account).Msg("failed to read credential")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	cred.Scopes = splitScopes(scopes)
	cred.ExpiresAt = cred.ExpiresAt.UTC()

	if cred.AccessToken, err = r.sealer.Open(cred.AccessToken); err != nil {
		return models.Credential{}, fmt.Errorf("open access token: %w", err)
	}
	if cred.RefreshToken, err = r.sealer.Open(cred.RefreshToken); err != nil {
		return models.Credential{}, fmt.Errorf("open refresh token: %w", err)
	}

	return cred, nil
}

// SaveCredential upserts the credential of account. An empty refresh token
// never replaces a stored one.
func (r *credentialRepository) SaveCredential(ctx context.Context, account string, cred models.Credential) error {
	log := logger.FromContext(ctx)

	var err error
	if cred.AccessToken, err = r.sealer.Seal(cred.AccessToken); err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	if cred.RefreshToken, err = r.sealer.Seal(cred.RefreshToken); err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}

	query, args, err := buildSaveCredentialQuery(r.builder, account, cred, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.retryOnce(ctx, func() error {
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.SaveCredential").Str("account", account).Msg("failed to save credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *credentialRepository) DeleteCredential(ctx context.Context, account string) error {
	query, args, err := r.builder.Delete(tableCredentials).Where("account_identity = ?", account).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "credentialRepository.DeleteCredential").Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCredentialNotFound
	}
	return nil
}
