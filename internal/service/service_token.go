// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const (
	defaultTokenLifetime   = time.Hour
	refreshRetryBaseDelay  = 500 * time.Millisecond
	refreshRetryMaxDelay   = 5 * time.Second
	refreshRetryMaxRetries = 3
)

type tokenManager struct {
	credentials store.CredentialRepository
	auth        adapter.AuthAdapter
	margin      time.Duration

	flights singleflight.Group
	writes  *keyedMutex

	now        func() time.Time
	retryBase  time.Duration
	retryMax   time.Duration
	maxRetries uint64

	logger *logger.Logger
}

// NewTokenManager builds the only writer of stored credentials.
//
// Refreshes are serialized per account: concurrent callers that find the
// token too close to expiry share one refresh and its result.
func NewTokenManager(credentials store.CredentialRepository, auth adapter.AuthAdapter, cfg config.Auth, log *logger.Logger) TokenManager {
	margin := cfg.SafetyMargin
	if margin <= 0 {
		margin = config.DefaultSafetyMargin
	}

	return &tokenManager{
		credentials: credentials,
		auth:        auth,
		margin:      margin,
		writes:      newKeyedMutex(),
		now:         time.Now,
		retryBase:   refreshRetryBaseDelay,
		retryMax:    refreshRetryMaxDelay,
		maxRetries:  refreshRetryMaxRetries,
		logger:      log.Component("token-manager"),
	}
}

func (m *tokenManager) GetValidToken(ctx context.Context, account string) (string, error) {
	cred, err := m.load(ctx, account)
	if err != nil {
		return "", err
	}
	if cred.ValidFor(m.now(), m.margin) {
		return cred.AccessToken, nil
	}
	return m.refresh(ctx, account, false)
}

func (m *tokenManager) ForceRefresh(ctx context.Context, account string) (string, error) {
	return m.refresh(ctx, account, true)
}

// StoredToken returns the stored access token whatever its remaining
// lifetime. It never refreshes.
func (m *tokenManager) StoredToken(ctx context.Context, account string) (string, error) {
	cred, err := m.load(ctx, account)
	if err != nil {
		return "", err
	}
	return cred.AccessToken, nil
}

func (m *tokenManager) Credential(ctx context.Context, account string) (models.Credential, error) {
	return m.credentials.GetCredential(ctx, account)
}

func (m *tokenManager) SaveToken(ctx context.Context, account string, payload models.TokenPayload) error {
	if account == "" {
		return ErrNoAccountIdentity
	}
	if payload.AccessToken == "" {
		return ErrEmptyAccessToken
	}

	unlock := m.writes.Lock(account)
	defer unlock()

	fresh := m.credentialFrom(account, payload)

	cred, err := m.credentials.GetCredential(ctx, account)
	switch {
	case errors.Is(err, store.ErrCredentialNotFound):
		cred = fresh
	case err != nil:
		return fmt.Errorf("error reading stored credential: %w", err)
	default:
		cred = cred.Merge(fresh)
	}

	if err := m.credentials.SaveCredential(ctx, account, cred); err != nil {
		return fmt.Errorf("error saving credential: %w", err)
	}

	m.logger.Info().Str("account", account).Time("expires_at", cred.ExpiresAt).Msg("credential saved")
	return nil
}

func (m *tokenManager) Revoke(ctx context.Context, account string) error {
	unlock := m.writes.Lock(account)
	defer unlock()

	if err := m.credentials.DeleteCredential(ctx, account); err != nil {
		return fmt.Errorf("error deleting credential: %w", err)
	}
	m.logger.Warn().Str("account", account).Msg("credential revoked")
	return nil
}

func (m *tokenManager) load(ctx context.Context, account string) (models.Credential, error) {
	cred, err := m.credentials.GetCredential(ctx, account)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.Credential{}, fmt.Errorf("%w: no credential for %q", adapter.ErrAuthenticationRevoked, account)
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", adapter.ErrAuthenticationUnavailable, err)
	}
	return cred, nil
}

// refresh joins or starts the refresh flight of account. The flight runs
// on a context detached from the caller's; a caller that gives up only stops
// waiting.
func (m *tokenManager) refresh(ctx context.Context, account string, force bool) (string, error) {
	detached := context.WithoutCancel(ctx)
	ch := m.flights.DoChan(account, func() (any, error) {
		return m.doRefresh(detached, account, force)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *tokenManager) doRefresh(ctx context.Context, account string, force bool) (string, error) {
	unlock := m.writes.Lock(account)
	defer unlock()

	log := m.logger.With().Str("account", account).Bool("forced", force).Logger()

	cred, err := m.load(ctx, account)
	if err != nil {
		return "", err
	}
	// another flight may have refreshed while this one waited for the lock
	if !force && cred.ValidFor(m.now(), m.margin) {
		return cred.AccessToken, nil
	}
	if cred.RefreshToken == "" {
		metrics.RecordTokenRefresh(metrics.OutcomeRevoked)
		return "", fmt.Errorf("%w: no refresh token stored", adapter.ErrAuthenticationRevoked)
	}

	var payload models.TokenPayload
	b := retry.WithMaxRetries(m.maxRetries, retry.WithCappedDuration(m.retryMax, retry.WithJitterPercent(20, retry.NewExponential(m.retryBase))))
	attempt := 0
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		p, err := m.auth.RefreshToken(ctx, cred.RefreshToken)
		if errors.Is(err, adapter.ErrAuthenticationUnavailable) {
			log.Warn().Err(err).Int("attempt", attempt).Msg("token endpoint unavailable, retrying")
			return retry.RetryableError(err)
		}
		payload = p
		return err
	})
	if err != nil {
		if errors.Is(err, adapter.ErrAuthenticationRevoked) {
			metrics.RecordTokenRefresh(metrics.OutcomeRevoked)
			log.Error().Err(err).Msg("refresh token was rejected")
			return "", err
		}
		metrics.RecordTokenRefresh(metrics.OutcomeError)
		log.Error().Err(err).Int("attempts", attempt).Msg("token refresh failed")
		if !errors.Is(err, adapter.ErrAuthenticationUnavailable) {
			err = fmt.Errorf("%w: %w", adapter.ErrAuthenticationUnavailable, err)
		}
		return "", err
	}

	updated := cred.Merge(m.credentialFrom(account, payload))
	updated.UpdatedAt = m.now().UTC()
	if err := m.credentials.SaveCredential(ctx, account, updated); err != nil {
		metrics.RecordTokenRefresh(metrics.OutcomeError)
		return "", fmt.Errorf("%w: saving refreshed credential: %w", adapter.ErrAuthenticationUnavailable, err)
	}

	metrics.RecordTokenRefresh(metrics.OutcomeSuccess)
	log.Info().Time("expires_at", updated.ExpiresAt).Msg("access token refreshed")
	return updated.AccessToken, nil
}

func (m *tokenManager) credentialFrom(account string, p models.TokenPayload) models.Credential {
	now := m.now().UTC()

	expiresAt := now.Add(defaultTokenLifetime)
	switch {
	case p.ExpiresAt > 0:
		expiresAt = time.Unix(p.ExpiresAt, 0).UTC()
	case p.ExpiresIn > 0:
		expiresAt = now.Add(time.Duration(p.ExpiresIn) * time.Second)
	}

	scopes := p.Scopes
	if len(scopes) == 0 && p.Scope != "" {
		scopes = strings.FieldsFunc(p.Scope, func(r rune) bool { return r == ' ' || r == ',' })
	}

	return models.Credential{
		AccountIdentity: account,
		AccessToken:     p.AccessToken,
		RefreshToken:    p.RefreshToken,
		ExpiresAt:       expiresAt,
		Scopes:          scopes,
		UpdatedAt:       now,
	}
}
