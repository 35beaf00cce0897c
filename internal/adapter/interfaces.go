// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote CRM and its OAuth token endpoint.
//
// [Client] is the rate-limited transport every remote call goes through: it
// injects the current access token, paces requests, bounds concurrency, sleeps
// through rate-limit windows and retries transient failures with backoff.
// [CRMAdapter] maps the deal endpoints on top of it and [AuthAdapter]
// exchanges refresh tokens.
//
// Errors returned by this package match one of the taxonomy sentinels in
// errors.go with [errors.Is] (e.g. [ErrRateLimited], [ErrValidation]).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-deal-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TokenProvider hands out access tokens for the remote API.
type TokenProvider interface {
	// GetValidToken returns an access token that stays valid for at least
	// the configured safety margin, refreshing it first when needed.
	GetValidToken(ctx context.Context, account string) (string, error)

	// ForceRefresh refreshes the token regardless of its remaining lifetime.
	ForceRefresh(ctx context.Context, account string) (string, error)

	// StoredToken returns the stored access token as is. It never refreshes
	// and never writes the credential.
	StoredToken(ctx context.Context, account string) (string, error)
}

// AuthAdapter exchanges a refresh token for a new access token.
type AuthAdapter interface {
	// RefreshToken performs the refresh_token grant. A revoked or rejected
	// refresh token yields [ErrAuthenticationRevoked]; network and 5xx
	// failures yield [ErrAuthenticationUnavailable].
	RefreshToken(ctx context.Context, refreshToken string) (models.TokenPayload, error)
}

// ListOptions narrows a deal listing.
type ListOptions struct {
	// ModifiedSince limits the listing to deals modified at or after it.
	ModifiedSince *time.Time
	// PageToken resumes a previous listing from its cursor.
	PageToken string
}

// CRMAdapter defines the deal operations of the remote CRM.
type CRMAdapter interface {
	// ListDeals returns a lazy pager over the deal listing. No request is
	// made until the first call to Next.
	ListDeals(opts ListOptions) *Pager[models.Deal]

	// GetDeal fetches one deal by its remote id. Returns [ErrNotFound]
	// (wrapped) when the remote does not know the id.
	GetDeal(ctx context.Context, remoteID string) (models.Deal, error)

	// UpsertDeals writes up to 100 records synchronously. Records without a
	// remote id are created. The returned slice holds one result per input
	// record in input order; per-record rejections are reported there and do
	// not produce an error.
	UpsertDeals(ctx context.Context, updates []models.DealUpdate) ([]models.BatchRecordResult, error)

	// SubmitMassUpdate starts a remote mass-update job and returns its id.
	SubmitMassUpdate(ctx context.Context, req models.MassUpdateRequest) (string, error)
	GetMassUpdateStatus(ctx context.Context, jobID string) (models.RemoteJobStatus, error)

	// SubmitBulkWrite starts a remote bulk-write job and returns its id.
	SubmitBulkWrite(ctx context.Context, req models.BulkWriteRequest) (string, error)
	GetBulkWriteStatus(ctx context.Context, jobID string) (models.RemoteJobStatus, error)

	// DownloadBulkResult fetches and parses the per-record result artifact
	// of a completed bulk-write job.
	DownloadBulkResult(ctx context.Context, resultURL string) ([]models.BulkRecordResult, error)

	// Ping performs a cheap authenticated read.
	Ping(ctx context.Context) error

	// RateLimit returns the last rate-limit state reported by the remote.
	RateLimit() models.RateLimitState
}
