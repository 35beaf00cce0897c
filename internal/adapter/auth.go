package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
	"golang.org/x/oauth2"
)

const errorCodeInvalidGrant = "invalid_grant"

type oauthAuthAdapter struct {
	cfg        oauth2.Config
	httpClient *http.Client
}

// NewAuthAdapter returns the [AuthAdapter] performing the refresh_token grant
// against cfg.TokenURL. Client credentials are sent in the form body.
func NewAuthAdapter(cfg config.Auth, timeout time.Duration) AuthAdapter {
	client := utils.NewHTTPClient()
	client.SetTimeout(timeout)

	return &oauthAuthAdapter{
		cfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: client.GetClient(),
	}
}

func (a *oauthAuthAdapter) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPayload, error) {
	if refreshToken == "" {
		return models.TokenPayload{}, fmt.Errorf("%w: no refresh token stored", ErrAuthenticationRevoked)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	tok, err := a.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return models.TokenPayload{}, classifyTokenError(ctx, err)
	}

	payload := models.TokenPayload{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		payload.ExpiresAt = tok.Expiry.Unix()
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		payload.Scope = scope
		payload.Scopes = strings.Fields(scope)
	}
	return payload, nil
}

// classifyTokenError maps a failed grant onto the taxonomy. The endpoint
// rejecting the grant means re-authorization is required; anything else is
// worth retrying.
func classifyTokenError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return fmt.Errorf("%w: %w", ErrAuthenticationUnavailable, err)
	}
	if re.ErrorCode == errorCodeInvalidGrant {
		return fmt.Errorf("%w: %w", ErrAuthenticationRevoked, err)
	}
	if re.Response != nil {
		status := re.Response.StatusCode
		if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %w", ErrAuthenticationUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrAuthenticationRevoked, err)
}
