package service

import (
	"context"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// TokenSaveAdapter accepts token saves in both the typed form, where the
// caller names the account, and the legacy form, where only the token
// payload is sent. It resolves the account identity and forwards to
// [TokenManager.SaveToken].
type TokenSaveAdapter struct {
	tokens   TokenManager
	fallback string
}

func NewTokenSaveAdapter(tokens TokenManager, fallbackAccount string) *TokenSaveAdapter {
	return &TokenSaveAdapter{tokens: tokens, fallback: fallbackAccount}
}

// Save stores payload and returns the account it was stored under.
//
// The identity is taken, in order, from account, from the payload's
// account_identity, from the "account" or "sub" claim of a JWT-shaped access
// token, and finally from the configured fallback.
func (a *TokenSaveAdapter) Save(ctx context.Context, payload models.TokenPayload, account ...string) (string, error) {
	identity := a.resolve(payload, account...)
	if identity == "" {
		return "", ErrNoAccountIdentity
	}
	if err := a.tokens.SaveToken(ctx, identity, payload); err != nil {
		return "", err
	}
	return identity, nil
}

func (a *TokenSaveAdapter) resolve(payload models.TokenPayload, account ...string) string {
	for _, acc := range account {
		if acc != "" {
			return acc
		}
	}
	if payload.AccountIdentity != "" {
		return payload.AccountIdentity
	}
	if claimed, err := utils.AccountFromJWT(payload.AccessToken); err == nil {
		return claimed
	}
	return a.fallback
}
