package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

func newTestAuthService(duration time.Duration) OperatorAuthService {
	return NewOperatorAuthService(config.App{
		APITokenSignKey:  "sign-key",
		APITokenIssuer:   "crm-deal-sync",
		APITokenDuration: duration,
	}, logger.Nop())
}

func TestOperatorAuth_CreateAndParse(t *testing.T) {
	svc := newTestAuthService(time.Hour)

	token, err := svc.CreateToken(context.Background(), "ops")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "ops", parsed.Operator)
}

func TestOperatorAuth_CreateToken_EmptyOperator(t *testing.T) {
	_, err := newTestAuthService(time.Hour).CreateToken(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestOperatorAuth_CreateToken_NoSignKey(t *testing.T) {
	svc := NewOperatorAuthService(config.App{APITokenIssuer: "crm-deal-sync", APITokenDuration: time.Hour}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), "ops")

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestOperatorAuth_ParseToken_Rejects(t *testing.T) {
	issued, err := newTestAuthService(time.Hour).CreateToken(context.Background(), "ops")
	require.NoError(t, err)

	otherKey := NewOperatorAuthService(config.App{APITokenSignKey: "other", APITokenIssuer: "crm-deal-sync"}, logger.Nop())
	otherIssuer := NewOperatorAuthService(config.App{APITokenSignKey: "sign-key", APITokenIssuer: "someone-else"}, logger.Nop())

	tests := []struct {
		name  string
		svc   OperatorAuthService
		token string
	}{
		{name: "garbage", svc: newTestAuthService(time.Hour), token: "not-a-jwt"},
		{name: "wrong key", svc: otherKey, token: issued.SignedString},
		{name: "wrong issuer", svc: otherIssuer, token: issued.SignedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ParseToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestOperatorAuth_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(-time.Minute)

	token, err := svc.CreateToken(context.Background(), "ops")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
