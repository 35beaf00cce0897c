package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// operatorAuthService issues and verifies the bearer JWTs that guard the
// operator API.
type operatorAuthService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewOperatorAuthService constructs an OperatorAuthService from the App
// settings. The returned service is safe for concurrent use; all state is
// read-only after construction.
func NewOperatorAuthService(cfg config.App, logger *logger.Logger) OperatorAuthService {
	return &operatorAuthService{
		tokenSignKey:  cfg.APITokenSignKey,
		tokenIssuer:   cfg.APITokenIssuer,
		tokenDuration: cfg.APITokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT whose subject is operator.
//
// Returns ErrInvalidDataProvided for an empty operator name and a wrapped
// ErrTokenCreationFailed if signing fails (e.g. no sign key configured).
func (a *operatorAuthService) CreateToken(ctx context.Context, operator string) (models.Token, error) {
	if operator == "" {
		logger.FromContext(ctx).Error().Msg("empty operator name provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, operator, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string. Any validation failure (expired,
// wrong issuer, malformed) is normalised to ErrTokenIsExpiredOrInvalid.
func (a *operatorAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("operator token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
