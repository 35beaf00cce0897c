package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/crm-deal-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoIdentityClaim is returned when a token carries neither an "account"
// nor a "sub" claim.
var ErrNoIdentityClaim = errors.New("token carries no identity claim")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for an operator.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the operator name
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("crm-deal-sync", "ops", time.Hour, "secret")
func GenerateJWTToken(issuer, operator string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || operator == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   operator,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Operator: operator}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// the operator name from its subject.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "crm-deal-sync")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	operator, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if operator == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, SignedString: tokenString, Operator: operator}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// AccountFromJWT reads the account identity from a JWT-shaped access token
// without verifying its signature. The "account" claim wins over "sub".
// The remote CRM signs its tokens with a key we never see, so only the
// claim layout can be inspected.
func AccountFromJWT(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	if account, ok := claims["account"].(string); ok && account != "" {
		return account, nil
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", ErrNoIdentityClaim
	}
	return sub, nil
}
