package models

import "time"

// Credential is the OAuth credential of one CRM account identity.
// Exactly one credential is stored per AccountIdentity.
type Credential struct {
	AccountIdentity string    `json:"account_identity"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	ExpiresAt       time.Time `json:"expires_at"`
	Scopes          []string  `json:"scopes,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// ValidFor reports whether the access token stays valid for at least margin
// after now.
func (c Credential) ValidFor(now time.Time, margin time.Duration) bool {
	if c.AccessToken == "" {
		return false
	}
	return c.ExpiresAt.Sub(now) >= margin
}

// Merge applies a freshly issued credential on top of c. An empty refresh
// token in fresh never replaces the stored one.
func (c Credential) Merge(fresh Credential) Credential {
	c.AccessToken = fresh.AccessToken
	c.ExpiresAt = fresh.ExpiresAt
	if fresh.RefreshToken != "" {
		c.RefreshToken = fresh.RefreshToken
	}
	if len(fresh.Scopes) > 0 {
		c.Scopes = fresh.Scopes
	}
	return c
}

// TokenPayload is the body accepted by the token save endpoint. Older
// integrations send it without AccountIdentity; the identity is then taken
// from the access token claims or from configuration.
type TokenPayload struct {
	AccountIdentity string   `json:"account_identity,omitempty"`
	AccessToken     string   `json:"access_token"`
	RefreshToken    string   `json:"refresh_token"`
	ExpiresIn       int64    `json:"expires_in,omitempty"`
	ExpiresAt       int64    `json:"expires_at,omitempty"`
	Scope           string   `json:"scope,omitempty"`
	Scopes          []string `json:"scopes,omitempty"`
}
