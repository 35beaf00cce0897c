package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps an operator API JWT.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] for standard claim access. Operator is the parsed
// "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	Operator string `json:"-"`
}

// String returns the compact signed form of the token.
func (t *Token) String() string {
	return t.SignedString
}
