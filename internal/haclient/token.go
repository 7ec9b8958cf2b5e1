package haclient

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo holds the claims decoded from a long-lived access token.
// Decoding never validates the signature; only Home Assistant can do that.
type TokenInfo struct {
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim has passed.
func (t *TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// ExpiresWithin reports whether the token expires within d.
func (t *TokenInfo) ExpiresWithin(d time.Duration) bool {
	return !t.ExpiresAt.IsZero() && time.Now().Add(d).After(t.ExpiresAt)
}

// InspectToken decodes the claims of a Home Assistant long-lived access
// token without verifying its signature, so startup can warn about expired
// or soon-to-expire tokens. Returns ErrNotJWT for opaque tokens.
func InspectToken(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	info := &TokenInfo{}
	if iss, err := claims.GetIssuer(); err == nil {
		info.Issuer = iss
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
