package jwtx

import (
	"time"

	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login token stays valid unless the caller
// asks for something else.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Claims is the payload we sign. It is deliberately small: the subject and
// the registered time claims are all a storefront session needs, anything
// else (admin flag, profile) is looked up from the store per request.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds claims for subject valid from now until now+ttl. Both
// instants are truncated to whole seconds since that is all a NumericDate
// carries on the wire.
func NewClaims(subject string, ttl time.Duration, now time.Time) Claims {
	iat := now.UTC().Truncate(time.Second)
	exp := iat.Add(ttl.Truncate(time.Second))

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a unique identifier for the "jti" claim.
func NewJTI() string {
	return idx.New(idx.KindToken).String()
}

// ValidateExpiry reports ErrExpired once now has reached the expiry.
// A token is valid strictly before exp, never at it.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
