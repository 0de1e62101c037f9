package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken is a signed, time-limited credential for a single subject.
// Raw is what gets handed to the client; the other fields are there for the
// caller's convenience and are never re-read from the client.
type AuthToken struct {
	Raw       string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Signature string
}

func (t AuthToken) String() string { return t.Raw }

// Issuer signs and verifies HS256 tokens. It holds no secret of its own:
// the secret is passed on every call so that callers own its provisioning.
// The zero value is not usable, build one with NewIssuer.
type Issuer struct {
	now func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces the wall clock. Tests use it to step past expiry.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer returns an Issuer using the wall clock unless overridden.
func NewIssuer(opts ...IssuerOption) *Issuer {
	i := &Issuer{now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for subject that expires ttl after now. ttl is
// rounded down to whole seconds and must be at least one second.
func (i *Issuer) Issue(subject, secret string, ttl time.Duration) (AuthToken, error) {
	if subject == "" {
		return AuthToken{}, fmt.Errorf("%w: empty subject", ErrInvalidInput)
	}
	if secret == "" {
		return AuthToken{}, fmt.Errorf("%w: empty secret", ErrInvalidInput)
	}
	if ttl < time.Second {
		return AuthToken{}, fmt.Errorf("%w: ttl must be at least one second", ErrInvalidInput)
	}

	claims := NewClaims(subject, ttl, i.now())

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, fmt.Errorf("jwtx: sign: %w", err)
	}

	return AuthToken{
		Raw:       raw,
		Subject:   subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		Signature: raw[strings.LastIndexByte(raw, '.')+1:],
	}, nil
}

// Verify checks the signature first and the expiry second, so a forged
// token never reports ErrExpired. On success it returns the subject exactly
// as it was passed to Issue.
func (i *Issuer) Verify(tokenStr, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("%w: empty secret", ErrInvalidInput)
	}

	// Expiry is checked below against our own clock, so the parser only
	// handles structure and signature.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", classifyParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrMalformed
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return "", fmt.Errorf("%w: missing sub or iat", ErrMalformed)
	}
	if err := claims.ValidateExpiry(i.now()); err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// classifyParseError folds golang-jwt's error tree into our three kinds.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
