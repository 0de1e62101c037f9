package jwtx

import (
	"errors"
)

// Verifier validates a token and gives back the subject it was issued for.
// The HTTP middleware depends on this rather than on *Issuer so handlers
// can be tested with a stub.
type Verifier interface {
	Verify(token, secret string) (string, error)
}

var (
	ErrInvalidInput = errors.New("jwtx: invalid input")

	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// IsAuthFailure reports whether err is one of the client-facing verification
// failures (as opposed to a programming error like an empty secret).
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrInvalidSig) ||
		errors.Is(err, ErrExpired)
}
