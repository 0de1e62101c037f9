package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-please-ignore"

// fakeClock is a settable clock for expiry tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	clock := newClock()
	issuer := jwtx.NewIssuer(jwtx.WithClock(clock.Now))

	subjects := []string{"user-123", "01JABCDEF0123456789XYZ", "a", "üñîçødé"}
	for _, sub := range subjects {
		t.Run(sub, func(t *testing.T) {
			tok, err := issuer.Issue(sub, testSecret, time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, tok.Raw)
			require.Equal(t, tok.Raw, tok.String())
			require.Equal(t, sub, tok.Subject)
			require.Equal(t, clock.Now(), tok.IssuedAt)
			require.Equal(t, clock.Now().Add(time.Hour), tok.ExpiresAt)
			require.True(t, strings.HasSuffix(tok.Raw, "."+tok.Signature))

			got, err := issuer.Verify(tok.Raw, testSecret)
			require.NoError(t, err)
			require.Equal(t, sub, got)
		})
	}
}

func TestIssueRejectsInvalidInput(t *testing.T) {
	issuer := jwtx.NewIssuer()

	t.Run("empty subject", func(t *testing.T) {
		_, err := issuer.Issue("", testSecret, time.Hour)
		require.ErrorIs(t, err, jwtx.ErrInvalidInput)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := issuer.Issue("user-1", "", time.Hour)
		require.ErrorIs(t, err, jwtx.ErrInvalidInput)
	})

	t.Run("zero ttl", func(t *testing.T) {
		_, err := issuer.Issue("user-1", testSecret, 0)
		require.ErrorIs(t, err, jwtx.ErrInvalidInput)
	})

	t.Run("sub-second ttl", func(t *testing.T) {
		_, err := issuer.Issue("user-1", testSecret, 500*time.Millisecond)
		require.ErrorIs(t, err, jwtx.ErrInvalidInput)
	})
}

func TestIssueDiffersAcrossInstants(t *testing.T) {
	clock := newClock()
	issuer := jwtx.NewIssuer(jwtx.WithClock(clock.Now))

	first, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	clock.Advance(time.Second)
	second, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	require.NotEqual(t, first.Raw, second.Raw)
	require.True(t, second.IssuedAt.After(first.IssuedAt))

	// Same second still differs thanks to the jti.
	third, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, second.Raw, third.Raw)
}

func TestVerifyWithDifferentSecret(t *testing.T) {
	issuer := jwtx.NewIssuer()

	tok, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	for _, other := range []string{"another-secret", testSecret + "x", "t"} {
		_, err := issuer.Verify(tok.Raw, other)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	}
}

func TestVerifyExpiry(t *testing.T) {
	clock := newClock()
	issuer := jwtx.NewIssuer(jwtx.WithClock(clock.Now))

	tok, err := issuer.Issue("user-1", testSecret, time.Second)
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		clock.t = tok.IssuedAt.Add(999 * time.Millisecond)
		sub, err := issuer.Verify(tok.Raw, testSecret)
		require.NoError(t, err)
		require.Equal(t, "user-1", sub)
	})

	t.Run("expired exactly at expiry", func(t *testing.T) {
		clock.t = tok.ExpiresAt
		_, err := issuer.Verify(tok.Raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("expired well after", func(t *testing.T) {
		clock.t = tok.ExpiresAt.Add(time.Hour)
		_, err := issuer.Verify(tok.Raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong secret on expired token is still a signature failure", func(t *testing.T) {
		clock.t = tok.ExpiresAt.Add(time.Hour)
		_, err := issuer.Verify(tok.Raw, "nope")
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
		require.NotErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestVerifyMalformed(t *testing.T) {
	issuer := jwtx.NewIssuer()

	cases := map[string]string{
		"empty":           "",
		"one segment":     "abc",
		"two segments":    "abc.def",
		"garbage base64":  "!!!.###.$$$",
		"non-json header": b64("not json") + "." + b64(`{"sub":"x"}`) + ".c2ln",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(raw, testSecret)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
			require.True(t, jwtx.IsAuthFailure(err))
		})
	}

	t.Run("missing subject", func(t *testing.T) {
		now := time.Now()
		claims := jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestVerifyTamperedPayload(t *testing.T) {
	issuer := jwtx.NewIssuer()

	tok, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok.Raw, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))
	body["sub"] = "admin"
	forged, err := json.Marshal(body)
	require.NoError(t, err)

	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString(forged) + "." + parts[2]
	_, err = issuer.Verify(tampered, testSecret)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	issuer := jwtx.NewIssuer()
	claims := jwtx.NewClaims("user-1", time.Hour, time.Now())

	t.Run("HS512", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = issuer.Verify(raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("none", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(raw, testSecret)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}

func TestVerifyRequiresSecret(t *testing.T) {
	issuer := jwtx.NewIssuer()

	tok, err := issuer.Issue("user-1", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = issuer.Verify(tok.Raw, "")
	require.ErrorIs(t, err, jwtx.ErrInvalidInput)
	require.False(t, jwtx.IsAuthFailure(err))
}

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}
