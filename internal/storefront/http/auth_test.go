package http

import (
	"net/http"
	"testing"
	"time"

	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	h := newHarness(t, generousLimits())

	reg := h.register("ada@example.com")
	require.Equal(t, "Bearer", reg.TokenType)
	require.Equal(t, int64(3600), reg.ExpiresIn)
	require.False(t, reg.User.IsAdmin)

	rec := h.do(http.MethodPost, "/v1/auth/login", "", sdk.LoginRequest{Email: "ADA@example.com", Password: "long enough"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[sdk.TokenResponse](t, rec)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = h.do(http.MethodGet, "/v1/profile", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[sdk.UserResponse](t, rec)
	require.Equal(t, reg.User.ID, me.ID)
	require.Equal(t, "ada@example.com", me.Email)

	name := "Ada Lovelace"
	rec = h.do(http.MethodPut, "/v1/profile", login.AccessToken, sdk.UpdateProfileRequest{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, name, decode[sdk.UserResponse](t, rec).Name)
}

func TestRegisterErrors(t *testing.T) {
	h := newHarness(t, generousLimits())
	h.register("ada@example.com")

	rec := h.do(http.MethodPost, "/v1/auth/register", "", sdk.RegisterRequest{Email: "ada@example.com", Name: "Ada", Password: "long enough"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, sdk.ErrorCodeEmailTaken, decode[sdk.ErrorResponse](t, rec).Error)

	rec = h.do(http.MethodPost, "/v1/auth/register", "", sdk.RegisterRequest{Email: "nope", Name: "", Password: "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	v := decode[sdk.ValidationErrorResponse](t, rec)
	require.Equal(t, sdk.ErrorCodeValidation, v.Code)
	require.Len(t, v.Details, 3)

	rec = h.do(http.MethodPost, "/v1/auth/register", "", map[string]any{"email": "a@b.c", "surprise": true})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, sdk.ErrorCodeInvalidRequest, decode[sdk.ErrorResponse](t, rec).Error)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t, generousLimits())
	h.register("ada@example.com")

	for _, req := range []sdk.LoginRequest{
		{Email: "ada@example.com", Password: "wrong password"},
		{Email: "ghost@example.com", Password: "long enough"},
	} {
		rec := h.do(http.MethodPost, "/v1/auth/login", "", req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, sdk.ErrorCodeInvalidCredentials, decode[sdk.ErrorResponse](t, rec).Error)
	}
}

func TestProfileTokenErrors(t *testing.T) {
	h := newHarness(t, generousLimits())
	tok := h.register("ada@example.com").AccessToken

	t.Run("missing", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, `Bearer realm="storefront"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("garbage", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile", "not.a.jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode[sdk.ErrorResponse](t, rec)
		require.Equal(t, sdk.ErrorCodeInvalidToken, body.Error)
		require.Equal(t, "invalid token", body.ErrorDescription)
	})

	t.Run("expired", func(t *testing.T) {
		h.clock.t = h.clock.t.Add(time.Hour)
		rec := h.do(http.MethodGet, "/v1/profile", tok, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode[sdk.ErrorResponse](t, rec)
		require.Equal(t, sdk.ErrorCodeInvalidToken, body.Error)
		require.Equal(t, "token expired", body.ErrorDescription)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
	})
}

func TestLoginRateLimited(t *testing.T) {
	limits := generousLimits()
	limits.Strict.RequestsPerWindow = 2
	limits.Strict.Window = time.Hour
	limits.Strict.Burst = 2
	h := newHarness(t, limits)

	req := sdk.LoginRequest{Email: "ghost@example.com", Password: "whatever"}
	for range 2 {
		rec := h.do(http.MethodPost, "/v1/auth/login", "", req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := h.do(http.MethodPost, "/v1/auth/login", "", req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}
