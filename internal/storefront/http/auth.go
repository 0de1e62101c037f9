package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates an account and logs it in.
//
//	@Summary		Register
//	@Description	Creates a regular account and returns an access token for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.RegisterRequest			true	"New account"
//	@Success		201		{object}	storefrontsdk.TokenResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		409		{object}	storefrontsdk.ErrorResponse				"Email already registered"
//	@Failure		429		{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req sdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.AuthService.Register(r.Context(), req.Email, req.Name, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, toTokenResponse(sess))
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, sdk.ErrorCodeEmailTaken, "email already registered")
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
	default:
		writeServerError(w, r, "register failed", err)
	}
}

// HandleLogin exchanges an email and password for an access token.
//
//	@Summary		Login
//	@Description	Verifies the password and issues an HS256 access token. Unknown emails and wrong passwords get the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.LoginRequest				true	"Credentials"
//	@Success		200		{object}	storefrontsdk.TokenResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse				"Invalid email or password"
//	@Failure		429		{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req sdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, toTokenResponse(sess))
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, sdk.ErrorCodeInvalidCredentials, "invalid email or password")
	default:
		writeServerError(w, r, "login failed", err)
	}
}
