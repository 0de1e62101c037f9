package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the storefront
//	@Description	Creates the first admin account. Only available when a bootstrap token is configured, and only while no account exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string									true	"Bootstrap token for authorization"
//	@Param			request				body		storefrontsdk.BootstrapRequest			true	"First admin"
//	@Success		201					{object}	storefrontsdk.BootstrapResponse
//	@Failure		400					{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	storefrontsdk.ErrorResponse				"Missing or invalid bootstrap token"
//	@Failure		404					{object}	storefrontsdk.ErrorResponse				"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	storefrontsdk.ErrorResponse				"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		httpx.WriteError(w, http.StatusNotFound, sdk.ErrorCodeNotFound, "bootstrap endpoint is not enabled")
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get(sdk.BootstrapTokenHeader)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, sdk.ErrorCodeUnauthorized,
			"bootstrap token is required in "+sdk.BootstrapTokenHeader+" header")
		return
	}

	// 3. Parse request body and validate
	var req sdk.BootstrapRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// 4. Perform bootstrap
	adminID, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		AdminEmail:    req.AdminEmail,
		AdminName:     req.AdminName,
		AdminPassword: req.AdminPassword,
	})
	switch {
	case err == nil:
		l.Info("bootstrap complete", "admin_user_id", adminID)
		httpx.WriteJSON(w, http.StatusCreated, sdk.BootstrapResponse{AdminUserID: adminID})
	case errors.Is(err, service.ErrBootstrapAlready):
		httpx.WriteError(w, http.StatusConflict, sdk.ErrorCodeAlreadyBootstrapped, "system has already been bootstrapped")
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, sdk.ErrorCodeUnauthorized, "invalid bootstrap token")
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
	default:
		writeServerError(w, r, "bootstrap failed", err)
	}
}
