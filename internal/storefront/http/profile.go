package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// HandleGet returns the caller's profile.
//
//	@Summary		Get profile
//	@Tags			Profile
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	storefrontsdk.UserResponse
//	@Failure		401	{object}	storefrontsdk.ErrorResponse	"Missing, invalid or expired token"
//	@Failure		404	{object}	storefrontsdk.ErrorResponse	"Account no longer exists"
//	@Router			/v1/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())

	u, err := h.UserService.GetUserByID(r.Context(), userID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, sdk.ErrorCodeNotFound, "user not found")
	default:
		writeServerError(w, r, "get profile failed", err)
	}
}

// HandleUpdate changes the caller's name and/or password.
//
//	@Summary		Update profile
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		storefrontsdk.UpdateProfileRequest		true	"Fields to change"
//	@Success		200		{object}	storefrontsdk.UserResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse				"Missing, invalid or expired token"
//	@Failure		404		{object}	storefrontsdk.ErrorResponse				"Account no longer exists"
//	@Router			/v1/profile [put].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.SubjectFromContext(r.Context())

	var req sdk.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), userID, req.Name, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, sdk.ErrorCodeNotFound, "user not found")
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
	default:
		writeServerError(w, r, "update profile failed", err)
	}
}
