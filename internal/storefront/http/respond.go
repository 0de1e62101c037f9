package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// decodeAndValidate reads the body into req and runs its Validate method,
// answering 400 itself when either fails.
func decodeAndValidate[T interface{ Validate() map[string]string }](w http.ResponseWriter, r *http.Request, req *T) bool {
	if err := httpx.DecodeJSON(w, r, req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
		return false
	}
	if errs := (*req).Validate(); errs != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, sdk.ValidationErrorResponse{
			Code:    sdk.ErrorCodeValidation,
			Message: "validation failed for some fields",
			Details: errs,
		})
		return false
	}
	return true
}

func writeServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, sdk.ErrorCodeServerError, "")
}
