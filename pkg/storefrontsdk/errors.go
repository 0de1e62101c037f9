package storefrontsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in the "error" field of a response body.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeValidation          = "validation_error"
	ErrorCodeUnauthorized        = "unauthorized"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeEmailTaken          = "email_taken"
	ErrorCodeUnknownProduct      = "unknown_product"
	ErrorCodeInvalidLineItem     = "invalid_line_item"
	ErrorCodeAlreadyBootstrapped = "already_bootstrapped"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeServerError         = "server_error"
)

// APIError is a non-2xx response from the storefront API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	// Details is set for validation errors, keyed by JSON field name.
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("storefront: %d %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("storefront: %d %s", e.StatusCode, e.Code)
}

// IsTokenExpired reports whether err is the 401 answered for an expired token.
func IsTokenExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusUnauthorized &&
		apiErr.Code == ErrorCodeInvalidToken &&
		apiErr.Description == "token expired"
}

// HasCode reports whether err is an *APIError with the given status and code.
func HasCode(err error, status int, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status && apiErr.Code == code
}

// parseErrorResponse turns an error body into an *APIError. It returns nil
// for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
			Details:     valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
