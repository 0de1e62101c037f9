package storefrontsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated view of the API. Tokens are not refreshed:
// once the token expires every call fails with an error for which
// IsTokenExpired is true, and the caller logs in again.
type Session struct {
	client *Client
	token  TokenResponse
}

func newSession(c *Client, tok TokenResponse) *Session {
	return &Session{client: c, token: tok}
}

// AccessToken returns the bearer token this session sends.
func (s *Session) AccessToken() string { return s.token.AccessToken }

// ExpiresAt is zero for sessions built from a bare token.
func (s *Session) ExpiresAt() time.Time { return s.token.ExpiresAt }

// User is the profile returned at login or registration.
func (s *Session) User() UserResponse { return s.token.User }

func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, body, map[string]string{
		"Authorization": "Bearer " + s.token.AccessToken,
	})
}

func (s *Session) Profile(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/profile", nil)
	if err != nil {
		return nil, err
	}
	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.sendJSON(ctx, http.MethodPut, "/v1/profile", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct requires an admin session.
func (s *Session) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	var out ProductResponse
	if err := s.sendJSON(ctx, http.MethodPost, "/v1/products", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	var out ProductResponse
	path := "/v1/products/" + url.PathEscape(id)
	if err := s.sendJSON(ctx, http.MethodPut, path, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) sendJSON(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return decodeJSON(resp, out, expectedStatus)
}
