package storefrontsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BootstrapTokenHeader carries the one-time bootstrap token.
const BootstrapTokenHeader = "X-Bootstrap-Token"

// Client talks to a storefront API. It covers the unauthenticated endpoints
// and creates Sessions for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var tok TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/register", req, nil, &tok, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var tok TokenResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.postJSON(ctx, "/v1/auth/login", req, nil, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// NewSessionFromToken wraps an access token obtained earlier.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, token: TokenResponse{AccessToken: accessToken, TokenType: "Bearer"}}
}

func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductListResponse, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	path := "/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var out ProductListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var out ProductResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceCart asks the server to price a cart against the current catalog.
// An unrecognized promo code is not an error: check Warning on the result.
func (c *Client) PriceCart(ctx context.Context, req CartPriceRequest) (*CartPriceResponse, error) {
	var out CartPriceResponse
	if err := c.postJSON(ctx, "/v1/cart/price", req, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Bootstrap creates the first admin account. It only succeeds once.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	var out BootstrapResponse
	headers := map[string]string{BootstrapTokenHeader: token}
	if err := c.postJSON(ctx, "/v1/bootstrap", req, headers, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service can reach its database.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *Client) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
