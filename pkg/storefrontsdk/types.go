package storefrontsdk

import "time"

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_request"`
	ErrorDescription string `json:"error_description,omitempty" example:"request body is not valid JSON"`
}

// ValidationErrorResponse lists per-field problems with a request body.
type ValidationErrorResponse struct {
	Code    string            `json:"code" example:"validation_error"`
	Message string            `json:"message" example:"validation failed for some fields"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Name     string `json:"name" example:"Ada"`
	Password string `json:"password" example:"correct horse battery"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"Bearer"`
	ExpiresIn   int64        `json:"expires_in" example:"2592000"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ============================================================================
// Profile
// ============================================================================

type UserResponse struct {
	ID        string    `json:"id" example:"usr_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Email     string    `json:"email" example:"ada@example.com"`
	Name      string    `json:"name" example:"Ada"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest changes whichever fields are set.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ============================================================================
// Products
// ============================================================================

// ProductRequest creates or replaces a product. Price is a decimal string
// with at most two places, e.g. "49.99".
type ProductRequest struct {
	Name         string `json:"name" example:"Linen shirt"`
	Brand        string `json:"brand" example:"Acme"`
	Category     string `json:"category" example:"shirts"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Price        string `json:"price" example:"49.99"`
	CountInStock int    `json:"count_in_stock" example:"12"`
}

type ProductResponse struct {
	ID           string    `json:"id" example:"prd_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Price        string    `json:"price" example:"49.99"`
	CountInStock int       `json:"count_in_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// ListProductsParams filter the catalog. Sort is one of newest (default),
// price_asc, price_desc or name.
type ListProductsParams struct {
	Category string
	Sort     string
}

// ============================================================================
// Cart
// ============================================================================

type CartItem struct {
	ProductID string `json:"product_id" example:"prd_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Quantity  int    `json:"quantity" example:"2"`
}

type CartPriceRequest struct {
	Items     []CartItem `json:"items"`
	PromoCode string     `json:"promo_code,omitempty" example:"WELCOME10"`
}

type CartLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price" example:"49.99"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total" example:"99.98"`
}

type PromoResponse struct {
	Code   string `json:"code,omitempty" example:"WELCOME10"`
	// Status is none, applied or unrecognized.
	Status string `json:"status" example:"applied"`
}

// CartPriceResponse is the priced cart. Money is rendered as fixed
// two-decimal strings.
type CartPriceResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal string             `json:"subtotal" example:"49.99"`
	Shipping string             `json:"shipping" example:"10.00"`
	Tax      string             `json:"tax" example:"3.50"`
	Discount string             `json:"discount" example:"5.00"`
	Total    string             `json:"total" example:"58.49"`
	Promo    PromoResponse      `json:"promo"`
	// Warning is set when the promo code was not recognized.
	Warning  string             `json:"warning,omitempty"`
}

// ============================================================================
// Bootstrap & health
// ============================================================================

type BootstrapRequest struct {
	AdminEmail    string `json:"admin_email" example:"admin@example.com"`
	AdminName     string `json:"admin_name" example:"Administrator"`
	AdminPassword string `json:"admin_password"`
}

type BootstrapResponse struct {
	AdminUserID string `json:"admin_user_id"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
