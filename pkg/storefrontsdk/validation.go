package storefrontsdk

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 64
	MaxCartItems      = 100
	MaxLineQuantity   = 10_000

	// MaxPriceCents caps a product price at 999,999,999.99.
	MaxPriceCents = 99_999_999_999

	requiredReason = "required"
)

// Validate checks the fields of a registration request. It returns a map of
// JSON field names to problems, or nil if the request is acceptable.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "email", r.Email)
	validateName(errs, "name", r.Name)
	validatePassword(errs, "password", r.Password)
	return nilIfEmpty(errs)
}

func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	return nilIfEmpty(errs)
}

func (r UpdateProfileRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Name == nil && r.Password == nil {
		errs["name"] = "name or password must be set"
		return errs
	}
	if r.Name != nil {
		validateName(errs, "name", *r.Name)
	}
	if r.Password != nil {
		validatePassword(errs, "password", *r.Password)
	}
	return nilIfEmpty(errs)
}

func (r ProductRequest) Validate() map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		errs["name"] = requiredReason
	case utf8.RuneCountInString(name) > 128:
		errs["name"] = "too long (max 128)"
	}

	if strings.TrimSpace(r.Category) == "" {
		errs["category"] = requiredReason
	}

	if r.Price == "" {
		errs["price"] = requiredReason
	} else if _, err := ParsePrice(r.Price); err != nil {
		errs["price"] = err.Error()
	}

	if r.CountInStock < 0 {
		errs["count_in_stock"] = "must not be negative"
	}
	return nilIfEmpty(errs)
}

// Validate rejects lines without a product or with a quantity outside
// [1, MaxLineQuantity]. An empty item list is valid and prices to zero.
func (r CartPriceRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if len(r.Items) > MaxCartItems {
		errs["items"] = fmt.Sprintf("too many items (max %d)", MaxCartItems)
		return errs
	}
	for i, it := range r.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			errs[fmt.Sprintf("items[%d].product_id", i)] = requiredReason
		}
		switch {
		case it.Quantity < 1:
			errs[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		case it.Quantity > MaxLineQuantity:
			errs[fmt.Sprintf("items[%d].quantity", i)] = fmt.Sprintf("must be at most %d", MaxLineQuantity)
		}
	}
	return nilIfEmpty(errs)
}

func (r BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, "admin_email", r.AdminEmail)
	validateName(errs, "admin_name", r.AdminName)
	validatePassword(errs, "admin_password", r.AdminPassword)
	return nilIfEmpty(errs)
}

// ParsePrice parses a non-negative decimal amount with at most two places,
// no larger than MaxPriceCents.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a decimal number")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("must not be negative")
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Decimal{}, fmt.Errorf("at most two decimal places")
	}
	if limit := decimal.New(MaxPriceCents, -2); d.GreaterThan(limit) {
		return decimal.Decimal{}, fmt.Errorf("must not exceed %s", limit.StringFixed(2))
	}
	return d, nil
}

func validateEmail(errs map[string]string, field, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs[field] = requiredReason
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs[field] = "not a valid email address"
	}
}

func validateName(errs map[string]string, field, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs[field] = requiredReason
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs[field] = fmt.Sprintf("too long (max %d)", MaxNameLength)
	}
}

func validatePassword(errs map[string]string, field, pw string) {
	n := utf8.RuneCountInString(pw)
	switch {
	case pw == "":
		errs[field] = requiredReason
	case n < MinPasswordLength:
		errs[field] = fmt.Sprintf("must be at least %d characters", MinPasswordLength)
	case n > MaxPasswordLength:
		errs[field] = fmt.Sprintf("too long (max %d)", MaxPasswordLength)
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
