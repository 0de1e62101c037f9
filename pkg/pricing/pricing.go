// Package pricing computes cart price breakdowns: subtotal, shipping, tax,
// promotion discount and total. It is a pure calculator. It has no clock,
// no catalog and no state beyond the rules it was built with, so it is
// safe for concurrent use.
package pricing

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/shopspring/decimal"
)

// moneyPlaces is where every breakdown field is rounded, and the most
// precision a unit price may carry.
const moneyPlaces = 2

// LineItem is one product and quantity in a cart.
type LineItem struct {
	ProductID string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown is the result of pricing a cart. All money fields are rounded
// to cents and Total == Subtotal + Shipping + Tax - Discount (floored at 0).
type Breakdown struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal

	PromoCode string
	Promo     PromoStatus
}

// MarshalJSON renders money as fixed two-decimal strings so the output is
// stable byte for byte and never goes through a float.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	type promo struct {
		Code   string      `json:"code,omitempty"`
		Status PromoStatus `json:"status"`
	}
	return json.Marshal(struct {
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Tax      string `json:"tax"`
		Discount string `json:"discount"`
		Total    string `json:"total"`
		Promo    promo  `json:"promo"`
	}{
		Subtotal: b.Subtotal.StringFixed(moneyPlaces),
		Shipping: b.Shipping.StringFixed(moneyPlaces),
		Tax:      b.Tax.StringFixed(moneyPlaces),
		Discount: b.Discount.StringFixed(moneyPlaces),
		Total:    b.Total.StringFixed(moneyPlaces),
		Promo:    promo{Code: b.PromoCode, Status: b.Promo},
	})
}

// Rules are the business constants the engine prices with.
type Rules struct {
	// FreeShippingThreshold: subtotals strictly above it ship free.
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	// TaxRate applies to the subtotal only, never to shipping or after discount.
	TaxRate decimal.Decimal
	// Promotions maps an exact code to a percentage in [0, 100].
	Promotions map[string]int
}

// DefaultRules returns the storefront's fixed pricing rules.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.07"),
		Promotions:            DefaultPromotions(),
	}
}

// Engine prices carts under a fixed set of Rules.
type Engine struct {
	rules Rules
}

// NewEngine validates rules and returns an engine that owns a private copy
// of the promotion table.
func NewEngine(rules Rules) (*Engine, error) {
	if rules.FreeShippingThreshold.IsNegative() ||
		rules.FlatShippingFee.IsNegative() ||
		rules.TaxRate.IsNegative() {
		return nil, fmt.Errorf("pricing: rules must not be negative")
	}
	for code, pct := range rules.Promotions {
		if code == "" {
			return nil, fmt.Errorf("pricing: empty promotion code")
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("pricing: promotion %q has percentage %d outside [0, 100]", code, pct)
		}
	}

	rules.Promotions = maps.Clone(rules.Promotions)
	return &Engine{rules: rules}, nil
}

// Default returns an engine built from DefaultRules.
func Default() *Engine {
	e, err := NewEngine(DefaultRules())
	if err != nil {
		panic(err)
	}
	return e
}

// LookupPromotion returns the percentage for code and whether it exists.
func (e *Engine) LookupPromotion(code string) (int, bool) {
	pct, ok := e.rules.Promotions[code]
	return pct, ok
}

// PriceCart validates every item, then prices the cart. An empty promoCode
// means none was supplied. An unknown code is not an error: the breakdown
// comes back with no discount and Promo set to PromoUnrecognized.
func (e *Engine) PriceCart(items []LineItem, promoCode string) (Breakdown, error) {
	for i, item := range items {
		if err := validateItem(i, item); err != nil {
			return Breakdown{}, err
		}
	}

	out := Breakdown{PromoCode: promoCode}

	var pct int
	if promoCode != "" {
		if p, ok := e.LookupPromotion(promoCode); ok {
			pct = p
			out.Promo = PromoApplied
		} else {
			out.Promo = PromoUnrecognized
		}
	}

	zero := decimal.Zero
	if len(items) == 0 {
		out.Subtotal, out.Shipping, out.Tax, out.Discount, out.Total = zero, zero, zero, zero, zero
		return out, nil
	}

	// Exact arithmetic until the very end.
	subtotal := zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := e.rules.FlatShippingFee
	if subtotal.GreaterThan(e.rules.FreeShippingThreshold) {
		shipping = zero
	}

	tax := subtotal.Mul(e.rules.TaxRate)
	discount := subtotal.Mul(decimal.NewFromInt(int64(pct))).Shift(-2)

	out.Subtotal = subtotal.Round(moneyPlaces)
	out.Shipping = shipping.Round(moneyPlaces)
	out.Tax = tax.Round(moneyPlaces)
	out.Discount = discount.Round(moneyPlaces)

	total := out.Subtotal.Add(out.Shipping).Add(out.Tax).Sub(out.Discount)
	if total.IsNegative() {
		total = zero
	}
	out.Total = total

	return out, nil
}

func validateItem(i int, item LineItem) error {
	switch {
	case item.Quantity < 1:
		return &InvalidLineItemError{Index: i, ProductID: item.ProductID, Reason: fmt.Sprintf("quantity %d is below 1", item.Quantity)}
	case item.UnitPrice.IsNegative():
		return &InvalidLineItemError{Index: i, ProductID: item.ProductID, Reason: "unit price is negative"}
	case item.UnitPrice.Exponent() < -moneyPlaces && !item.UnitPrice.Equal(item.UnitPrice.Round(moneyPlaces)):
		return &InvalidLineItemError{Index: i, ProductID: item.ProductID, Reason: "unit price has sub-cent precision"}
	}
	return nil
}
