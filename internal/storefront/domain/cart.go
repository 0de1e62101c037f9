package domain

import (
	"github.com/aussiebroadwan/storefront/pkg/pricing"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the quantity of one product in a cart, after
// duplicate lines are merged.
const MaxLineQuantity = 10_000

// CartLine is what a shopper asks for. Prices come from the catalog, never
// from the client.
type CartLine struct {
	ProductID string
	Quantity  int
}

// QuotedLine is a cart line resolved against the catalog.
type QuotedLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines     []QuotedLine
	Breakdown pricing.Breakdown
}
