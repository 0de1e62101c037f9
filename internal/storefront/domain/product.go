package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("domain: invalid product")

// MaxPriceCents is the most a single product may cost, 999,999,999.99.
const MaxPriceCents = 99_999_999_999

// MaxPrice is MaxPriceCents as a decimal amount.
var MaxPrice = decimal.New(MaxPriceCents, -2)

type Product struct {
	ID           string
	Name         string
	Brand        string
	Category     string
	Description  string
	ImageURL     string
	Price        decimal.Decimal // whole cents, never negative
	CountInStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the fields a caller controls. The error wraps
// ErrInvalidProduct.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price is negative", ErrInvalidProduct)
	case !p.Price.Equal(p.Price.Round(2)):
		return fmt.Errorf("%w: price has sub-cent precision", ErrInvalidProduct)
	case p.Price.GreaterThan(MaxPrice):
		return fmt.Errorf("%w: price exceeds %s", ErrInvalidProduct, MaxPrice.StringFixed(2))
	case p.CountInStock < 0:
		return fmt.Errorf("%w: count in stock is negative", ErrInvalidProduct)
	}
	return nil
}

// ProductSort orders a catalog listing.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

// ParseProductSort maps a query value to a sort. Empty means SortNewest.
func ParseProductSort(s string) (ProductSort, error) {
	switch ProductSort(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc, SortPriceDesc, SortName:
		return ProductSort(s), nil
	}
	return "", fmt.Errorf("domain: unknown sort %q", s)
}

type ProductFilter struct {
	Category string // exact match; empty lists everything
	Sort     ProductSort
}
