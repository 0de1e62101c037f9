package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/pricing"
	"github.com/shopspring/decimal"
)

var ErrUnknownProduct = errors.New("unknown product")

// UnknownProductError names the cart line whose product is not in the
// catalog. It matches ErrUnknownProduct under errors.Is.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q", e.ProductID)
}

func (e *UnknownProductError) Is(target error) bool { return target == ErrUnknownProduct }

// ProductLookup is the slice of the product store checkout needs.
type ProductLookup interface {
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type CheckoutService struct {
	Products ProductLookup
	Engine   *pricing.Engine
}

// Quote prices a cart with unit prices taken from the catalog. Lines for the
// same product are merged in first-seen order. Quantities are checked before
// anything is looked up, and errors wrap pricing.ErrInvalidLineItem or
// ErrUnknownProduct.
func (s *CheckoutService) Quote(ctx context.Context, lines []domain.CartLine, promoCode string) (domain.Quote, error) {
	merged, err := mergeLines(lines)
	if err != nil {
		return domain.Quote{}, err
	}

	ids := make([]string, len(merged))
	for i, l := range merged {
		ids[i] = l.ProductID
	}
	catalog, err := s.Products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("load products: %w", err)
	}

	items := make([]pricing.LineItem, len(merged))
	quoted := make([]domain.QuotedLine, len(merged))
	for i, l := range merged {
		p, ok := catalog[l.ProductID]
		if !ok {
			return domain.Quote{}, &UnknownProductError{ProductID: l.ProductID}
		}
		items[i] = pricing.LineItem{ProductID: p.ID, UnitPrice: p.Price, Quantity: l.Quantity}
		quoted[i] = domain.QuotedLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  l.Quantity,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		}
	}

	b, err := s.Engine.PriceCart(items, promoCode)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{Lines: quoted, Breakdown: b}, nil
}

// mergeLines sums quantities per product. Every input line must be in
// [1, domain.MaxLineQuantity] and so must every merged total; the error
// names the input line that broke the rule.
func mergeLines(lines []domain.CartLine) ([]domain.CartLine, error) {
	out := make([]domain.CartLine, 0, len(lines))
	pos := make(map[string]int, len(lines))
	for i, l := range lines {
		switch {
		case l.Quantity < 1:
			return nil, invalidQuantity(i, l.ProductID, fmt.Sprintf("quantity %d is below 1", l.Quantity))
		case l.Quantity > domain.MaxLineQuantity:
			return nil, invalidQuantity(i, l.ProductID, fmt.Sprintf("quantity %d exceeds %d", l.Quantity, domain.MaxLineQuantity))
		}

		j, ok := pos[l.ProductID]
		if !ok {
			pos[l.ProductID] = len(out)
			out = append(out, l)
			continue
		}
		// Both operands are bounded, so the sum cannot overflow.
		if total := out[j].Quantity + l.Quantity; total > domain.MaxLineQuantity {
			return nil, invalidQuantity(i, l.ProductID, fmt.Sprintf("combined quantity %d exceeds %d", total, domain.MaxLineQuantity))
		}
		out[j].Quantity += l.Quantity
	}
	return out, nil
}

func invalidQuantity(index int, productID, reason string) error {
	return &pricing.InvalidLineItemError{Index: index, ProductID: productID, Reason: reason}
}
