package pricing_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func item(id, price string, qty int) pricing.LineItem {
	return pricing.LineItem{ProductID: id, UnitPrice: decimal.RequireFromString(price), Quantity: qty}
}

// requireMoney compares a money field as it would be rendered.
func requireMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2), field)
}

func requireBreakdown(t *testing.T, b pricing.Breakdown, subtotal, shipping, tax, discount, total string) {
	t.Helper()
	requireMoney(t, subtotal, b.Subtotal, "subtotal")
	requireMoney(t, shipping, b.Shipping, "shipping")
	requireMoney(t, tax, b.Tax, "tax")
	requireMoney(t, discount, b.Discount, "discount")
	requireMoney(t, total, b.Total, "total")
}

func TestPriceCartWelcomeCode(t *testing.T) {
	e := pricing.Default()

	b, err := e.PriceCart([]pricing.LineItem{item("shirt", "49.99", 1)}, "WELCOME10")
	require.NoError(t, err)

	requireBreakdown(t, b, "49.99", "10.00", "3.50", "5.00", "58.49")
	require.Equal(t, pricing.PromoApplied, b.Promo)
	require.Equal(t, "WELCOME10", b.PromoCode)
}

func TestPriceCartUnrecognizedCode(t *testing.T) {
	e := pricing.Default()

	b, err := e.PriceCart([]pricing.LineItem{item("jacket", "60", 2)}, "BADCODE")
	require.NoError(t, err)

	requireBreakdown(t, b, "120.00", "0.00", "8.40", "0.00", "128.40")
	require.Equal(t, pricing.PromoUnrecognized, b.Promo)
}

func TestPriceCartNoCode(t *testing.T) {
	e := pricing.Default()

	b, err := e.PriceCart([]pricing.LineItem{item("sock", "5.25", 4)}, "")
	require.NoError(t, err)

	requireBreakdown(t, b, "21.00", "10.00", "1.47", "0.00", "32.47")
	require.Equal(t, pricing.PromoNone, b.Promo)
}

func TestPriceCartCodesAreCaseSensitive(t *testing.T) {
	e := pricing.Default()

	b, err := e.PriceCart([]pricing.LineItem{item("hat", "20", 1)}, "welcome10")
	require.NoError(t, err)
	require.Equal(t, pricing.PromoUnrecognized, b.Promo)
	requireMoney(t, "0.00", b.Discount, "discount")

	b, err = e.PriceCart([]pricing.LineItem{item("hat", "20", 1)}, " WELCOME10")
	require.NoError(t, err)
	require.Equal(t, pricing.PromoUnrecognized, b.Promo)
}

func TestPriceCartEmpty(t *testing.T) {
	e := pricing.Default()

	t.Run("no code", func(t *testing.T) {
		b, err := e.PriceCart(nil, "")
		require.NoError(t, err)
		// An empty cart owes nothing, shipping included.
		requireBreakdown(t, b, "0.00", "0.00", "0.00", "0.00", "0.00")
		require.Equal(t, pricing.PromoNone, b.Promo)
	})

	t.Run("with code", func(t *testing.T) {
		b, err := e.PriceCart([]pricing.LineItem{}, "SAVE20")
		require.NoError(t, err)
		requireBreakdown(t, b, "0.00", "0.00", "0.00", "0.00", "0.00")
		require.Equal(t, pricing.PromoApplied, b.Promo)
	})
}

func TestPriceCartFreeShippingBoundary(t *testing.T) {
	e := pricing.Default()

	t.Run("exactly threshold pays shipping", func(t *testing.T) {
		b, err := e.PriceCart([]pricing.LineItem{item("a", "100.00", 1)}, "")
		require.NoError(t, err)
		requireMoney(t, "10.00", b.Shipping, "shipping")
		requireMoney(t, "117.00", b.Total, "total")
	})

	t.Run("threshold built from several lines pays shipping", func(t *testing.T) {
		b, err := e.PriceCart([]pricing.LineItem{
			item("a", "33.33", 1),
			item("b", "33.33", 1),
			item("c", "33.34", 1),
		}, "")
		require.NoError(t, err)
		requireMoney(t, "100.00", b.Subtotal, "subtotal")
		requireMoney(t, "10.00", b.Shipping, "shipping")
	})

	t.Run("one cent above ships free", func(t *testing.T) {
		b, err := e.PriceCart([]pricing.LineItem{item("a", "100.01", 1)}, "")
		require.NoError(t, err)
		requireMoney(t, "0.00", b.Shipping, "shipping")
		requireMoney(t, "107.01", b.Total, "total")
	})

	t.Run("discount does not affect threshold", func(t *testing.T) {
		b, err := e.PriceCart([]pricing.LineItem{item("a", "100.01", 1)}, "SAVE20")
		require.NoError(t, err)
		requireMoney(t, "0.00", b.Shipping, "shipping")
		requireMoney(t, "20.00", b.Discount, "discount")
	})
}

func TestPriceCartNoFloatDrift(t *testing.T) {
	e := pricing.Default()

	// 0.1 + 0.2 in float64 is 0.30000000000000004.
	b, err := e.PriceCart([]pricing.LineItem{
		item("a", "0.10", 1),
		item("b", "0.20", 1),
	}, "")
	require.NoError(t, err)
	require.True(t, b.Subtotal.Equal(decimal.RequireFromString("0.3")))
	requireMoney(t, "0.02", b.Tax, "tax")
}

func TestPriceCartTotalAddsUp(t *testing.T) {
	e := pricing.Default()

	carts := [][]pricing.LineItem{
		{item("a", "19.99", 3)},
		{item("a", "0.01", 1)},
		{item("a", "12.35", 7), item("b", "0.99", 11)},
		{item("a", "250", 1), item("b", "0", 2)},
	}
	for _, cart := range carts {
		for _, code := range []string{"", "WELCOME10", "SAVE15", "NOPE"} {
			b, err := e.PriceCart(cart, code)
			require.NoError(t, err)

			sum := b.Subtotal.Add(b.Shipping).Add(b.Tax).Sub(b.Discount)
			require.True(t, sum.Equal(b.Total), "total %s != %s", b.Total, sum)
			require.False(t, b.Total.IsNegative())
		}
	}
}

func TestPriceCartTotalClampedAtZero(t *testing.T) {
	e, err := pricing.NewEngine(pricing.Rules{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.Zero,
		TaxRate:               decimal.Zero,
		Promotions:            map[string]int{"FREE": 100},
	})
	require.NoError(t, err)

	b, err := e.PriceCart([]pricing.LineItem{item("a", "42.00", 1)}, "FREE")
	require.NoError(t, err)
	requireMoney(t, "42.00", b.Discount, "discount")
	requireMoney(t, "0.00", b.Total, "total")
}

func TestPriceCartInvalidLineItem(t *testing.T) {
	e := pricing.Default()

	cases := []struct {
		name  string
		items []pricing.LineItem
		index int
	}{
		{"zero quantity", []pricing.LineItem{item("a", "10", 0)}, 0},
		{"negative quantity", []pricing.LineItem{item("a", "10", 1), item("b", "10", -3)}, 1},
		{"negative price", []pricing.LineItem{item("a", "10", 1), item("b", "1", 1), item("c", "-0.01", 1)}, 2},
		{"sub-cent price", []pricing.LineItem{item("a", "9.999", 1)}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := e.PriceCart(tc.items, "WELCOME10")
			require.ErrorIs(t, err, pricing.ErrInvalidLineItem)
			require.Equal(t, pricing.Breakdown{}, b)

			var lineErr *pricing.InvalidLineItemError
			require.True(t, errors.As(err, &lineErr))
			require.Equal(t, tc.index, lineErr.Index)
			require.Equal(t, tc.items[tc.index].ProductID, lineErr.ProductID)
		})
	}

	t.Run("trailing zeros are fine", func(t *testing.T) {
		_, err := e.PriceCart([]pricing.LineItem{item("a", "9.9900", 1)}, "")
		require.NoError(t, err)
	})
}

func TestPriceCartIsIdempotent(t *testing.T) {
	e := pricing.Default()
	items := []pricing.LineItem{item("a", "49.99", 1), item("b", "12.50", 3)}

	first, err := e.PriceCart(items, "WELCOME10")
	require.NoError(t, err)
	second, err := e.PriceCart(items, "WELCOME10")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBreakdownJSON(t *testing.T) {
	e := pricing.Default()

	b, err := e.PriceCart([]pricing.LineItem{item("shirt", "49.99", 1)}, "WELCOME10")
	require.NoError(t, err)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"subtotal": "49.99",
		"shipping": "10.00",
		"tax": "3.50",
		"discount": "5.00",
		"total": "58.49",
		"promo": {"code": "WELCOME10", "status": "applied"}
	}`, string(raw))
}

func TestNewEngineRejectsBadRules(t *testing.T) {
	rules := pricing.DefaultRules()
	rules.Promotions = map[string]int{"TOOMUCH": 101}
	_, err := pricing.NewEngine(rules)
	require.Error(t, err)

	rules = pricing.DefaultRules()
	rules.TaxRate = decimal.RequireFromString("-0.01")
	_, err = pricing.NewEngine(rules)
	require.Error(t, err)
}

func TestEngineOwnsPromotionTable(t *testing.T) {
	table := map[string]int{"TEMP": 50}
	rules := pricing.DefaultRules()
	rules.Promotions = table

	e, err := pricing.NewEngine(rules)
	require.NoError(t, err)

	table["TEMP"] = 0
	table["LATE"] = 90

	pct, ok := e.LookupPromotion("TEMP")
	require.True(t, ok)
	require.Equal(t, 50, pct)

	_, ok = e.LookupPromotion("LATE")
	require.False(t, ok)
}
