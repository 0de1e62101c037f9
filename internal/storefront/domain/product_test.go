package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductValidate(t *testing.T) {
	t.Parallel()

	ok := Product{Name: "Shirt", Category: "shirts", Price: decimal.RequireFromString("49.99")}
	require.NoError(t, ok.Validate())

	atMax := ok
	atMax.Price = MaxPrice
	require.NoError(t, atMax.Validate())

	cases := map[string]func(p *Product){
		"no name":        func(p *Product) { p.Name = "  " },
		"no category":    func(p *Product) { p.Category = "" },
		"negative":       func(p *Product) { p.Price = decimal.RequireFromString("-1") },
		"sub-cent":       func(p *Product) { p.Price = decimal.RequireFromString("1.005") },
		"negative stock": func(p *Product) { p.CountInStock = -1 },
		"too expensive":  func(p *Product) { p.Price = MaxPrice.Add(decimal.New(1, -2)) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := ok
			mutate(&p)
			require.ErrorIs(t, p.Validate(), ErrInvalidProduct)
		})
	}
}

func TestParseProductSort(t *testing.T) {
	t.Parallel()

	s, err := ParseProductSort("")
	require.NoError(t, err)
	require.Equal(t, SortNewest, s)

	s, err = ParseProductSort("price_desc")
	require.NoError(t, err)
	require.Equal(t, SortPriceDesc, s)

	_, err = ParseProductSort("PRICE_DESC")
	require.Error(t, err)
}
