package storefront_test

import (
	"net/http"
	"testing"

	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

// TestCatalogAdminLifecycle covers create, list, update and delete.
func TestCatalogAdminLifecycle(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	admin := bootstrapAdmin(t, client)

	shirt := createProduct(t, admin, "Linen shirt", "shirts", "49.99")
	createProduct(t, admin, "Wool socks", "socks", "9.50")
	createProduct(t, admin, "Oxford shirt", "shirts", "79.00")

	list, err := client.ListProducts(ctx, sdk.ListProductsParams{Category: "shirts", Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	require.Equal(t, "49.99", list.Products[0].Price)
	require.Equal(t, "79.00", list.Products[1].Price)

	updated, err := admin.UpdateProduct(ctx, shirt.ID, sdk.ProductRequest{
		Name:         "Linen shirt",
		Category:     "shirts",
		Price:        "44.99",
		CountInStock: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "44.99", updated.Price)

	got, err := client.GetProduct(ctx, shirt.ID)
	require.NoError(t, err)
	require.Equal(t, "44.99", got.Price)

	require.NoError(t, admin.DeleteProduct(ctx, shirt.ID))

	_, err = client.GetProduct(ctx, shirt.ID)
	assertAPIError(t, err, http.StatusNotFound, sdk.ErrorCodeNotFound)
}

// TestCatalogWritesNeedAdmin verifies shoppers cannot change the catalog.
func TestCatalogWritesNeedAdmin(t *testing.T) {
	client := setupContainer(t)
	bootstrapAdmin(t, client)
	shopper := registerShopper(t, client, "shopper@example.com")

	_, err := shopper.CreateProduct(t.Context(), sdk.ProductRequest{
		Name:     "Contraband",
		Category: "misc",
		Price:    "1.00",
	})
	assertAPIError(t, err, http.StatusForbidden, sdk.ErrorCodeForbidden)
}
