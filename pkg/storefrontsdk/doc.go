/*
Package storefrontsdk is the Go client for the storefront API, and the home of
the request and response types the server speaks.

Unauthenticated calls hang off Client:

	c := storefrontsdk.NewClient("https://shop.example.com")

	products, err := c.ListProducts(ctx, storefrontsdk.ListProductsParams{Sort: "price_asc"})

	quote, err := c.PriceCart(ctx, storefrontsdk.CartPriceRequest{
		Items:     []storefrontsdk.CartItem{{ProductID: id, Quantity: 2}},
		PromoCode: "WELCOME10",
	})
	if quote.Warning != "" {
		// unrecognized promo code, the cart is still priced
	}

Logging in returns a Session carrying the bearer token:

	s, err := c.Login(ctx, "ada@example.com", "correct horse battery")
	me, err := s.Profile(ctx)

Errors from the server come back as *APIError. Use IsTokenExpired to tell an
expired session apart from a bad one.
*/
package storefrontsdk
