package storefrontsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginCarriesTokenIntoSession(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ada@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "tok-123",
			TokenType:   "Bearer",
			User:        UserResponse{ID: "usr_1", Email: req.Email},
		})
	})
	mux.HandleFunc("GET /v1/profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(UserResponse{ID: "usr_1", Name: "Ada"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	s, err := c.Login(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "tok-123", s.AccessToken())
	require.Equal(t, "usr_1", s.User().ID)

	me, err := s.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)
}

func TestErrorResponsesBecomeAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/profile":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"token expired"}`))
		case "/v1/cart/price":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"validation_error","message":"bad cart","details":{"items[0].quantity":"must be at least 1"}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	_, err := c.NewSessionFromToken("stale").Profile(context.Background())
	require.Error(t, err)
	require.True(t, IsTokenExpired(err))

	_, err = c.PriceCart(context.Background(), CartPriceRequest{Items: []CartItem{{ProductID: "p", Quantity: 0}}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, ErrorCodeValidation, apiErr.Code)
	require.Contains(t, apiErr.Details, "items[0].quantity")
	require.False(t, IsTokenExpired(err))

	_, err = c.GetLiveness(context.Background())
	require.True(t, HasCode(err, http.StatusBadGateway, ErrorCodeServerError))
}

func TestListProductsEncodesQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "shirts", r.URL.Query().Get("category"))
		require.Equal(t, "price_asc", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`{"products":[{"id":"prd_1","price":"49.99"}]}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL).ListProducts(context.Background(), ListProductsParams{Category: "shirts", Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	require.Equal(t, "49.99", out.Products[0].Price)
}

func TestDeleteProductExpectsNoContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/v1/products/prd_gone" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","error_description":"product not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewClient(srv.URL).NewSessionFromToken("admin")
	require.NoError(t, s.DeleteProduct(context.Background(), "prd_1"))

	err := s.DeleteProduct(context.Background(), "prd_gone")
	require.True(t, HasCode(err, http.StatusNotFound, ErrorCodeNotFound))
}

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	t.Run("register", func(t *testing.T) {
		require.Nil(t, RegisterRequest{Email: "ada@example.com", Name: "Ada", Password: "longenough"}.Validate())

		errs := RegisterRequest{Email: "Ada <ada@example.com>", Name: " ", Password: "short"}.Validate()
		require.Contains(t, errs, "email")
		require.Contains(t, errs, "name")
		require.Contains(t, errs, "password")
	})

	t.Run("update profile needs a field", func(t *testing.T) {
		require.Contains(t, UpdateProfileRequest{}.Validate(), "name")

		name := "Grace"
		require.Nil(t, UpdateProfileRequest{Name: &name}.Validate())
	})

	t.Run("product price", func(t *testing.T) {
		base := ProductRequest{Name: "Shirt", Category: "shirts", Price: "49.99"}
		require.Nil(t, base.Validate())

		for _, bad := range []string{"", "abc", "-1", "9.999", "1000000000.00", "100000000000000000000.00"} {
			p := base
			p.Price = bad
			require.Contains(t, p.Validate(), "price", bad)
		}
	})

	t.Run("cart", func(t *testing.T) {
		require.Nil(t, CartPriceRequest{}.Validate())

		errs := CartPriceRequest{Items: []CartItem{{ProductID: "a", Quantity: 1}, {ProductID: "", Quantity: 0}}}.Validate()
		require.Equal(t, map[string]string{
			"items[1].product_id": "required",
			"items[1].quantity":   "must be at least 1",
		}, errs)

		require.Nil(t, CartPriceRequest{Items: []CartItem{{ProductID: "a", Quantity: MaxLineQuantity}}}.Validate())
		errs = CartPriceRequest{Items: []CartItem{{ProductID: "a", Quantity: MaxLineQuantity + 1}}}.Validate()
		require.Equal(t, map[string]string{"items[0].quantity": "must be at most 10000"}, errs)
	})
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	d, err := ParsePrice(" 10.50 ")
	require.NoError(t, err)
	require.Equal(t, "10.50", d.StringFixed(2))

	_, err = ParsePrice("0.001")
	require.Error(t, err)

	d, err = ParsePrice("999999999.99")
	require.NoError(t, err)
	require.Equal(t, int64(MaxPriceCents), d.Shift(2).IntPart())

	_, err = ParsePrice("100000000000000000000.00")
	require.ErrorContains(t, err, "must not exceed 999999999.99")
}
