package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/pricing"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type CartHandler struct {
	CheckoutService *service.CheckoutService
}

// ServeHTTP prices a cart against the current catalog.
//
//	@Summary		Price a cart
//	@Description	Resolves unit prices from the catalog and returns subtotal, shipping, tax, discount and total as two-decimal strings.
//	@Description	An unrecognized promo code is not an error: the cart is priced without a discount, promo.status is "unrecognized" and warning is set.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.CartPriceRequest			true	"Cart"
//	@Success		200		{object}	storefrontsdk.CartPriceResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body, or a quantity below 1"
//	@Failure		422		{object}	storefrontsdk.ErrorResponse				"A product is not in the catalog"
//	@Router			/v1/cart/price [post].
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sdk.CartPriceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lines := make([]domain.CartLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = domain.CartLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	q, err := h.CheckoutService.Quote(r.Context(), lines, req.PromoCode)
	if err != nil {
		var unknown *service.UnknownProductError
		switch {
		case errors.As(err, &unknown):
			httpx.WriteError(w, http.StatusUnprocessableEntity, sdk.ErrorCodeUnknownProduct,
				fmt.Sprintf("product %s is not in the catalog", unknown.ProductID))
		case errors.Is(err, pricing.ErrInvalidLineItem):
			httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidLineItem, err.Error())
		default:
			writeServerError(w, r, "price cart failed", err)
		}
		return
	}

	resp := toCartPriceResponse(q)
	if q.Breakdown.Promo == pricing.PromoUnrecognized {
		resp.Warning = fmt.Sprintf("promo code %q is not recognized", req.PromoCode)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
