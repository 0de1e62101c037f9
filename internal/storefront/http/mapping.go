package http

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

const moneyPlaces = 2

func toUserResponse(u domain.User) sdk.UserResponse {
	return sdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toTokenResponse(s service.Session) sdk.TokenResponse {
	return sdk.TokenResponse{
		AccessToken: s.Token.Raw,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.Token.ExpiresAt.Sub(s.Token.IssuedAt).Seconds()),
		ExpiresAt:   s.Token.ExpiresAt,
		User:        toUserResponse(s.User),
	}
}

func toProductResponse(p domain.Product) sdk.ProductResponse {
	return sdk.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Price:        p.Price.StringFixed(moneyPlaces),
		CountInStock: p.CountInStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// fromProductRequest expects req to have passed Validate.
func fromProductRequest(req sdk.ProductRequest) (domain.Product, error) {
	price, err := sdk.ParsePrice(req.Price)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		Name:         req.Name,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Price:        price,
		CountInStock: req.CountInStock,
	}, nil
}

func toCartPriceResponse(q domain.Quote) sdk.CartPriceResponse {
	b := q.Breakdown
	lines := make([]sdk.CartLineResponse, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = sdk.CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(moneyPlaces),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.StringFixed(moneyPlaces),
		}
	}
	return sdk.CartPriceResponse{
		Lines:    lines,
		Subtotal: b.Subtotal.StringFixed(moneyPlaces),
		Shipping: b.Shipping.StringFixed(moneyPlaces),
		Tax:      b.Tax.StringFixed(moneyPlaces),
		Discount: b.Discount.StringFixed(moneyPlaces),
		Total:    b.Total.StringFixed(moneyPlaces),
		Promo:    sdk.PromoResponse{Code: b.PromoCode, Status: b.Promo.String()},
	}
}
