package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type ProductsHandler struct {
	ProductService *service.ProductService
}

// HandleList lists the catalog.
//
//	@Summary		List products
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string	false	"Exact category match"
//	@Param			sort		query		string	false	"newest (default), price_asc, price_desc or name"
//	@Success		200			{object}	storefrontsdk.ProductListResponse
//	@Failure		400			{object}	storefrontsdk.ErrorResponse	"Unknown sort"
//	@Router			/v1/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := domain.ParseProductSort(q.Get("sort"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, "unknown sort")
		return
	}

	products, err := h.ProductService.List(r.Context(), domain.ProductFilter{
		Category: q.Get("category"),
		Sort:     sort,
	})
	if err != nil {
		writeServerError(w, r, "list products failed", err)
		return
	}

	out := sdk.ProductListResponse{Products: make([]sdk.ProductResponse, len(products))}
	for i, p := range products {
		out.Products[i] = toProductResponse(p)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one product.
//
//	@Summary		Get product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	storefrontsdk.ProductResponse
//	@Failure		404	{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/products/{id} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	p, err := h.ProductService.Get(r.Context(), id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(p))
	case errors.Is(err, service.ErrProductNotFound):
		writeProductNotFound(w)
	default:
		writeServerError(w, r, "get product failed", err)
	}
}

// HandleCreate adds a product to the catalog.
//
//	@Summary		Create product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		storefrontsdk.ProductRequest			true	"Product"
//	@Success		201		{object}	storefrontsdk.ProductResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse
//	@Failure		403		{object}	storefrontsdk.ErrorResponse	"Caller is not an admin"
//	@Router			/v1/products [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req sdk.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := fromProductRequest(req)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
		return
	}

	p, err := h.ProductService.Create(r.Context(), in)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, toProductResponse(p))
	case errors.Is(err, service.ErrInvalidProduct):
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
	default:
		writeServerError(w, r, "create product failed", err)
	}
}

// HandleUpdate replaces a product's fields.
//
//	@Summary		Update product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string									true	"Product ID"
//	@Param			request	body		storefrontsdk.ProductRequest			true	"Product"
//	@Success		200		{object}	storefrontsdk.ProductResponse
//	@Failure		400		{object}	storefrontsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse
//	@Failure		403		{object}	storefrontsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404		{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/products/{id} [put].
func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req sdk.ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	in, err := fromProductRequest(req)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
		return
	}

	p, err := h.ProductService.Update(r.Context(), id, in)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, toProductResponse(p))
	case errors.Is(err, service.ErrProductNotFound):
		writeProductNotFound(w)
	case errors.Is(err, service.ErrInvalidProduct):
		httpx.WriteError(w, http.StatusBadRequest, sdk.ErrorCodeInvalidRequest, err.Error())
	default:
		writeServerError(w, r, "update product failed", err)
	}
}

// HandleDelete removes a product.
//
//	@Summary		Delete product
//	@Tags			Products
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Product ID"
//	@Success		204
//	@Failure		401	{object}	storefrontsdk.ErrorResponse
//	@Failure		403	{object}	storefrontsdk.ErrorResponse	"Caller is not an admin"
//	@Failure		404	{object}	storefrontsdk.ErrorResponse
//	@Router			/v1/products/{id} [delete].
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	err := h.ProductService.Delete(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrProductNotFound):
		writeProductNotFound(w)
	default:
		writeServerError(w, r, "delete product failed", err)
	}
}

// productID answers 404 for anything that cannot be a product id.
func productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(idx.KindProduct, r.PathValue("id"))
	if err != nil {
		writeProductNotFound(w)
		return "", false
	}
	return id.String(), true
}

func writeProductNotFound(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusNotFound, sdk.ErrorCodeNotFound, "product not found")
}
