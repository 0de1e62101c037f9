package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/cache"
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/events"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = domain.ErrInvalidProduct
)

type ProductService struct {
	Store store.Store
	Now   func() time.Time

	// Optional. Cache failures degrade to store reads; publish failures
	// are logged and never fail the write.
	Cache  cache.ProductCache
	Events events.Publisher

	sfg singleflight.Group // collapses concurrent reads of one product
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	if s.Cache != nil {
		p, err := s.Cache.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slogx.FromContext(ctx).Warn("product cache read failed", "product_id", id, "error", err)
		}
	}

	v, err, _ := s.sfg.Do(id, func() (any, error) {
		p, err := s.Store.Products().GetProductByID(ctx, id)
		if err == nil && s.Cache != nil {
			if err := s.Cache.Set(ctx, p); err != nil {
				slogx.FromContext(ctx).Warn("product cache write failed", "product_id", id, "error", err)
			}
		}
		return p, err
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}

// Create assigns an id and timestamps to p and stores it.
func (s *ProductService) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p = trimProduct(p)
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	now := nowOr(s.Now)
	p.ID = idx.NewAt(idx.KindProduct, now).String()
	p.CreatedAt, p.UpdatedAt = now, now

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	slogx.FromContext(ctx).Info("product created", slog.String("product_id", p.ID))
	s.publish(ctx, events.ProductCreated, p.ID, &p)
	return p, nil
}

// Update replaces the mutable fields of product id with those of p.
func (s *ProductService) Update(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	p = trimProduct(p)
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	p.ID = id

	var out domain.Product
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Products().UpdateProduct(ctx, p); err != nil {
			return err
		}
		got, err := tx.Products().GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		out = got
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}

	s.invalidate(ctx, id)
	slogx.FromContext(ctx).Info("product updated", slog.String("product_id", id))
	s.publish(ctx, events.ProductUpdated, id, &out)
	return out, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	err := s.Store.Products().DeleteProduct(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	slogx.FromContext(ctx).Info("product deleted", slog.String("product_id", id))
	s.publish(ctx, events.ProductDeleted, id, nil)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	s.sfg.Forget(id)
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, id); err != nil {
		slogx.FromContext(ctx).Error("product cache invalidation failed", "product_id", id, "error", err)
	}
}

func (s *ProductService) publish(ctx context.Context, typ events.Type, id string, p *domain.Product) {
	if s.Events == nil {
		return
	}
	now := nowOr(s.Now)
	e := events.Event{
		ID:         idx.NewAt(idx.KindEvent, now).String(),
		Type:       typ,
		ProductID:  id,
		Product:    p,
		OccurredAt: now,
	}
	if err := s.Events.Publish(ctx, e); err != nil {
		slogx.FromContext(ctx).Warn("catalog event not published", "type", typ, "product_id", id, "error", err)
	}
}

func trimProduct(p domain.Product) domain.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Category = strings.TrimSpace(p.Category)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	return p
}
