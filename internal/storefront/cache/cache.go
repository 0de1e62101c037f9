// Package cache holds read-through caches in front of the store.
package cache

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var ErrCacheMiss = errors.New("cache: miss")

// ProductCache caches catalog entries by product id. The store stays the
// source of truth; entries are dropped on every write.
type ProductCache interface {
	Get(ctx context.Context, id string) (domain.Product, error)
	Set(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}
