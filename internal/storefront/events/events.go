// Package events publishes catalog changes for downstream consumers such
// as search indexers.
package events

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
	ProductDeleted Type = "product.deleted"
)

// Event is one catalog change. Product is nil for deletions.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	ProductID  string          `json:"product_id"`
	Product    *domain.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
