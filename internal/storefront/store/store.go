package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a transaction-scoped Store can hand out the same repos.
type Store interface {
	Users() Users
	Products() Products

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Optimize refreshes query planner statistics and truncates the
	// write-ahead log.
	Optimize(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the lower-cased address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile sets the display name and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, name string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Products interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// GetProductsByIDs returns the products that exist, keyed by id. Missing
	// ids are simply absent from the map.
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)

	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error

	// UpdateProduct replaces every mutable field. ErrNotFound if absent.
	UpdateProduct(ctx context.Context, p domain.Product) error

	// DeleteProduct returns ErrNotFound if nothing was deleted.
	DeleteProduct(ctx context.Context, id string) error
}
