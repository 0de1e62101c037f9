package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, brand, category, description, image_url, price_cents, count_in_stock, created_at, updated_at`

type productsRepo struct {
	db  dbtx
	now func() time.Time
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) GetProductsByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *productsRepo) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY ` + orderBy(filter.Sort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// orderBy only ever returns one of these literals.
func orderBy(s domain.ProductSort) string {
	switch s {
	case domain.SortPriceAsc:
		return `price_cents ASC, id ASC`
	case domain.SortPriceDesc:
		return `price_cents DESC, id ASC`
	case domain.SortName:
		return `name COLLATE NOCASE ASC, id ASC`
	default:
		return `created_at DESC, id DESC`
	}
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	cents, err := toCents(p.Price)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.Brand,
		p.Category,
		p.Description,
		p.ImageURL,
		cents,
		p.CountInStock,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	cents, err := toCents(p.Price)
	if err != nil {
		return err
	}
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, brand = ?, category = ?, description = ?, image_url = ?,
		    price_cents = ?, count_in_stock = ?, updated_at = ?
		WHERE id = ?`,
		p.Name,
		p.Brand,
		p.Category,
		p.Description,
		p.ImageURL,
		cents,
		p.CountInStock,
		toMillis(r.now()),
		p.ID,
	))
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id))
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                domain.Product
		cents            int64
		created, updated int64
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Category,
		&p.Description,
		&p.ImageURL,
		&cents,
		&p.CountInStock,
		&created,
		&updated,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = fromCents(cents)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

// toCents refuses prices that are not whole cents or do not fit the
// price_cents column. The error wraps domain.ErrInvalidProduct.
func toCents(d decimal.Decimal) (int64, error) {
	c := d.Shift(2)
	if !c.IsInteger() || !c.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: price %s cannot be stored as cents", domain.ErrInvalidProduct, d.String())
	}
	return c.IntPart(), nil
}

func fromCents(c int64) decimal.Decimal { return decimal.New(c, -2) }
