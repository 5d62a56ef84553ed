package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProductStore = (*ProductRepo)(nil)

const productColumns = `id, user_id, marketplace, sku, name, description, price, stock, created_at, updated_at`

// ProductRepo is the SQLite implementation of the ProductStore port interface.
type ProductRepo struct {
	db  *DB
	now func() time.Time
}

// NewProductRepo creates a new ProductRepo backed by the given DB.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db, now: time.Now}
}

// Create inserts a new product. Returns model.ErrAlreadyExists on a duplicate SKU.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	const query = `INSERT INTO products (user_id, marketplace, sku, name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := r.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	result, err := r.db.Writer.ExecContext(ctx, query,
		p.UserID, string(p.Marketplace), p.SKU, p.Name, p.Description, p.Price.String(), p.Stock,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, fmt.Errorf("product %s/%s: %w", p.Marketplace, p.SKU, model.ErrAlreadyExists)
		}
		return model.Product{}, fmt.Errorf("create product %s/%s: %w", p.Marketplace, p.SKU, err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return model.Product{}, fmt.Errorf("last insert id: %w", err)
	}
	return p, nil
}

// Get returns the product with the given ID owned by userID.
func (r *ProductRepo) Get(ctx context.Context, userID, id int64) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = ? AND id = ?`
	p, err := scanProduct(r.db.Reader.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return model.Product{}, notFound(err, "product", id)
	}
	return p, nil
}

// List returns the user's products ordered by marketplace and SKU. An empty
// marketplace lists all of them.
func (r *ProductRepo) List(ctx context.Context, userID int64, marketplace model.Marketplace) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = ?`
	args := []any{userID}
	if marketplace != "" {
		query += ` AND marketplace = ?`
		args = append(args, string(marketplace))
	}
	query += ` ORDER BY marketplace, sku`

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// Update replaces the mutable fields of an existing product.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) (model.Product, error) {
	const query = `UPDATE products SET marketplace = ?, sku = ?, name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	existing, err := r.Get(ctx, p.UserID, p.ID)
	if err != nil {
		return model.Product{}, err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = r.now().UTC()

	result, err := r.db.Writer.ExecContext(ctx, query,
		string(p.Marketplace), p.SKU, p.Name, p.Description, p.Price.String(), p.Stock, formatTime(p.UpdatedAt),
		p.UserID, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, fmt.Errorf("product %s/%s: %w", p.Marketplace, p.SKU, model.ErrAlreadyExists)
		}
		return model.Product{}, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if err := requireAffected(result, "product", p.ID); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Delete removes the product with the given ID owned by userID.
func (r *ProductRepo) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM products WHERE user_id = ? AND id = ?`
	result, err := r.db.Writer.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return requireAffected(result, "product", id)
}

// Count returns the number of products owned by userID.
func (r *ProductRepo) Count(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM products WHERE user_id = ?`
	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var marketplace, price, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.UserID, &marketplace, &p.SKU, &p.Name, &p.Description,
		&price, &p.Stock, &createdAt, &updatedAt); err != nil {
		return model.Product{}, err
	}
	p.Marketplace = model.Marketplace(marketplace)

	var err error
	if p.Price, err = parseDecimal(price); err != nil {
		return model.Product{}, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Product{}, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Product{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return p, nil
}
