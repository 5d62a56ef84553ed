package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OrderStore = (*OrderRepo)(nil)

const orderColumns = `id, user_id, marketplace, external_id, product_sku, product_name,
	quantity, total_amount, status, ordered_at, created_at, updated_at`

// OrderRepo is the SQLite implementation of the OrderStore port interface.
type OrderRepo struct {
	db  *DB
	now func() time.Time
}

// NewOrderRepo creates a new OrderRepo backed by the given DB.
func NewOrderRepo(db *DB) *OrderRepo {
	return &OrderRepo{db: db, now: time.Now}
}

// Create inserts a new order. A zero OrderedAt defaults to the creation time.
func (r *OrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	const query = `INSERT INTO orders (user_id, marketplace, external_id, product_sku, product_name,
		quantity, total_amount, status, ordered_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := r.now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now
	if order.OrderedAt.IsZero() {
		order.OrderedAt = now
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		order.UserID, string(order.Marketplace), order.ExternalID, order.ProductSKU, order.ProductName,
		order.Quantity, order.TotalAmount.String(), string(order.Status),
		formatTime(order.OrderedAt), formatTime(order.CreatedAt), formatTime(order.UpdatedAt),
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	order.ID, err = result.LastInsertId()
	if err != nil {
		return model.Order{}, fmt.Errorf("last insert id: %w", err)
	}
	return order, nil
}

// Get returns the order with the given ID owned by userID.
func (r *OrderRepo) Get(ctx context.Context, userID, id int64) (model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? AND id = ?`
	order, err := scanOrder(r.db.Reader.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return model.Order{}, notFound(err, "order", id)
	}
	return order, nil
}

// List returns the user's orders matching filter, most recent first.
func (r *OrderRepo) List(ctx context.Context, userID int64, filter model.OrderFilter) ([]model.Order, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	if filter.Marketplace != "" {
		conds = append(conds, "marketplace = ?")
		args = append(args, string(filter.Marketplace))
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY ordered_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

// Update replaces the mutable fields of an existing order.
func (r *OrderRepo) Update(ctx context.Context, order model.Order) (model.Order, error) {
	const query = `UPDATE orders SET marketplace = ?, external_id = ?, product_sku = ?, product_name = ?,
		quantity = ?, total_amount = ?, status = ?, ordered_at = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	existing, err := r.Get(ctx, order.UserID, order.ID)
	if err != nil {
		return model.Order{}, err
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = existing.OrderedAt
	}
	order.CreatedAt = existing.CreatedAt
	order.UpdatedAt = r.now().UTC()

	result, err := r.db.Writer.ExecContext(ctx, query,
		string(order.Marketplace), order.ExternalID, order.ProductSKU, order.ProductName,
		order.Quantity, order.TotalAmount.String(), string(order.Status),
		formatTime(order.OrderedAt), formatTime(order.UpdatedAt),
		order.UserID, order.ID,
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("update order %d: %w", order.ID, err)
	}
	if err := requireAffected(result, "order", order.ID); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Delete removes the order with the given ID owned by userID.
func (r *OrderRepo) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM orders WHERE user_id = ? AND id = ?`
	result, err := r.db.Writer.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return requireAffected(result, "order", id)
}

// CountByStatus returns the number of orders per status for userID.
func (r *OrderRepo) CountByStatus(ctx context.Context, userID int64) (map[model.OrderStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM orders WHERE user_id = ? GROUP BY status`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.OrderStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[model.OrderStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order counts: %w", err)
	}

	return counts, nil
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	var marketplace, status, total, orderedAt, createdAt, updatedAt string
	if err := row.Scan(&o.ID, &o.UserID, &marketplace, &o.ExternalID, &o.ProductSKU, &o.ProductName,
		&o.Quantity, &total, &status, &orderedAt, &createdAt, &updatedAt); err != nil {
		return model.Order{}, err
	}
	o.Marketplace = model.Marketplace(marketplace)
	o.Status = model.OrderStatus(status)

	var err error
	if o.TotalAmount, err = parseDecimal(total); err != nil {
		return model.Order{}, err
	}
	if o.OrderedAt, err = parseTime(orderedAt); err != nil {
		return model.Order{}, fmt.Errorf("parse ordered_at: %w", err)
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Order{}, fmt.Errorf("parse created_at: %w", err)
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Order{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return o, nil
}
