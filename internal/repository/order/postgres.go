package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venyr-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Insert(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	const q = `
INSERT INTO orders (customer_id, total_cents, currency, status)
VALUES ($1, $2, $3, 'pending')
RETURNING id::text, customer_id::text, total_cents, currency, status, created_at
`
	var o domain.Order
	var customerID *string
	err := r.pool.QueryRow(ctx, q, in.CustomerID, in.TotalCents, in.Currency).Scan(
		&o.ID,
		&customerID,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("order repo: insert total_cents=%d error=%v", in.TotalCents, err)
		return nil, err
	}
	o.CustomerID = customerID
	return &o, nil
}

func (r *postgresRepo) InsertItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO order_items (order_id, product_id, quantity, price_at_order_cents)
VALUES ($1, $2, $3, $4)
`
	for _, item := range items {
		if _, err := tx.Exec(ctx, q, item.OrderID, item.ProductID, item.Quantity, item.PriceAtOrderCents); err != nil {
			r.logger.Printf("order repo: insert items order_id=%s error=%v", item.OrderID, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, orderID string) error {
	const q = `DELETE FROM orders WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, orderID); err != nil {
		r.logger.Printf("order repo: delete order_id=%s error=%v", orderID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	const q = `UPDATE orders SET status = $1 WHERE id = $2`
	cmd, err := r.pool.Exec(ctx, q, status, orderID)
	if err != nil {
		r.logger.Printf("order repo: update status order_id=%s status=%s error=%v", orderID, status, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	const q = `
SELECT id::text, customer_id::text, total_cents, currency, status, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	var customerID *string
	err := r.pool.QueryRow(ctx, q, orderID).Scan(
		&o.ID,
		&customerID,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get order_id=%s error=%v", orderID, err)
		return nil, err
	}
	o.CustomerID = customerID

	const itemsQuery = `
SELECT id::text, order_id::text, product_id::text, quantity, price_at_order_cents
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtOrderCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, customer_id::text, total_cents, currency, status, created_at
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var cid *string
		if err := rows.Scan(&o.ID, &cid, &o.TotalCents, &o.Currency, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.CustomerID = cid
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) DeleteStalePending(ctx context.Context, maxAge time.Duration) (int64, error) {
	const q = `
DELETE FROM orders
WHERE status = 'pending'
  AND created_at < $1
  AND NOT EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id)
`
	cmd, err := r.pool.Exec(ctx, q, time.Now().UTC().Add(-maxAge))
	if err != nil {
		r.logger.Printf("order repo: delete stale pending error=%v", err)
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
