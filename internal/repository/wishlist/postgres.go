package wishlist

import (
	"context"
	"io"
	"log"

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

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	const q = `
SELECT id::text, product_id::text, created_at
FROM wishlist_items
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("wishlist repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID string) error {
	const q = `
INSERT INTO wishlist_items (customer_id, product_id)
VALUES ($1, $2)
ON CONFLICT (customer_id, product_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, customerID, productID); err != nil {
		r.logger.Printf("wishlist repo: add customer_id=%s product_id=%s error=%v", customerID, productID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, customerID, productID string) error {
	const q = `DELETE FROM wishlist_items WHERE customer_id = $1 AND product_id = $2`
	if _, err := r.pool.Exec(ctx, q, customerID, productID); err != nil {
		r.logger.Printf("wishlist repo: remove customer_id=%s product_id=%s error=%v", customerID, productID, err)
		return err
	}
	return nil
}
