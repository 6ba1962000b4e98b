package cart

import (
	"context"
	"errors"
	"io"
	"log"

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

const lineColumns = `id::text, product_id::text, name, price_cents, COALESCE(image_url, ''), COALESCE(category, ''), size, quantity, revision, created_at`

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	q := `SELECT ` + lineColumns + ` FROM cart_items WHERE customer_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("cart repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := scanLine(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("cart repo: list rows customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) GetLine(ctx context.Context, customerID, lineID string) (*domain.CartItem, error) {
	q := `SELECT ` + lineColumns + ` FROM cart_items WHERE customer_id = $1 AND id = $2`
	var item domain.CartItem
	if err := scanLine(r.pool.QueryRow(ctx, q, customerID, lineID), &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get line customer_id=%s line_id=%s error=%v", customerID, lineID, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, customerID string, product domain.Product, size string, quantity int) error {
	const q = `
INSERT INTO cart_items (customer_id, product_id, size, quantity, name, price_cents, image_url, category)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))
ON CONFLICT (customer_id, product_id, size) DO UPDATE SET
    quantity = cart_items.quantity + EXCLUDED.quantity,
    revision = cart_items.revision + 1
`
	_, err := r.pool.Exec(ctx, q,
		customerID,
		product.ID,
		size,
		quantity,
		product.Name,
		product.PriceCents,
		product.ImageURL,
		product.Category,
	)
	if err != nil {
		r.logger.Printf("cart repo: upsert customer_id=%s product_id=%s error=%v", customerID, product.ID, err)
	}
	return err
}

func (r *postgresRepo) SetQuantity(ctx context.Context, customerID, lineID string, quantity, expectedRevision int) error {
	if quantity < 1 {
		return r.Delete(ctx, customerID, lineID)
	}

	const q = `
UPDATE cart_items
SET quantity = $1, revision = revision + 1
WHERE customer_id = $2 AND id = $3 AND revision = $4
`
	cmd, err := r.pool.Exec(ctx, q, quantity, customerID, lineID, expectedRevision)
	if err != nil {
		r.logger.Printf("cart repo: set quantity customer_id=%s line_id=%s error=%v", customerID, lineID, err)
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the line is gone or another writer bumped the
	// revision first.
	if _, err := r.GetLine(ctx, customerID, lineID); err != nil {
		return err
	}
	return domain.ErrStaleRevision
}

func (r *postgresRepo) Delete(ctx context.Context, customerID, lineID string) error {
	const q = `DELETE FROM cart_items WHERE customer_id = $1 AND id = $2`
	if _, err := r.pool.Exec(ctx, q, customerID, lineID); err != nil {
		r.logger.Printf("cart repo: delete customer_id=%s line_id=%s error=%v", customerID, lineID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context, customerID string) error {
	const q = `DELETE FROM cart_items WHERE customer_id = $1`
	if _, err := r.pool.Exec(ctx, q, customerID); err != nil {
		r.logger.Printf("cart repo: delete all customer_id=%s error=%v", customerID, err)
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLine(row rowScanner, item *domain.CartItem) error {
	return row.Scan(
		&item.ID,
		&item.ProductID,
		&item.Name,
		&item.PriceCents,
		&item.ImageURL,
		&item.Category,
		&item.Size,
		&item.Quantity,
		&item.Revision,
		&item.CreatedAt,
	)
}
