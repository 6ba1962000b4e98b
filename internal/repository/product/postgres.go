package product

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

const productColumns = `id::text, name, COALESCE(description, ''), price_cents, currency, category, COALESCE(image_url, ''), sizes, featured, created_at`

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	var args []interface{}
	if filter.Category != "" {
		q += ` WHERE category = $1`
		args = append(args, filter.Category)
	}
	switch filter.Sort {
	case "price_asc":
		q += ` ORDER BY price_cents ASC`
	case "price_desc":
		q += ` ORDER BY price_cents DESC`
	default:
		q += ` ORDER BY created_at DESC`
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list category=%q error=%v", filter.Category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows category=%q error=%v", filter.Category, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, description, price_cents, currency, category, image_url, sizes, featured)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), COALESCE($8, '[]'::jsonb), $9)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url,
    sizes = EXCLUDED.sizes,
    featured = EXCLUDED.featured
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.Category,
		product.ImageURL,
		product.Sizes,
		product.Featured,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", product.Name, err)
		return nil, err
	}
	return &res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.Currency,
		&p.Category,
		&p.ImageURL,
		&p.Sizes,
		&p.Featured,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
