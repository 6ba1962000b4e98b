package product

import (
	"context"

	"venyr-storefront/internal/domain"
)

// ListFilter narrows and orders catalog listings. Zero value lists
// everything, newest first.
type ListFilter struct {
	Category string
	Sort     string // "price_asc", "price_desc" or "newest"
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
