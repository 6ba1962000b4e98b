package wishlist

import (
	"context"

	"venyr-storefront/internal/domain"
)

type Repository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
	// Add is idempotent: re-adding a wished product is a no-op.
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
}
