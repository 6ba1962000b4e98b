package cart

import (
	"context"

	"venyr-storefront/internal/domain"
)

// Repository persists authenticated customers' cart lines. Guest carts
// never touch this store.
type Repository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CartItem, error)
	GetLine(ctx context.Context, customerID, lineID string) (*domain.CartItem, error)

	// Upsert adds quantity to the (customer, product, size) line,
	// creating it when absent. Product display fields are captured on
	// first insert and kept as-is afterwards.
	Upsert(ctx context.Context, customerID string, product domain.Product, size string, quantity int) error

	// SetQuantity sets the exact quantity, guarded by the line revision:
	// domain.ErrStaleRevision is returned when the revision moved since
	// the caller read it. quantity < 1 deletes the line unconditionally.
	SetQuantity(ctx context.Context, customerID, lineID string, quantity, expectedRevision int) error

	// Delete removes a line. Deleting an absent line is not an error.
	Delete(ctx context.Context, customerID, lineID string) error

	// DeleteAll clears every line for the customer. Clearing an already
	// empty cart deletes zero rows and is not an error.
	DeleteAll(ctx context.Context, customerID string) error
}
