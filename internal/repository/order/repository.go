package order

import (
	"context"
	"time"

	"venyr-storefront/internal/domain"
)

type CreateOrderInput struct {
	CustomerID *string
	TotalCents int64
	Currency   string
}

type Repository interface {
	// Insert creates the order row with status pending. Items are written
	// separately by InsertItems; the two are not atomic (see Delete).
	Insert(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	InsertItems(ctx context.Context, items []domain.OrderItem) error

	// Delete is the compensating action for a failed InsertItems. It is
	// never used outside that rollback.
	Delete(ctx context.Context, orderID string) error

	UpdateStatus(ctx context.Context, orderID, status string) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)

	// DeleteStalePending removes pending orders with zero items older
	// than maxAge. These are compensation leftovers: a crash between the
	// order insert and the item insert (or the rollback) strands them.
	DeleteStalePending(ctx context.Context, maxAge time.Duration) (int64, error)
}
