package wishlist

import (
	"context"
	"errors"
	"strings"

	"venyr-storefront/internal/domain"
	wishlistrepo "venyr-storefront/internal/repository/wishlist"
)

// Service manages a customer's wishlist. Wishlists are customer-only;
// guests keep theirs client-side.
type Service struct {
	repo wishlistrepo.Repository
}

func New(repo wishlistrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) Add(ctx context.Context, customerID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	return s.repo.Add(ctx, customerID, productID)
}

func (s *Service) Remove(ctx context.Context, customerID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	return s.repo.Remove(ctx, customerID, productID)
}
