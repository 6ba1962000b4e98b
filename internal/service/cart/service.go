package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"venyr-storefront/internal/domain"
)

// Owner identifies whose cart an operation targets. Exactly one of the
// two fields is set: customer carts live in Postgres, guest carts in the
// in-process guest store.
type Owner struct {
	CustomerID string
	GuestID    string
}

func (o Owner) isCustomer() bool { return o.CustomerID != "" }

type cartRepo interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.CartItem, error)
	GetLine(ctx context.Context, customerID, lineID string) (*domain.CartItem, error)
	Upsert(ctx context.Context, customerID string, product domain.Product, size string, quantity int) error
	SetQuantity(ctx context.Context, customerID, lineID string, quantity, expectedRevision int) error
	Delete(ctx context.Context, customerID, lineID string) error
	DeleteAll(ctx context.Context, customerID string) error
}

type guestCarts interface {
	Items(guestID string) []domain.CartItem
	AddItem(guestID string, product domain.Product, size string, quantity int)
	SetQuantity(guestID, lineID string, quantity int)
	RemoveItem(guestID, lineID string)
	Clear(guestID string)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service is the cart state manager: one cart abstraction over the two
// ownership modes, plus the guest-to-customer migration on login.
type Service struct {
	repo     cartRepo
	guests   guestCarts
	products productRepo
	logger   *log.Logger
}

func New(repo cartRepo, guests guestCarts, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, guests: guests, products: products, logger: logger}
}

// Get returns the owner's cart with derived totals.
func (s *Service) Get(ctx context.Context, owner Owner) (*domain.Cart, error) {
	if !owner.isCustomer() {
		return domain.NewCart(s.guests.Items(owner.GuestID)), nil
	}
	items, err := s.repo.ListByCustomer(ctx, owner.CustomerID)
	if err != nil {
		return nil, err
	}
	return domain.NewCart(items), nil
}

// AddItem adds quantity of a product to the cart, deduplicating on
// (product, size): an existing line's quantity is incremented rather
// than a second line created. Display fields are captured from the
// catalog at add-time. Customer mode re-reads the full cart after the
// write so the returned state is exactly what the store holds.
func (s *Service) AddItem(ctx context.Context, owner Owner, productID, size string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("productId required")
	}
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if size == "" {
		size = product.DefaultSize()
	}

	if !owner.isCustomer() {
		s.guests.AddItem(owner.GuestID, *product, size, quantity)
		return domain.NewCart(s.guests.Items(owner.GuestID)), nil
	}

	if err := s.repo.Upsert(ctx, owner.CustomerID, *product, size, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, owner)
}

// UpdateQuantity sets a line's quantity exactly; quantity < 1 removes
// the line. Customer writes are revision-guarded; a lost race re-reads
// the line and retries against the fresh revision.
func (s *Service) UpdateQuantity(ctx context.Context, owner Owner, lineID string, quantity, revision int) (*domain.Cart, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, errors.New("lineId required")
	}

	if !owner.isCustomer() {
		s.guests.SetQuantity(owner.GuestID, lineID, quantity)
		return domain.NewCart(s.guests.Items(owner.GuestID)), nil
	}

	const maxAttempts = 3
	for attempt := 0; ; attempt++ {
		err := s.repo.SetQuantity(ctx, owner.CustomerID, lineID, quantity, revision)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrNotFound) {
			// Line already gone; setting its quantity is a no-op,
			// same as removing a missing line.
			break
		}
		if !errors.Is(err, domain.ErrStaleRevision) || attempt+1 >= maxAttempts {
			return nil, err
		}
		line, err := s.repo.GetLine(ctx, owner.CustomerID, lineID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				break
			}
			return nil, err
		}
		revision = line.Revision
	}
	return s.Get(ctx, owner)
}

// RemoveItem deletes a line. Removing an absent line is not an error.
func (s *Service) RemoveItem(ctx context.Context, owner Owner, lineID string) (*domain.Cart, error) {
	if strings.TrimSpace(lineID) == "" {
		return nil, errors.New("lineId required")
	}

	if !owner.isCustomer() {
		s.guests.RemoveItem(owner.GuestID, lineID)
		return domain.NewCart(s.guests.Items(owner.GuestID)), nil
	}

	if err := s.repo.Delete(ctx, owner.CustomerID, lineID); err != nil {
		return nil, err
	}
	return s.Get(ctx, owner)
}

// Clear removes all of the owner's lines.
func (s *Service) Clear(ctx context.Context, owner Owner) error {
	if !owner.isCustomer() {
		s.guests.Clear(owner.GuestID)
		return nil
	}
	return s.repo.DeleteAll(ctx, owner.CustomerID)
}

// MergeIntoCustomer migrates a guest cart into a customer's remote cart
// on login, upserting each guest line with add-quantity semantics. Guest
// state is dropped only after every upsert succeeded, so a failed merge
// leaves the guest cart intact for retry.
func (s *Service) MergeIntoCustomer(ctx context.Context, guestID, customerID string) error {
	items := s.guests.Items(guestID)
	for _, item := range items {
		product := domain.Product{
			ID:         item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			ImageURL:   item.ImageURL,
			Category:   item.Category,
		}
		if err := s.repo.Upsert(ctx, customerID, product, item.Size, item.Quantity); err != nil {
			s.logger.Printf("cart merge: guest_id=%s customer_id=%s product_id=%s error=%v", guestID, customerID, item.ProductID, err)
			return err
		}
	}
	s.guests.Clear(guestID)
	return nil
}
