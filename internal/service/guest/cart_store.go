package guest

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"venyr-storefront/internal/domain"
)

// cartStore holds guest carts in process memory, the server-side stand-in
// for client-local cart state. Lines are deduplicated on (product, size)
// and ids are synthesized, never server-assigned.
type cartStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartItem
}

func newCartStore() *cartStore {
	return &cartStore{
		carts: make(map[string][]domain.CartItem),
	}
}

func (s *cartStore) Items(guestID string) []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.carts[guestID]
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

func (s *cartStore) AddItem(guestID string, product domain.Product, size string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[guestID]
	for i := range items {
		if items[i].ProductID == product.ID && items[i].Size == size {
			items[i].Quantity += quantity
			items[i].Revision++
			return
		}
	}
	s.carts[guestID] = append(items, domain.CartItem{
		ID:         uuid.NewString(),
		ProductID:  product.ID,
		Name:       product.Name,
		PriceCents: product.PriceCents,
		ImageURL:   product.ImageURL,
		Category:   product.Category,
		Size:       size,
		Quantity:   quantity,
		Revision:   1,
		CreatedAt:  time.Now().UTC(),
	})
}

// SetQuantity sets the exact quantity; quantity < 1 removes the line.
// Missing lines are ignored, matching the remote store's semantics.
func (s *cartStore) SetQuantity(guestID, lineID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(guestID, lineID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[guestID]
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = quantity
			items[i].Revision++
			return
		}
	}
}

func (s *cartStore) RemoveItem(guestID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[guestID]
	for i := range items {
		if items[i].ID == lineID {
			s.carts[guestID] = append(items[:i], items[i+1:]...)
			return
		}
	}
}

func (s *cartStore) Clear(guestID string) {
	s.mu.Lock()
	delete(s.carts, guestID)
	s.mu.Unlock()
}
