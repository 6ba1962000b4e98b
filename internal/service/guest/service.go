package guest

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"venyr-storefront/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Service issues guest session tokens and owns the in-process guest
// carts tied to them. Guest state is deliberately not durable: it lives
// exactly as long as a browser's local cart would.
type Service struct {
	tokens *tokenManager
	carts  *cartStore
	ttl    time.Duration
}

func New() *Service {
	return &Service{
		tokens: newTokenManager(),
		carts:  newCartStore(),
		ttl:    30 * 24 * time.Hour,
	}
}

// Issue creates a new guest session and returns its bearer token.
func (s *Service) Issue() (token, guestID string, err error) {
	guestID = uuid.NewString()
	token, err = s.tokens.Issue(guestID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, guestID, nil
}

// LookupByToken resolves a guest token to its session id.
func (s *Service) LookupByToken(token string) (string, error) {
	guestID, ok := s.tokens.Validate(token)
	if !ok {
		return "", ErrInvalidToken
	}
	return guestID, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

// Cart operations, consumed by the cart service.

func (s *Service) Items(guestID string) []domain.CartItem {
	return s.carts.Items(guestID)
}

func (s *Service) AddItem(guestID string, product domain.Product, size string, quantity int) {
	s.carts.AddItem(guestID, product, size, quantity)
}

func (s *Service) SetQuantity(guestID, lineID string, quantity int) {
	s.carts.SetQuantity(guestID, lineID, quantity)
}

func (s *Service) RemoveItem(guestID, lineID string) {
	s.carts.RemoveItem(guestID, lineID)
}

func (s *Service) Clear(guestID string) {
	s.carts.Clear(guestID)
}
