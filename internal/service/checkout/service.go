package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"venyr-storefront/internal/domain"
	"venyr-storefront/internal/payment"
	orderrepo "venyr-storefront/internal/repository/order"
)

type orderRepo interface {
	Insert(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	InsertItems(ctx context.Context, items []domain.OrderItem) error
	Delete(ctx context.Context, orderID string) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type cartClearer interface {
	DeleteAll(ctx context.Context, customerID string) error
}

type sessionCreator interface {
	CreateSession(ctx context.Context, in payment.CreateSessionInput) (*payment.Session, error)
}

// Service converts cart snapshots into orders, hands them to the payment
// bridge and reconciles order state when the processor redirects back.
type Service struct {
	orders   orderRepo
	carts    cartClearer
	sessions sessionCreator
	logger   *log.Logger

	publicBaseURL string
	currency      string
}

func New(orders orderRepo, carts cartClearer, sessions sessionCreator, publicBaseURL, currency string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:        orders,
		carts:         carts,
		sessions:      sessions,
		logger:        logger,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		currency:      currency,
	}
}

// CreateOrder persists an order plus its items as a best-effort two-step
// write. The total is computed from the snapshot and never revalidated
// against live catalog prices; each item carries the snapshot price as
// price_at_order. If the item insert fails the order insert is rolled
// back by a compensating delete, attempted exactly once. The cart is not
// cleared here: a failed or abandoned payment must leave it intact.
func (s *Service) CreateOrder(ctx context.Context, customerID *string, snapshot []domain.CartItem) (*domain.Order, error) {
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	var total int64
	for _, item := range snapshot {
		total += item.PriceCents * int64(item.Quantity)
	}

	order, err := s.orders.Insert(ctx, orderrepo.CreateOrderInput{
		CustomerID: customerID,
		TotalCents: total,
		Currency:   s.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	items := make([]domain.OrderItem, 0, len(snapshot))
	for _, line := range snapshot {
		items = append(items, domain.OrderItem{
			OrderID:           order.ID,
			ProductID:         line.ProductID,
			Quantity:          line.Quantity,
			PriceAtOrderCents: line.PriceCents,
		})
	}

	if err := s.orders.InsertItems(ctx, items); err != nil {
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			// The compensation failed too: an empty pending order is
			// stranded until the sweep picks it up.
			s.logger.Printf("checkout: orphaned pending order order_id=%s insert_err=%v delete_err=%v", order.ID, err, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderItems, err)
	}

	order.Items = items
	return order, nil
}

// Result is a successful checkout handoff: the pending order and the
// processor session to redirect the buyer to.
type Result struct {
	Order       *domain.Order
	SessionID   string
	RedirectURL string
}

// Checkout runs order creation and requests a payment session for the
// result. A bridge failure leaves the order pending; a repeated checkout
// attempt creates a fresh order rather than reusing it.
func (s *Service) Checkout(ctx context.Context, customerID *string, snapshot []domain.CartItem) (*Result, error) {
	order, err := s.CreateOrder(ctx, customerID, snapshot)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CreateSession(ctx, payment.CreateSessionInput{
		OrderID:    order.ID,
		Amount:     order.TotalCents,
		Currency:   s.currency,
		UserID:     customerID,
		SuccessURL: s.publicBaseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}&order_id=" + order.ID,
		CancelURL:  s.publicBaseURL + "/checkout?cancelled=true",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	return &Result{Order: order, SessionID: session.SessionID, RedirectURL: session.RedirectURL}, nil
}

// Reconcile applies the paid transition for an order named by the
// processor's success callback, then clears the owning customer's cart.
// The status write is unconditional, so re-invoking on a reloaded
// success page re-applies it harmlessly; clearing an already empty cart
// deletes zero rows, making the whole operation effectively idempotent.
// Guest orders carry no customer id and their cart is cleared by the
// caller's guest session instead.
func (s *Service) Reconcile(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidSession
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReconciliation, err)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		// The paid write already landed; report success with what we
		// know and leave the cart for the next reconcile attempt. The
		// creation time is unknown here, so it stays zero.
		s.logger.Printf("reconcile: order lookup after paid write order_id=%s error=%v", orderID, err)
		return &domain.Order{ID: orderID, Status: domain.OrderStatusPaid}, nil
	}

	if order.CustomerID != nil {
		if err := s.carts.DeleteAll(ctx, *order.CustomerID); err != nil {
			// Order is paid; a lingering cart is an inconvenience,
			// not a failure.
			s.logger.Printf("reconcile: clear cart order_id=%s customer_id=%s error=%v", orderID, *order.CustomerID, err)
		}
	}
	return order, nil
}

// MarkPaid applies the paid transition on the authority of a verified
// processor webhook. Unlike Reconcile it needs no session id: the
// webhook signature already proved the event came from the processor.
// Cart clearing mirrors Reconcile and is likewise log-only.
func (s *Service) MarkPaid(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrInvalidSession
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		// An unknown order passes through untouched so the caller can
		// acknowledge the event instead of asking for a retry.
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReconciliation, err)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Printf("webhook: order lookup after paid write order_id=%s error=%v", orderID, err)
		return nil
	}
	if order.CustomerID != nil {
		if err := s.carts.DeleteAll(ctx, *order.CustomerID); err != nil {
			s.logger.Printf("webhook: clear cart order_id=%s customer_id=%s error=%v", orderID, *order.CustomerID, err)
		}
	}
	return nil
}

// ListOrders returns a customer's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// GetOrder returns one order with its items.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}
