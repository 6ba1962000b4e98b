package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"venyr-storefront/internal/domain"
	productrepo "venyr-storefront/internal/repository/product"
	cartsvc "venyr-storefront/internal/service/cart"
	checkoutsvc "venyr-storefront/internal/service/checkout"
	customersvc "venyr-storefront/internal/service/customer"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCustomerSvc struct {
	customer   *domain.Customer
	signupErr  error
	loginErr   error
	lookupErr  error
	lastLookup string
}

func (s *stubCustomerSvc) Signup(_ context.Context, _ customersvc.SignupInput) (*domain.Customer, error) {
	return s.customer, s.signupErr
}

func (s *stubCustomerSvc) Login(_ context.Context, _, _ string) (*domain.Customer, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.customer, "access-token", "refresh-token", nil
}

func (s *stubCustomerSvc) LookupByToken(_ context.Context, token string) (*domain.Customer, error) {
	s.lastLookup = token
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.customer, nil
}

func (s *stubCustomerSvc) AccessTTLSeconds() int { return 3600 }

type stubGuestSvc struct {
	guestID   string
	issueErr  error
	lookupErr error
	cleared   []string
}

func (s *stubGuestSvc) Issue() (string, string, error) {
	if s.issueErr != nil {
		return "", "", s.issueErr
	}
	return "guest-token", s.guestID, nil
}

func (s *stubGuestSvc) LookupByToken(_ string) (string, error) {
	if s.lookupErr != nil {
		return "", s.lookupErr
	}
	return s.guestID, nil
}

func (s *stubGuestSvc) Clear(guestID string) {
	s.cleared = append(s.cleared, guestID)
}

func (s *stubGuestSvc) TTLSeconds() int { return 3600 }

type stubProductSvc struct {
	products   []domain.Product
	product    *domain.Product
	err        error
	lastFilter productrepo.ListFilter
}

func (s *stubProductSvc) List(_ context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	return s.products, s.err
}

func (s *stubProductSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type stubCartSvc struct {
	cart       *domain.Cart
	err        error
	lastOwner  cartsvc.Owner
	mergeCalls int
	mergeGuest string
	mergeCust  string
	mergeErr   error
}

func (s *stubCartSvc) Get(_ context.Context, owner cartsvc.Owner) (*domain.Cart, error) {
	s.lastOwner = owner
	return s.cart, s.err
}

func (s *stubCartSvc) AddItem(_ context.Context, owner cartsvc.Owner, _, _ string, _ int) (*domain.Cart, error) {
	s.lastOwner = owner
	return s.cart, s.err
}

func (s *stubCartSvc) UpdateQuantity(_ context.Context, owner cartsvc.Owner, _ string, _, _ int) (*domain.Cart, error) {
	s.lastOwner = owner
	return s.cart, s.err
}

func (s *stubCartSvc) RemoveItem(_ context.Context, owner cartsvc.Owner, _ string) (*domain.Cart, error) {
	s.lastOwner = owner
	return s.cart, s.err
}

func (s *stubCartSvc) Clear(_ context.Context, owner cartsvc.Owner) error {
	s.lastOwner = owner
	return s.err
}

func (s *stubCartSvc) MergeIntoCustomer(_ context.Context, guestID, customerID string) error {
	s.mergeCalls++
	s.mergeGuest = guestID
	s.mergeCust = customerID
	return s.mergeErr
}

type stubCheckoutSvc struct {
	result       *checkoutsvc.Result
	checkoutErr  error
	lastSnapshot []domain.CartItem
	lastCustomer *string

	order        *domain.Order
	reconcileErr error
	lastSession  string
	lastOrderID  string

	markPaidErr error
	paidOrders  []string

	orders  []domain.Order
	listErr error
	getErr  error
}

func (s *stubCheckoutSvc) Checkout(_ context.Context, customerID *string, snapshot []domain.CartItem) (*checkoutsvc.Result, error) {
	s.lastCustomer = customerID
	s.lastSnapshot = snapshot
	return s.result, s.checkoutErr
}

func (s *stubCheckoutSvc) Reconcile(_ context.Context, sessionID, orderID string) (*domain.Order, error) {
	s.lastSession = sessionID
	s.lastOrderID = orderID
	if s.reconcileErr != nil {
		return nil, s.reconcileErr
	}
	return s.order, nil
}

func (s *stubCheckoutSvc) MarkPaid(_ context.Context, orderID string) error {
	s.paidOrders = append(s.paidOrders, orderID)
	return s.markPaidErr
}

func (s *stubCheckoutSvc) ListOrders(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.listErr
}

func (s *stubCheckoutSvc) GetOrder(_ context.Context, _ string) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

type stubWishlistSvc struct {
	items []domain.WishlistItem
	err   error
}

func (s *stubWishlistSvc) List(_ context.Context, _ string) ([]domain.WishlistItem, error) {
	return s.items, s.err
}

func (s *stubWishlistSvc) Add(_ context.Context, _, _ string) error { return s.err }

func (s *stubWishlistSvc) Remove(_ context.Context, _, _ string) error { return s.err }

func testDeps() Deps {
	return Deps{
		Customers:     &stubCustomerSvc{customer: &domain.Customer{ID: "cust-1", Email: "buyer@example.com"}},
		Guests:        &stubGuestSvc{guestID: "guest-1"},
		Products:      &stubProductSvc{},
		Carts:         &stubCartSvc{cart: domain.NewCart(nil)},
		Checkout:      &stubCheckoutSvc{},
		Wishlists:     &stubWishlistSvc{},
		WebhookSecret: "whsec",
	}
}

func serve(t *testing.T, deps Deps, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := buildRouter(logDiscard(), nil, deps)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, testDeps(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	rec := serve(t, testDeps(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCartRequiresIdentity(t *testing.T) {
	rec := serve(t, testDeps(), httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestListProductsForwardsFilter(t *testing.T) {
	deps := testDeps()
	products := &stubProductSvc{}
	deps.Products = products

	rec := serve(t, deps, httptest.NewRequest(http.MethodGet, "/products?category=watches&sort=price_asc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if products.lastFilter.Category != "watches" || products.lastFilter.Sort != "price_asc" {
		t.Fatalf("unexpected filter %+v", products.lastFilter)
	}
}

func TestGetProductNotFound(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProductSvc{err: domain.ErrNotFound}

	rec := serve(t, deps, httptest.NewRequest(http.MethodGet, "/products/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	other := "cust-2"
	deps := testDeps()
	deps.Checkout = &stubCheckoutSvc{order: &domain.Order{ID: "ord-1", CustomerID: &other}}

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected foreign order to read as 404, got %d", rec.Code)
	}
}

func TestGetOrderGuestCannotSeeCustomerOrder(t *testing.T) {
	owner := "cust-1"
	deps := testDeps()
	deps.Checkout = &stubCheckoutSvc{order: &domain.Order{ID: "ord-1", CustomerID: &owner}}

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1", nil)
	req.Header.Set("X-Guest-Token", "guest-token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for guest reading a customer order, got %d", rec.Code)
	}
}

func TestCartStaleRevisionConflict(t *testing.T) {
	deps := testDeps()
	deps.Carts = &stubCartSvc{err: domain.ErrStaleRevision}

	req := httptest.NewRequest(http.MethodPatch, "/cart/items/l1", jsonBody(`{"quantity":2,"revision":1}`))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

var errBoom = errors.New("boom")
