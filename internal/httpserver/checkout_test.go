package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"venyr-storefront/internal/domain"
	checkoutsvc "venyr-storefront/internal/service/checkout"
)

func TestCheckoutRequiresIdentity(t *testing.T) {
	rec := serve(t, testDeps(), httptest.NewRequest(http.MethodPost, "/checkout", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	snapshot := []domain.CartItem{{ID: "l1", ProductID: "p1", PriceCents: 74900, Quantity: 1}}
	checkout := &stubCheckoutSvc{result: &checkoutsvc.Result{
		Order:       &domain.Order{ID: "ord-1"},
		SessionID:   "sess-1",
		RedirectURL: "https://pay.example/s/1",
	}}
	deps := testDeps()
	deps.Carts = &stubCartSvc{cart: domain.NewCart(snapshot)}
	deps.Checkout = checkout

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	if checkout.lastCustomer == nil || *checkout.lastCustomer != "cust-1" {
		t.Fatalf("expected checkout as cust-1, got %v", checkout.lastCustomer)
	}
	if len(checkout.lastSnapshot) != 1 {
		t.Fatalf("expected cart snapshot forwarded, got %+v", checkout.lastSnapshot)
	}

	var resp struct {
		OrderID   string `json:"orderId"`
		SessionID string `json:"sessionId"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.OrderID != "ord-1" || resp.SessionID != "sess-1" || resp.URL == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	deps := testDeps()
	deps.Checkout = &stubCheckoutSvc{checkoutErr: checkoutsvc.ErrEmptyCart}

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutBridgeFailure(t *testing.T) {
	deps := testDeps()
	deps.Checkout = &stubCheckoutSvc{checkoutErr: checkoutsvc.ErrPaymentSession}

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestPaymentSuccessMissingParams(t *testing.T) {
	deps := testDeps()
	deps.Checkout = &stubCheckoutSvc{reconcileErr: checkoutsvc.ErrInvalidSession}

	req := httptest.NewRequest(http.MethodGet, "/payment/success?order_id=ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentSuccessReconciles(t *testing.T) {
	checkout := &stubCheckoutSvc{order: &domain.Order{ID: "ord-1", Status: domain.OrderStatusPaid}}
	deps := testDeps()
	deps.Checkout = checkout

	req := httptest.NewRequest(http.MethodGet, "/payment/success?session_id=sess-1&order_id=ord-1", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if checkout.lastSession != "sess-1" || checkout.lastOrderID != "ord-1" {
		t.Fatalf("unexpected reconcile args %q/%q", checkout.lastSession, checkout.lastOrderID)
	}
}

func TestPaymentSuccessClearsGuestCart(t *testing.T) {
	guests := &stubGuestSvc{guestID: "guest-1"}
	deps := testDeps()
	deps.Guests = guests
	deps.Checkout = &stubCheckoutSvc{order: &domain.Order{ID: "ord-1", Status: domain.OrderStatusPaid}}

	req := httptest.NewRequest(http.MethodGet, "/payment/success?session_id=sess-1&order_id=ord-1", nil)
	req.Header.Set("X-Guest-Token", "guest-token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(guests.cleared) != 1 || guests.cleared[0] != "guest-1" {
		t.Fatalf("expected guest cart cleared, got %v", guests.cleared)
	}
}

func TestPaymentSuccessFailureKeepsGuestCart(t *testing.T) {
	guests := &stubGuestSvc{guestID: "guest-1"}
	deps := testDeps()
	deps.Guests = guests
	deps.Checkout = &stubCheckoutSvc{reconcileErr: checkoutsvc.ErrReconciliation}

	req := httptest.NewRequest(http.MethodGet, "/payment/success?session_id=sess-1&order_id=ord-1", nil)
	req.Header.Set("X-Guest-Token", "guest-token")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if len(guests.cleared) != 0 {
		t.Fatal("a failed reconcile must not clear the guest cart")
	}
}
