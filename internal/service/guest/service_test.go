package guest

import (
	"testing"
	"time"

	"venyr-storefront/internal/domain"
)

func TestIssueAndLookup(t *testing.T) {
	svc := New()

	token, guestID, err := svc.Issue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || guestID == "" {
		t.Fatal("expected non-empty token and guest id")
	}

	got, err := svc.LookupByToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != guestID {
		t.Fatalf("expected guest id %q, got %q", guestID, got)
	}

	if _, err := svc.LookupByToken("bogus"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	m := newTokenManager()
	token, err := m.Issue("g1", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Validate(token); ok {
		t.Fatal("expected expired token to be rejected")
	}
	// Expired entries are evicted on validation.
	m.mu.RLock()
	_, present := m.tokens[token]
	m.mu.RUnlock()
	if present {
		t.Fatal("expected expired token to be evicted")
	}
}

func TestCartStoreDedup(t *testing.T) {
	s := newCartStore()
	oxford := domain.Product{ID: "p1", Name: "Mayfair Oxford", PriceCents: 74900}

	s.AddItem("g1", oxford, "42", 1)
	s.AddItem("g1", oxford, "42", 2)
	s.AddItem("g1", oxford, "43", 1)

	items := s.Items("g1")
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after dedup, got %d", len(items))
	}
	for _, item := range items {
		if item.Size == "42" {
			if item.Quantity != 3 {
				t.Fatalf("expected merged quantity 3, got %d", item.Quantity)
			}
			if item.Revision != 2 {
				t.Fatalf("expected revision bumped to 2, got %d", item.Revision)
			}
		}
	}
}

func TestCartStoreSetQuantityRemovesBelowOne(t *testing.T) {
	s := newCartStore()
	s.AddItem("g1", domain.Product{ID: "p1"}, "One Size", 2)
	lineID := s.Items("g1")[0].ID

	s.SetQuantity("g1", lineID, 0)
	if got := len(s.Items("g1")); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}

	// Missing lines are ignored.
	s.SetQuantity("g1", "gone", 5)
	s.RemoveItem("g1", "gone")
}

func TestCartStoreItemsReturnsCopy(t *testing.T) {
	s := newCartStore()
	s.AddItem("g1", domain.Product{ID: "p1"}, "One Size", 1)

	items := s.Items("g1")
	items[0].Quantity = 99

	if s.Items("g1")[0].Quantity != 1 {
		t.Fatal("mutating the returned slice must not affect the store")
	}
}

func TestCartsAreIsolatedPerGuest(t *testing.T) {
	s := newCartStore()
	s.AddItem("g1", domain.Product{ID: "p1"}, "One Size", 1)
	s.AddItem("g2", domain.Product{ID: "p2"}, "One Size", 1)

	if got := s.Items("g1"); len(got) != 1 || got[0].ProductID != "p1" {
		t.Fatalf("unexpected g1 cart %+v", got)
	}

	s.Clear("g1")
	if len(s.Items("g1")) != 0 {
		t.Fatal("expected g1 cart cleared")
	}
	if len(s.Items("g2")) != 1 {
		t.Fatal("clearing g1 must not touch g2")
	}
}
