package domain

import "time"

// CartItem is one cart line. A customer's lines live in Postgres; guest
// lines live in the in-process guest store with synthesized ids. Product
// display fields are denormalized at add-time and never re-read from the
// catalog afterwards.
type CartItem struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Category   string    `json:"category,omitempty"`
	Size       string    `json:"size"`
	Quantity   int       `json:"quantity"`
	Revision   int       `json:"revision"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Cart is the owner-agnostic cart view returned to callers.
type Cart struct {
	Items         []CartItem `json:"items"`
	TotalItems    int        `json:"totalItems"`
	SubtotalCents int64      `json:"subtotalCents"`
}

// NewCart builds the view, computing the derived totals.
func NewCart(items []CartItem) *Cart {
	cart := &Cart{Items: items}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	for _, item := range cart.Items {
		cart.TotalItems += item.Quantity
		cart.SubtotalCents += item.PriceCents * int64(item.Quantity)
	}
	return cart
}
