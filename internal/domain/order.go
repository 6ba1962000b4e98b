package domain

import "time"

// Order statuses. This service only ever writes the pending -> paid
// transition; the later states belong to fulfillment tooling and are
// read back verbatim.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is a checkout result. CustomerID is nil for guest checkout.
type Order struct {
	ID         string      `json:"id"`
	CustomerID *string     `json:"customerId,omitempty"`
	TotalCents int64       `json:"totalCents"`
	Currency   string      `json:"currency"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem is an immutable snapshot of a cart line at purchase time.
// PriceAtOrderCents is copied from the cart, not re-fetched from the
// catalog, so later price changes never alter an order.
type OrderItem struct {
	ID                string `json:"id"`
	OrderID           string `json:"orderId"`
	ProductID         string `json:"productId"`
	Quantity          int    `json:"quantity"`
	PriceAtOrderCents int64  `json:"priceAtOrderCents"`
}
