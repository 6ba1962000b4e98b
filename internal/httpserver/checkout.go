package httpserver

import (
	"errors"
	"net/http"

	checkoutsvc "venyr-storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// checkout snapshots the acting identity's current cart and hands it to
// the checkout service. The identity comes from the request's own
// credentials, never from anything resolved earlier, so a session that
// logged in since the cart page loaded checks out as that customer.
func (h *handlers) checkout(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cart, err := h.deps.Carts.Get(ctx, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
		return
	}

	var customerID *string
	if owner.CustomerID != "" {
		id := owner.CustomerID
		customerID = &id
	}

	res, err := h.deps.Checkout.Checkout(ctx, customerID, cart.Items)
	if err != nil {
		switch {
		case errors.Is(err, checkoutsvc.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty, nothing to checkout"})
		case errors.Is(err, checkoutsvc.ErrPaymentSession):
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment session creation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":   res.Order.ID,
		"sessionId": res.SessionID,
		"url":       res.RedirectURL,
	})
}

// paymentSuccess handles the processor redirect back from a completed
// payment. Guest carts are cleared here since the checkout service only
// knows how to clear customer carts.
func (h *handlers) paymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	orderID := c.Query("order_id")

	order, err := h.deps.Checkout.Reconcile(c.Request.Context(), sessionID, orderID)
	if err != nil {
		if errors.Is(err, checkoutsvc.ErrInvalidSession) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment reconciliation failed"})
		return
	}

	if guestID, ok := currentGuestID(c); ok {
		h.deps.Guests.Clear(guestID)
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
