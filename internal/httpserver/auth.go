package httpserver

import (
	"net/http"
	"strings"

	"venyr-storefront/internal/domain"
	cartsvc "venyr-storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

const (
	ctxCustomerKey = "auth.customer"
	ctxGuestIDKey  = "auth.guestID"
)

// identify resolves the acting identity from the request headers. A
// Bearer token names a customer, X-Guest-Token names a guest session; a
// present but invalid credential is rejected outright rather than
// silently downgraded to anonymous.
func (h *handlers) identify(c *gin.Context) {
	if auth := c.GetHeader("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}
		cust, err := h.deps.Customers.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxCustomerKey, cust)
		c.Next()
		return
	}

	if token := c.GetHeader("X-Guest-Token"); token != "" {
		guestID, err := h.deps.Guests.LookupByToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid guest token"})
			return
		}
		c.Set(ctxGuestIDKey, guestID)
	}

	c.Next()
}

func currentCustomer(c *gin.Context) (*domain.Customer, bool) {
	v, ok := c.Get(ctxCustomerKey)
	if !ok {
		return nil, false
	}
	cust, ok := v.(*domain.Customer)
	return cust, ok
}

func currentGuestID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxGuestIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// cartOwner maps the request identity onto a cart owner. Requests with
// neither identity have no cart to act on.
func cartOwner(c *gin.Context) (cartsvc.Owner, bool) {
	if cust, ok := currentCustomer(c); ok {
		return cartsvc.Owner{CustomerID: cust.ID}, true
	}
	if guestID, ok := currentGuestID(c); ok {
		return cartsvc.Owner{GuestID: guestID}, true
	}
	return cartsvc.Owner{}, false
}

func requireCustomer(c *gin.Context) (*domain.Customer, bool) {
	cust, ok := currentCustomer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return cust, true
}

func requireOwner(c *gin.Context) (cartsvc.Owner, bool) {
	owner, ok := cartOwner(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return cartsvc.Owner{}, false
	}
	return owner, true
}
