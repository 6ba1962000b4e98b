package httpserver

import (
	"errors"
	"net/http"

	"venyr-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listOrders(c *gin.Context) {
	cust, ok := requireCustomer(c)
	if !ok {
		return
	}

	orders, err := h.deps.Checkout.ListOrders(c.Request.Context(), cust.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder returns one order. Customers only see their own orders; a
// guest session only sees guest orders. Foreign orders read as 404 so
// the route leaks nothing about other customers' order ids.
func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.Checkout.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
		return
	}

	if cust, ok := currentCustomer(c); ok {
		if order.CustomerID == nil || *order.CustomerID != cust.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
	} else if order.CustomerID != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
