package httpserver

import (
	"errors"
	"net/http"

	"venyr-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
	Revision int `json:"revision"`
}

func (h *handlers) getCart(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}
	cart, err := h.deps.Carts.Get(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) addCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.deps.Carts.AddItem(c.Request.Context(), owner, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.deps.Carts.UpdateQuantity(c.Request.Context(), owner, c.Param("id"), req.Quantity, req.Revision)
	if err != nil {
		if errors.Is(err, domain.ErrStaleRevision) {
			c.JSON(http.StatusConflict, gin.H{"error": "cart changed concurrently, reload and retry"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	cart, err := h.deps.Carts.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove item"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *handlers) clearCart(c *gin.Context) {
	owner, ok := requireOwner(c)
	if !ok {
		return
	}

	if err := h.deps.Carts.Clear(c.Request.Context(), owner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}
