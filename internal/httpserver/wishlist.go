package httpserver

import (
	"errors"
	"net/http"

	"venyr-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) listWishlist(c *gin.Context) {
	cust, ok := requireCustomer(c)
	if !ok {
		return
	}

	items, err := h.deps.Wishlists.List(c.Request.Context(), cust.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list wishlist"})
		return
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	cust, ok := requireCustomer(c)
	if !ok {
		return
	}

	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.deps.Products.Get(ctx, req.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
		return
	}

	if err := h.deps.Wishlists.Add(ctx, cust.ID, req.ProductID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add to wishlist"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	cust, ok := requireCustomer(c)
	if !ok {
		return
	}

	if err := h.deps.Wishlists.Remove(c.Request.Context(), cust.ID, c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove from wishlist"})
		return
	}
	c.Status(http.StatusNoContent)
}
