package httpserver

import (
	"errors"
	"net/http"

	"venyr-storefront/internal/domain"
	productrepo "venyr-storefront/internal/repository/product"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	filter := productrepo.ListFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	products, err := h.deps.Products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	product, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
