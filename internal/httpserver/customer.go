package httpserver

import (
	"errors"
	"net/http"

	"venyr-storefront/internal/domain"
	customersvc "venyr-storefront/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) signup(c *gin.Context) {
	var req customersvc.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cust, err := h.deps.Customers.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": cust})
}

// login authenticates a customer. When the request also carries a valid
// guest token, the guest cart is merged into the customer's remote cart
// before responding; a failed merge never fails the login, it just
// leaves the guest cart intact for the next attempt.
func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	ctx := c.Request.Context()
	cust, access, refresh, err := h.deps.Customers.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, customersvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if token := c.GetHeader("X-Guest-Token"); token != "" {
		if guestID, lookupErr := h.deps.Guests.LookupByToken(token); lookupErr == nil {
			if mergeErr := h.deps.Carts.MergeIntoCustomer(ctx, guestID, cust.ID); mergeErr != nil {
				h.logger.Printf("login: cart merge customer_id=%s error=%v", cust.ID, mergeErr)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":     cust,
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    h.deps.Customers.AccessTTLSeconds(),
	})
}

func (h *handlers) me(c *gin.Context) {
	cust, ok := requireCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": cust})
}

func (h *handlers) issueGuestToken(c *gin.Context) {
	token, _, err := h.deps.Guests.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue guest token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"guestToken": token,
		"expiresIn":  h.deps.Guests.TTLSeconds(),
	})
}
