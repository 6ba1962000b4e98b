package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"venyr-storefront/internal/domain"
	checkoutsvc "venyr-storefront/internal/service/checkout"
)

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		OrderID   string `json:"orderId"`
		SessionID string `json:"sessionId"`
	} `json:"data"`
}

// paymentWebhook is the authoritative paid transition: the processor
// notifies the bridge server-to-server, so a buyer who closes the tab
// before the success redirect still gets their order marked paid. The
// signature is HMAC-SHA256 over the raw body, keyed by the shared
// webhook secret.
func (h *handlers) paymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	if !verifySignature(h.deps.WebhookSecret, body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	switch ev.Type {
	case "checkout.session.completed":
		if err := h.deps.Checkout.MarkPaid(c.Request.Context(), ev.Data.OrderID); err != nil {
			switch {
			case errors.Is(err, checkoutsvc.ErrInvalidSession):
				c.JSON(http.StatusBadRequest, gin.H{"error": "missing order id"})
				return
			case errors.Is(err, domain.ErrNotFound):
				// An order this service never created cannot become
				// paid; acknowledge so the processor stops retrying.
				h.logger.Printf("webhook: unknown order order_id=%s", ev.Data.OrderID)
			default:
				h.logger.Printf("webhook: mark paid order_id=%s error=%v", ev.Data.OrderID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not apply event"})
				return
			}
		}
	default:
		// Unhandled event types are acknowledged so the processor stops
		// retrying them.
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func verifySignature(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	got := strings.TrimPrefix(header, "sha256=")
	return hmac.Equal([]byte(want), []byte(got))
}
