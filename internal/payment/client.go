// Package payment talks to the external payment-session bridge: a small
// trusted function that wraps the processor's session API and hands back
// a hosted-page redirect. The bridge owns the processor credentials;
// this service never sees them.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// CreateSessionInput mirrors the bridge's request body. Amount is in the
// processor's minor units (cents).
type CreateSessionInput struct {
	OrderID    string  `json:"orderId"`
	Amount     int64   `json:"amount"`
	Currency   string  `json:"currency"`
	UserID     *string `json:"userId,omitempty"`
	SuccessURL string  `json:"successUrl"`
	CancelURL  string  `json:"cancelUrl"`
}

// Session correlates the processor's hosted checkout with a local order.
// It is carried only in the redirect URLs, never persisted.
type Session struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"url"`
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CreateSession asks the bridge for a checkout session. Any failure is
// returned to the caller untouched; the order this session was for stays
// pending and eligible for another attempt.
func (c *Client) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("payment bridge: order_id=%s error=%v", in.OrderID, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var bridgeErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&bridgeErr); decodeErr == nil && bridgeErr.Error != "" {
			return nil, fmt.Errorf("payment bridge: %s", bridgeErr.Error)
		}
		return nil, fmt.Errorf("payment bridge: unexpected status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if session.SessionID == "" || session.RedirectURL == "" {
		return nil, fmt.Errorf("payment bridge: incomplete session response")
	}
	return &session, nil
}
