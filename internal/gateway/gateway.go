// Package gateway translates local commerce operations into HTTP calls
// against the remote catalog/order service. It holds no state of its own and
// never retries; whether to try again is the caller's decision.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-client/internal/domain"
)

// Client is the order gateway. Responses use the service's envelope shape:
// {success, data?, message?}; a response without success is a failure with a
// fallback message.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateOrder submits the draft. A server rejection surfaces as a
// ValidationError carrying the server's message; network or decode failures
// surface as TransportError.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encode order draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order/createOrder", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if draft.Reference != "" {
		req.Header.Set("X-Client-Reference", draft.Reference)
	}

	env, err := c.do(req, "create order")
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", &domain.ValidationError{Message: messageOr(env.Message, "failed to place order")}
	}

	var created struct {
		ID string `json:"_id"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &created); err != nil {
			c.logger.Printf("create order: ignoring undecodable data payload: %v", err)
		}
	}
	return created.ID, nil
}

// OrdersByUser fetches the shopper's orders. An empty list is a valid success
// result, not an error.
func (c *Client) OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	u := fmt.Sprintf("%s/order/getOrdersByUser?userId=%s", c.baseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build list orders request: %w", err)
	}

	env, err := c.do(req, "list orders")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &domain.TransportError{
			Op:  "list orders",
			Err: errors.New(messageOr(env.Message, "failed to fetch orders")),
		}
	}

	var orders []domain.Order
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &orders); err != nil {
			return nil, &domain.TransportError{Op: "list orders", Err: fmt.Errorf("decode orders: %w", err)}
		}
	}
	return orders, nil
}

// CancelOrder asks the service to cancel. The caller only invokes this for
// orders it believes are pending, but the service is the final authority: a
// refusal comes back as RejectedError.
func (c *Client) CancelOrder(ctx context.Context, orderID, userID string) error {
	payload := struct {
		OrderID string `json:"orderId"`
		UserID  string `json:"userId"`
	}{OrderID: orderID, UserID: userID}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cancel request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/order/cancelOrder", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build cancel order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req, "cancel order")
	if err != nil {
		return err
	}
	if !env.Success {
		return &domain.RejectedError{Message: messageOr(env.Message, "order can no longer be cancelled")}
	}
	return nil
}

func (c *Client) do(req *http.Request, op string) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("remote status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &env, nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}
