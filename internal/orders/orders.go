// Package orders is the read side of the order lifecycle: listing a shopper's
// orders and requesting cancellation of pending ones.
package orders

import (
	"context"
	"fmt"
	"log"
	"sync"

	"storefront-client/internal/domain"
)

type gatewayAPI interface {
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	CancelOrder(ctx context.Context, orderID, userID string) error
}

// View caches the shopper's order list. The cache is only ever replaced
// wholesale by Load; nothing patches individual entries, so the displayed
// state always mirrors a server response.
type View struct {
	mu      sync.Mutex
	cached  []domain.Order
	gateway gatewayAPI
	logger  *log.Logger
}

func New(gateway gatewayAPI, logger *log.Logger) *View {
	return &View{gateway: gateway, logger: logger}
}

// Load fetches the order list and replaces the cache.
func (v *View) Load(ctx context.Context, userID string) error {
	orders, err := v.gateway.OrdersByUser(ctx, userID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.cached = orders
	v.mu.Unlock()
	return nil
}

// Orders returns a copy of the cached list.
func (v *View) Orders() []domain.Order {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]domain.Order, len(v.cached))
	copy(out, v.cached)
	return out
}

// Cancel refuses locally unless the cached status is pending; the gateway is
// not called for anything else. On success the list is re-fetched rather than
// flipped in place, keeping the server authoritative.
func (v *View) Cancel(ctx context.Context, orderID, userID string) error {
	v.mu.Lock()
	var status string
	found := false
	for i := range v.cached {
		if v.cached[i].ID == orderID {
			status = v.cached[i].Status
			found = true
			break
		}
	}
	v.mu.Unlock()

	if !found {
		return domain.ErrNotFound
	}
	if status != domain.OrderStatusPending {
		return &domain.RejectedError{
			Message: fmt.Sprintf("order %s is %s and can no longer be cancelled", orderID, status),
		}
	}

	if err := v.gateway.CancelOrder(ctx, orderID, userID); err != nil {
		return err
	}
	v.logger.Printf("order %s cancelled, refreshing list", orderID)
	return v.Load(ctx, userID)
}
