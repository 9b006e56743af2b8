// Package checkout drives a single place-order attempt over the cart, the
// session and the order gateway.
package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront-client/internal/domain"
)

// State of the current checkout attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Outcome is a navigation signal for the UI.
type Outcome string

const (
	NavigateNone         Outcome = ""
	NavigateSignIn       Outcome = "/signin"
	NavigateCart         Outcome = "/cart"
	NavigateOrderSuccess Outcome = "/order-success"
)

// ErrSubmitInFlight rejects a second Submit while one is still running, so a
// double click can never fire a duplicate order.
var ErrSubmitInFlight = errors.New("order submission already in progress")

// Payment methods accepted by the storefront.
var paymentMethods = map[string]bool{
	"cash": true,
	"card": true,
	"upi":  true,
}

type sessionReader interface {
	Snapshot() domain.Session
}

type cartAccess interface {
	Items() []domain.CartEntry
	Clear(ctx context.Context) error
}

type orderCreator interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
}

// Orchestrator composes the stores and the gateway. It never captures a store
// snapshot ahead of time: guards and the draft both read the stores at the
// moment they run, because the cart or session can change in between.
type Orchestrator struct {
	mu      sync.Mutex
	state   State
	session sessionReader
	cart    cartAccess
	gateway orderCreator
	logger  *log.Logger
}

func New(session sessionReader, cart cartAccess, gateway orderCreator, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		state:   StateIdle,
		session: session,
		cart:    cart,
		gateway: gateway,
		logger:  logger,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Guard re-checks the entry conditions for the checkout surface. It runs on
// every activation, not once, because another tab can log out or empty the
// cart while the surface is open.
func (o *Orchestrator) Guard() Outcome {
	if !o.session.Snapshot().IsAuthenticated {
		return NavigateSignIn
	}
	if len(o.cart.Items()) == 0 {
		return NavigateCart
	}
	return NavigateNone
}

// Result of a successful or redirected submission.
type Result struct {
	OrderID  string
	Navigate Outcome
}

// Submit runs one checkout attempt: re-evaluate the guards, validate the
// form, build the draft from the cart's single vendor and call the gateway.
// On success the cart is cleared; on failure it is retained and the gateway
// error is returned verbatim. Submit never retries.
func (o *Orchestrator) Submit(ctx context.Context, deliveryAddress, paymentMethod string) (*Result, error) {
	o.mu.Lock()
	if o.state == StateValidating || o.state == StateSubmitting {
		o.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	o.state = StateValidating
	o.mu.Unlock()

	sess := o.session.Snapshot()
	if !sess.IsAuthenticated || sess.User == nil {
		o.setState(StateIdle)
		return &Result{Navigate: NavigateSignIn}, nil
	}

	items := o.cart.Items()
	if len(items) == 0 {
		o.setState(StateIdle)
		return &Result{Navigate: NavigateCart}, nil
	}

	if strings.TrimSpace(deliveryAddress) == "" {
		o.setState(StateFailed)
		return nil, &domain.ValidationError{Message: "delivery address required"}
	}
	if !paymentMethods[paymentMethod] {
		o.setState(StateFailed)
		return nil, &domain.ValidationError{Message: "unsupported payment method"}
	}

	draft := buildDraft(sess.User.ID, items, deliveryAddress, paymentMethod)

	o.setState(StateSubmitting)
	orderID, err := o.gateway.CreateOrder(ctx, draft)
	if err != nil {
		o.setState(StateFailed)
		return nil, err
	}

	if err := o.cart.Clear(ctx); err != nil {
		// The order exists remotely; a failed local clear must not fail it.
		o.logger.Printf("clear cart after order %s: %v", orderID, err)
	}
	o.setState(StateSucceeded)
	o.logger.Printf("order %s placed (ref %s)", orderID, draft.Reference)
	return &Result{OrderID: orderID, Navigate: NavigateOrderSuccess}, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// buildDraft targets the cart's single vendor. The cart store rejects
// mixed-vendor contents at add time, so every entry shares items[0].VendorID.
func buildDraft(userID string, items []domain.CartEntry, address, payment string) domain.OrderDraft {
	draft := domain.OrderDraft{
		Reference:       uuid.NewString(),
		User:            userID,
		Vendor:          items[0].VendorID,
		DeliveryAddress: address,
		PaymentMethod:   payment,
	}
	for _, it := range items {
		draft.Items = append(draft.Items, domain.DraftItem{Item: it.ID, Quantity: it.Quantity})
	}
	return draft
}
