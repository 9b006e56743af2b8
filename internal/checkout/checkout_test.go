package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"storefront-client/internal/domain"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubSession struct {
	session domain.Session
}

func (s *stubSession) Snapshot() domain.Session { return s.session }

type stubCart struct {
	items   []domain.CartEntry
	cleared bool
}

func (s *stubCart) Items() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.items))
	copy(out, s.items)
	return out
}

func (s *stubCart) Clear(_ context.Context) error {
	s.items = nil
	s.cleared = true
	return nil
}

type stubGateway struct {
	orderID   string
	err       error
	calls     int
	lastDraft domain.OrderDraft
	entered   chan struct{}
	release   chan struct{}
}

func (s *stubGateway) CreateOrder(_ context.Context, draft domain.OrderDraft) (string, error) {
	s.calls++
	s.lastDraft = draft
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.release
	}
	return s.orderID, s.err
}

func authenticated() *stubSession {
	return &stubSession{session: domain.Session{
		IsAuthenticated: true,
		User:            &domain.User{ID: "u1"},
	}}
}

func cartWith(entries ...domain.CartEntry) *stubCart {
	return &stubCart{items: entries}
}

func entry(id, vendor string, price int64, qty int) domain.CartEntry {
	return domain.CartEntry{ID: id, Price: price, VendorID: vendor, Quantity: qty}
}

func TestGuardUnauthenticated(t *testing.T) {
	o := New(&stubSession{}, cartWith(entry("i1", "v1", 50, 1)), &stubGateway{}, testLogger())
	if got := o.Guard(); got != NavigateSignIn {
		t.Fatalf("expected signin redirect, got %q", got)
	}
}

func TestGuardEmptyCart(t *testing.T) {
	o := New(authenticated(), cartWith(), &stubGateway{}, testLogger())
	if got := o.Guard(); got != NavigateCart {
		t.Fatalf("expected cart redirect, got %q", got)
	}
}

func TestGuardPasses(t *testing.T) {
	o := New(authenticated(), cartWith(entry("i1", "v1", 50, 1)), &stubGateway{}, testLogger())
	if got := o.Guard(); got != NavigateNone {
		t.Fatalf("expected no redirect, got %q", got)
	}
}

func TestSubmitUnauthenticatedBuildsNoDraft(t *testing.T) {
	gw := &stubGateway{}
	o := New(&stubSession{}, cartWith(entry("i1", "v1", 50, 1)), gw, testLogger())

	res, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Navigate != NavigateSignIn {
		t.Fatalf("expected signin redirect, got %q", res.Navigate)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called without a session")
	}
	if o.State() != StateIdle {
		t.Fatalf("expected idle state after redirect, got %s", o.State())
	}
}

func TestSubmitEmptyCartRedirects(t *testing.T) {
	gw := &stubGateway{}
	o := New(authenticated(), cartWith(), gw, testLogger())

	res, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Navigate != NavigateCart {
		t.Fatalf("expected cart redirect, got %q", res.Navigate)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called with an empty cart")
	}
}

func TestSubmitValidatesForm(t *testing.T) {
	gw := &stubGateway{}
	o := New(authenticated(), cartWith(entry("i1", "v1", 50, 1)), gw, testLogger())

	_, err := o.Submit(context.Background(), "   ", "upi")
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for blank address, got %v", err)
	}

	_, err = o.Submit(context.Background(), "12 Gandhi Road", "cheque")
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for unknown payment method, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for local validation failures")
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	gw := &stubGateway{orderID: "o1"}
	cart := cartWith(entry("i1", "v1", 50, 2), entry("i2", "v1", 30, 1))
	o := New(authenticated(), cart, gw, testLogger())

	res, err := o.Submit(context.Background(), "12 Gandhi Road", "cash")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.OrderID != "o1" || res.Navigate != NavigateOrderSuccess {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !cart.cleared {
		t.Fatalf("expected cart cleared after success")
	}
	if o.State() != StateSucceeded {
		t.Fatalf("expected succeeded state, got %s", o.State())
	}

	d := gw.lastDraft
	if d.User != "u1" || d.Vendor != "v1" {
		t.Fatalf("unexpected draft identity: %+v", d)
	}
	if d.Reference == "" {
		t.Fatalf("expected a draft reference")
	}
	if len(d.Items) != 2 || d.Items[0].Item != "i1" || d.Items[0].Quantity != 2 {
		t.Fatalf("unexpected draft items: %+v", d.Items)
	}
}

func TestSubmitFailureRetainsCart(t *testing.T) {
	gwErr := &domain.TransportError{Op: "create order", Err: errors.New("timeout")}
	gw := &stubGateway{err: gwErr}
	cart := cartWith(entry("i1", "v1", 50, 1))
	o := New(authenticated(), cart, gw, testLogger())

	_, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
	if !errors.Is(err, gwErr) {
		t.Fatalf("expected gateway error surfaced verbatim, got %v", err)
	}
	if cart.cleared {
		t.Fatalf("cart must be retained on failure")
	}
	if o.State() != StateFailed {
		t.Fatalf("expected failed state, got %s", o.State())
	}
}

func TestSubmitRejectsOverlap(t *testing.T) {
	gw := &stubGateway{
		orderID: "o1",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := New(authenticated(), cartWith(entry("i1", "v1", 50, 1)), gw, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
		done <- err
	}()

	// Wait until the first submission is inside the gateway call.
	select {
	case <-gw.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first submit never reached the gateway")
	}

	_, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
	if !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(gw.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gw.calls)
	}
}

func TestSubmitReReadsStoresAtSubmissionTime(t *testing.T) {
	// Session is valid at guard time but signed out before submit; the
	// orchestrator must see the later state.
	sess := authenticated()
	gw := &stubGateway{}
	o := New(sess, cartWith(entry("i1", "v1", 50, 1)), gw, testLogger())

	if got := o.Guard(); got != NavigateNone {
		t.Fatalf("expected guard to pass, got %q", got)
	}
	sess.session = domain.Session{}

	res, err := o.Submit(context.Background(), "12 Gandhi Road", "upi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Navigate != NavigateSignIn {
		t.Fatalf("expected signin redirect after concurrent logout, got %q", res.Navigate)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called after logout")
	}
}
