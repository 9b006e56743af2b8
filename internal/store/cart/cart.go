// Package cart holds the shopper's pending purchase selections. Entries keep
// insertion order, merge by item identity, and are written through to durable
// storage as a full snapshot after every successful mutation.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"storefront-client/internal/domain"
	"storefront-client/internal/storage"
)

const snapshotKey = "cart"

// Store is the cart state engine. A cart holds items of exactly one vendor;
// Add refuses a product from a second vendor so checkout never has to deal
// with a mixed-vendor cart.
type Store struct {
	mu         sync.Mutex
	items      []domain.CartEntry
	totalItems int
	storage    storage.Store
	logger     *log.Logger
}

// New hydrates the cart from the persisted snapshot when one exists. A
// snapshot that fails to decode is discarded and logged; the cart starts
// empty rather than half-restored. Derived counters are always recomputed.
func New(ctx context.Context, st storage.Store, logger *log.Logger) (*Store, error) {
	s := &Store{storage: st, logger: logger}

	data, ok, err := st.Load(ctx, snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	if ok {
		var snap domain.CartSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Printf("discarding corrupt cart snapshot: %v", err)
		} else {
			s.items = snap.Items
		}
	}
	s.recount()
	return s, nil
}

// Add merges the product into an existing entry with the same id, or appends
// a new entry with quantity 1. Returns ErrVendorMismatch when the product
// belongs to a different vendor than the cart's current contents.
func (s *Store) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) > 0 && s.items[0].VendorID != p.VendorID {
		return domain.ErrVendorMismatch
	}

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			s.recount()
			return s.persist(ctx)
		}
	}

	s.items = append(s.items, domain.CartEntry{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		VendorID: p.VendorID,
		Quantity: 1,
	})
	s.recount()
	return s.persist(ctx)
}

// SetQuantity updates the entry's quantity. A quantity <= 0 removes the entry
// outright; the store never holds a non-positive quantity. Unknown ids are a
// no-op.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		s.recount()
		return s.persist(ctx)
	}
	return nil
}

// Remove deletes the entry if present, no-op otherwise.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.recount()
		return s.persist(ctx)
	}
	return nil
}

// Clear empties the cart. Used after a successful checkout.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recount()
	return s.persist(ctx)
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []domain.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartEntry, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the cached sum of quantities, recomputed on every mutation.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// TotalPrice is the sum of price*quantity over the current entries.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// Vendor reports the vendor the cart is bound to, empty when the cart is.
func (s *Store) Vendor() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return ""
	}
	return s.items[0].VendorID
}

// recount must be called with the mutex held after any entry change.
func (s *Store) recount() {
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	s.totalItems = total
}

// persist writes the full snapshot; must be called with the mutex held.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(domain.CartSnapshot{Items: s.items})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.storage.Save(ctx, snapshotKey, data); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}
	return nil
}
