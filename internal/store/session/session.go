// Package session tracks whether, and as whom, the shopper is authenticated.
// Successful transitions persist the full session snapshot so a restarted
// process resumes exactly where it left off; logout erases the snapshot.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"storefront-client/internal/domain"
	"storefront-client/internal/storage"
)

const snapshotKey = "auth"

// Store holds the single session of this client process.
type Store struct {
	mu      sync.Mutex
	state   domain.Session
	storage storage.Store
	logger  *log.Logger
}

// New starts from the persisted snapshot when one exists, the empty session
// otherwise. Hydration is all-or-nothing: a snapshot that fails to decode is
// discarded and logged, never partially merged.
func New(ctx context.Context, st storage.Store, logger *log.Logger) (*Store, error) {
	s := &Store{storage: st, logger: logger}

	data, ok, err := st.Load(ctx, snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}
	if ok {
		var snap domain.Session
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Printf("discarding corrupt session snapshot: %v", err)
		} else {
			s.state = snap
		}
	}
	return s, nil
}

// BeginLogin marks a login attempt in flight and clears any previous error.
func (s *Store) BeginLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = true
	s.state.Error = ""
}

// CompleteLogin records the authenticated identity and persists the full
// snapshot. In-memory state and the snapshot are identical afterwards.
func (s *Store) CompleteLogin(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.Session{
		IsAuthenticated: true,
		User:            &user,
	}
	return s.persist(ctx)
}

// FailLogin ends the attempt with an error message. The authenticated flag is
// left as it was; a failed re-login does not sign the shopper out.
func (s *Store) FailLogin(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
	s.state.Error = message
}

// Logout resets to the empty session and erases the persisted snapshot.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.Session{}
	if err := s.storage.Delete(ctx, snapshotKey); err != nil {
		return fmt.Errorf("erase session snapshot: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	return out
}

// UserID is the authenticated shopper's id, empty when signed out.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated || s.state.User == nil {
		return ""
	}
	return s.state.User.ID
}

// persist writes the full snapshot; must be called with the mutex held.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err := s.storage.Save(ctx, snapshotKey, data); err != nil {
		return fmt.Errorf("persist session snapshot: %w", err)
	}
	return nil
}
