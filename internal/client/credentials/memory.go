package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

// MemoryStore keeps the session in process memory. It is safe for concurrent
// use and forgets everything on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	creds models.Credentials
	user  []byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current pair, the zero pair when signed out.
func (s *MemoryStore) Get(_ context.Context) (models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

// Set replaces the pair. Half pairs are rejected with ErrIncompleteCredentials.
func (s *MemoryStore) Set(_ context.Context, c models.Credentials) error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	return nil
}

// Clear forgets the pair and the cached profile.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = models.Credentials{}
	s.user = nil
	return nil
}

// SaveSession stores the pair and a copy of the profile together.
func (s *MemoryStore) SaveSession(_ context.Context, c models.Credentials, user []byte) error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	s.user = append([]byte(nil), user...)
	return nil
}

// User returns a copy of the cached profile, nil when absent.
func (s *MemoryStore) User(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	return append([]byte(nil), s.user...), nil
}

// DropUser forgets the profile and keeps the pair.
func (s *MemoryStore) DropUser(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
