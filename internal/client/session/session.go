// Package session holds the signed-in identity of the CLI process.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/client/storage"
)

// Listener is notified synchronously after every Replace. id is nil when
// the session was cleared.
type Listener func(ctx context.Context, id *models.Identity)

// Session is the single source of "current identity". It is persisted
// under storage.KeyCurrentUser so it survives restarts.
type Session struct {
	repo storage.Repository

	mu        sync.RWMutex
	current   *models.Identity
	listeners []Listener
}

func New(repo storage.Repository) *Session {
	return &Session{repo: repo}
}

// Restore reads the persisted identity once. A missing or unreadable slot
// leaves the session empty; only storage failures are returned.
func (s *Session) Restore(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		return err
	}

	var id *models.Identity
	if len(raw) > 0 {
		var v models.Identity
		if err := json.Unmarshal(raw, &v); err == nil && v.ID != "" {
			id = &v
		}
	}

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Session) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	v := *s.current
	return &v
}

// Subscribe registers l for future replacements.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Replace persists id (or removes the slot when id is nil), then swaps the
// in-memory identity and notifies listeners. Nothing changes if the write
// fails.
func (s *Session) Replace(ctx context.Context, id *models.Identity) error {
	if id == nil {
		if err := s.repo.Delete(ctx, storage.KeyCurrentUser); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	} else {
		raw, err := json.Marshal(id)
		if err != nil {
			return err
		}
		if err := s.repo.Set(ctx, storage.KeyCurrentUser, raw); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}

	var next *models.Identity
	if id != nil {
		v := *id
		next = &v
	}

	s.mu.Lock()
	s.current = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, next)
	}
	return nil
}
