// Package session stores the per-session slot context that lets follow-up
// questions omit already-established information.
package session

import (
	"context"
	"sync"

	"github.com/revozen-chatbot/server/internal/agent/model"
)

// MemoryStore keeps session contexts in process memory. Updates for the
// same key are serialized under the mutex with last-write-wins semantics;
// everything is gone on process exit.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.QueryContext
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.QueryContext)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (model.QueryContext, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	qc, ok := s.sessions[sessionID]
	return qc, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, qc model.QueryContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = qc
	return nil
}

var _ model.SessionStore = (*MemoryStore)(nil)
