package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/crewscore/crewscore/internal/domain"
	apperrors "github.com/crewscore/crewscore/internal/errors"
)

// InMemoryProofStore is the dev and test implementation of
// domain.ProofStore.
type InMemoryProofStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewInMemoryProofStore() *InMemoryProofStore {
	return &InMemoryProofStore{items: make(map[string][]byte)}
}

func (s *InMemoryProofStore) Put(ctx context.Context, actionID domain.ActionID, payload []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := fmt.Sprintf("proofs/%s", actionID.String())
	s.items[ref] = append([]byte(nil), payload...)
	return ref, nil
}

func (s *InMemoryProofStore) Get(ctx context.Context, ref string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.items[ref]
	if !ok {
		return nil, fmt.Errorf("%w: proof %s", apperrors.ErrNotFound, ref)
	}
	return append([]byte(nil), payload...), nil
}
