package auth

import (
	"context"
	"time"

	"github.com/crewscore/crewscore/pkg/cache"
)

// TokenStore holds revoked token ids. The abstraction allows swapping the
// in-memory store for a shared one (e.g. Redis) without touching callers.
type TokenStore interface {
	// Revoke marks a token id revoked for the remaining validity of the token.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration)
	// IsRevoked checks whether a token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) bool
}

// NewInMemoryTokenStore creates a new in-memory token store.
func NewInMemoryTokenStore() TokenStore {
	return &inMemoryTokenStore{
		store: cache.New(
			cache.WithCleanupInterval[string, struct{}](10 * time.Minute),
		),
	}
}

type inMemoryTokenStore struct {
	store cache.Store[string, struct{}]
}

func (s *inMemoryTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) {
	s.store.Set(ctx, tokenID, struct{}{}, ttl)
}

func (s *inMemoryTokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	_, found := s.store.Get(ctx, tokenID)
	return found
}
