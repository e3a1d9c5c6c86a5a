// README: Session service: load and save conversation state with a sliding TTL.
package session

import (
	"context"
	"time"
)

type Service struct {
	store *Store
	ttl   time.Duration
	now   func() time.Time
}

func NewService(store *Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl, now: time.Now}
}

// Load returns ErrNotFound for unknown or expired conversations.
func (s *Service) Load(ctx context.Context, conversationID string) (Session, error) {
	return s.store.Get(ctx, conversationID)
}

// Save stamps UpdatedAt and stores sess, extending its lifetime by the TTL.
func (s *Service) Save(ctx context.Context, sess Session) error {
	sess.UpdatedAt = s.now().UTC()
	return s.store.Put(ctx, sess, s.ttl)
}

func (s *Service) Delete(ctx context.Context, conversationID string) error {
	return s.store.Delete(ctx, conversationID)
}
