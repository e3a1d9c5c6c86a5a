// README: Session store backed by Redis, one JSON value per conversation with TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tripmate:session:"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func key(conversationID string) string {
	return keyPrefix + conversationID
}

func (s *Store) Get(ctx context.Context, conversationID string) (Session, error) {
	raw, err := s.redis.Get(ctx, key(conversationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Put overwrites the session and restarts its TTL.
func (s *Store) Put(ctx context.Context, sess Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.redis.Set(ctx, key(sess.ConversationID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, conversationID string) error {
	if err := s.redis.Del(ctx, key(conversationID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
