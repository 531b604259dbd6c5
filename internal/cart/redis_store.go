package cart

import (
	"context"
	"time"

	pkgerrors "github.com/dishpatch/dishpatch-backend/pkg/errors"
	"github.com/dishpatch/dishpatch-backend/pkg/redis"
)

// RedisStore persists cart envelopes in Redis under dp:cart:<session>,
// refreshing the session TTL on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if redis.IsMissing(err) {
			return Cart{}, nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeStorageRead, err, "load cart")
	}
	return decodeCart([]byte(raw))
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cart Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageWrite, err, "persist cart")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageWrite, err, "delete cart")
	}
	return nil
}
