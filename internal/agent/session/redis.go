package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revozen-chatbot/server/internal/agent/model"
	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// RedisStore keeps session contexts in Redis with a TTL refreshed on every
// write. Redis serializes commands per key, which gives the same
// last-write-wins discipline as the in-memory store.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s:context", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (model.QueryContext, bool, error) {
	key := s.sessionKey(sessionID)

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.QueryContext{}, false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session context from redis")
		return model.QueryContext{}, false, errx.WrapRedis(err)
	}

	var qc model.QueryContext
	if err := json.Unmarshal(b, &qc); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal session context")
		return model.QueryContext{}, false, fmt.Errorf("unmarshal session context: %w", err)
	}
	return qc, true, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, qc model.QueryContext) error {
	b, err := json.Marshal(qc)
	if err != nil {
		return fmt.Errorf("marshal session context: %w", err)
	}
	key := s.sessionKey(sessionID)

	if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store session context in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionStore = (*RedisStore)(nil)
