package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// DefaultRedisHash holds one field per top-level snapshot key.
const DefaultRedisHash = "snapshot"

// RedisStore reads snapshot payloads from a Redis hash so that every
// dashboard instance serves the same fallback data.
type RedisStore struct {
	rdb  *redis.Client
	hash string
}

func NewRedisStore(rdb *redis.Client, hash string) *RedisStore {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &RedisStore{rdb: rdb, hash: hash}
}

func (s *RedisStore) Lookup(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := s.rdb.HGet(ctx, s.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", key, ErrMissing)
	} else if err != nil {
		return nil, fmt.Errorf("redis snapshot lookup %s: %w", key, err)
	}
	return json.RawMessage(data), nil
}

func (s *RedisStore) Name() string {
	return "redis"
}

// Seed writes doc into the hash. Unless overwrite is set, an existing
// non-empty hash is left alone and 0 is returned.
func (s *RedisStore) Seed(ctx context.Context, doc Document, overwrite bool) (int, error) {
	if !overwrite {
		n, err := s.rdb.HLen(ctx, s.hash).Result()
		if err != nil {
			return 0, fmt.Errorf("inspect snapshot hash: %w", err)
		}
		if n > 0 {
			log.Debug().Str("hash", s.hash).Int64("fields", n).Msg("Snapshot hash already populated")
			return 0, nil
		}
	}

	fields := make(map[string]interface{}, len(doc))
	for key, payload := range doc {
		fields[key] = []byte(payload)
	}
	if err := s.rdb.HSet(ctx, s.hash, fields).Err(); err != nil {
		return 0, fmt.Errorf("seed snapshot hash: %w", err)
	}

	log.Info().Str("hash", s.hash).Int("fields", len(fields)).Msg("Snapshot seeded into Redis")
	return len(fields), nil
}
