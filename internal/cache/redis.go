package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
)

type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisStore connects to REDIS_ADDR and verifies the connection before
// returning. Entries are stored with no expiry, matching the cache contract.
func NewRedisStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{log: log.With("service", "RedisCacheStore"), rdb: rdb}, nil
}

func (s *redisStore) Get(ctx context.Context, purpose, query string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, Fingerprint(purpose, query)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Put(ctx context.Context, purpose, query, payload string) error {
	return s.rdb.Set(ctx, Fingerprint(purpose, query), payload, 0).Err()
}
