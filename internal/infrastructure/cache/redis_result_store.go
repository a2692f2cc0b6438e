package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisResultStore implements shared.ResultStore using Redis.
// Suitable for distributed deployments where multiple instances need to
// share reception replay state.
type RedisResultStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisResultStore creates a new Redis-based result store
func NewRedisResultStore(cfg RedisConfig) (*RedisResultStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisResultStore{
		client:    client,
		keyPrefix: "reception:result:",
	}, nil
}

// NewRedisResultStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisResultStoreWithClient(client *redis.Client, keyPrefix string) *RedisResultStore {
	if keyPrefix == "" {
		keyPrefix = "reception:result:"
	}
	return &RedisResultStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the stored payload for a key, and whether it exists.
func (s *RedisResultStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load stored result: %w", err)
	}
	return payload, true, nil
}

// Put stores the payload under a key with a TTL.
// Uses SETNX so the first stored outcome wins.
func (s *RedisResultStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if _, err := s.client.SetNX(ctx, s.keyPrefix+key, payload, ttl).Result(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisResultStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisResultStore) GetClient() *redis.Client {
	return s.client
}

var _ shared.ResultStore = (*RedisResultStore)(nil)
