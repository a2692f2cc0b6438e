package cache

import (
	"fmt"

	"github.com/goodsflow/backend/internal/domain/shared"
	"github.com/goodsflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ResultStoreFactory creates reception result stores based on configuration
type ResultStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ResultStoreFactoryOption is a functional option for configuring the factory
type ResultStoreFactoryOption func(*ResultStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ResultStoreFactoryOption {
	return func(f *ResultStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) ResultStoreFactoryOption {
	return func(f *ResultStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewResultStoreFactory creates a new factory
func NewResultStoreFactory(cfg config.RedisConfig, opts ...ResultStoreFactoryOption) *ResultStoreFactory {
	f := &ResultStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based result store
func (f *ResultStoreFactory) CreateRedisStore() (shared.ResultStore, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	store, err := NewRedisResultStore(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis result store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates an in-memory result store.
// WARNING: In-memory stores do not share state across process instances,
// which can lead to duplicate reception processing in distributed deployments
func (f *ResultStoreFactory) CreateInMemoryStore() shared.ResultStore {
	return NewInMemoryResultStore()
}

// CreateStore creates a result store based on whether Redis is available.
// It tries Redis first and falls back to in-memory if Redis is not available
// and AllowInMemoryFallback is true
func (f *ResultStoreFactory) CreateStore() (shared.ResultStore, error) {
	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis reception result store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for reception replay but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory reception result store. "+
		"This may cause duplicate reception processing in distributed deployments.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
