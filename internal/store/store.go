package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/wisewolf-edu/onboarding-service/internal/crypto"
)

// cacheTTL bounds staleness of cached tenant and plan reads.
const cacheTTL = 1 * time.Hour

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Store gives the workflows record-oriented access to the shared relational
// store: tenants, leads, profiles, pricing plans and subscriptions.
type Store struct {
	pool   *pgxpool.Pool
	redis  RedisClient
	cipher *crypto.Cipher
}

type Config struct {
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Cipher        *crypto.Cipher
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 5
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &Store{pool: pool, redis: rdb, cipher: cfg.Cipher}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return s.redis.Close()
}

// cacheGet fills dest from the cache, reporting whether the key was present
// and decodable.
func (s *Store) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (s *Store) cacheSet(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.redis.SetEx(ctx, key, data, cacheTTL)
}

func tenantKey(id uuid.UUID) string { return fmt.Sprintf("tenant:%s", id) }
func planKey(id uuid.UUID) string   { return fmt.Sprintf("plan:%s", id) }
