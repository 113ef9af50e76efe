package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the Redis connection backing the distributed API rate limiter
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient,RedisRateLimiter=MockRedisRateLimiter
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// NewRateLimiter creates a GCRA limiter sharing this connection
	NewRateLimiter() RedisRateLimiter

	Close() error
}

// RedisOptions configures the Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

type realRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client. The connection is established lazily.
func NewRedisClient(opts RedisOptions) RedisClient {
	return &realRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
	}
}

func (r *realRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *realRedisClient) NewRateLimiter() RedisRateLimiter {
	return &realRateLimiter{limiter: redis_rate.NewLimiter(r.client)}
}

func (r *realRedisClient) Close() error {
	return r.client.Close()
}

// RedisRateLimiter defines the interface for distributed rate limiting operations
type RedisRateLimiter interface {
	// Allow takes one request from the bucket stored under key
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type realRateLimiter struct {
	limiter *redis_rate.Limiter
}

func (r *realRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}
