package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Service limits login attempts per client key (origin IP).
type Service interface {
	// Allow reports whether the key is still under its attempt limit.
	Allow(ctx context.Context, key string) (bool, error)

	// RecordAttempt counts one failed attempt against the key.
	RecordAttempt(ctx context.Context, key string) error

	// Reset clears the counter for the key, e.g. after a successful login.
	Reset(ctx context.Context, key string) error
}

// Config configuration for login rate limiting
type Config struct {
	Enabled  bool
	RedisURL string
	Attempts int
	Window   time.Duration
}

type redisService struct {
	client   *redis.Client
	attempts int
	window   time.Duration
}

// NewService creates a Redis-backed rate limiter, or a noop one when
// rate limiting is disabled.
func NewService(config Config) (Service, error) {
	if !config.Enabled {
		return &noopService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisService{
		client:   client,
		attempts: config.Attempts,
		window:   config.Window,
	}, nil
}

func (s *redisService) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Get(ctx, s.redisKey(key)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return count < s.attempts, nil
}

func (s *redisService) RecordAttempt(ctx context.Context, key string) error {
	redisKey := s.redisKey(key)
	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (s *redisService) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt counter: %w", err)
	}
	return nil
}

func (s *redisService) redisKey(key string) string {
	return "login_attempts:" + key
}

// noopService allows everything
type noopService struct{}

func (s *noopService) Allow(ctx context.Context, key string) (bool, error) { return true, nil }
func (s *noopService) RecordAttempt(ctx context.Context, key string) error { return nil }
func (s *noopService) Reset(ctx context.Context, key string) error         { return nil }
