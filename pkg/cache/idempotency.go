package cache

import (
	"context"
	"fmt"
	"time"
)

const idempotencyKeyPrefix = "sale:idem:"

// SaleIdempotency reserves sale-commit idempotency keys in Redis so a retried
// POST /sales after an indeterminate failure cannot deduct stock twice.
// Reservation uses SETNX: the first caller wins, concurrent or repeated
// callers with the same key are rejected until the TTL expires or the key is
// explicitly released.
type SaleIdempotency struct {
	client *RedisClient
	ttl    time.Duration
}

// NewSaleIdempotency returns a guard with the given reservation TTL.
func NewSaleIdempotency(r *RedisClient, ttl time.Duration) *SaleIdempotency {
	return &SaleIdempotency{client: r, ttl: ttl}
}

// Reserve claims the key. Returns false when it is already held.
func (s *SaleIdempotency) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.Client().SetNX(ctx, idempotencyKeyPrefix+key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return ok, nil
}

// Release frees the key so the same request may be retried, used after a
// commit was cleanly rejected with no side effects.
func (s *SaleIdempotency) Release(ctx context.Context, key string) error {
	if err := s.client.Client().Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
