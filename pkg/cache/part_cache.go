package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// PartCacheTTL is the time-to-live for cached parts. Kept short because
	// quantities change with every sale; the worker also invalidates entries
	// on sale.recorded events.
	PartCacheTTL = 15 * time.Minute

	partCacheKeyPrefix = "part"
)

// CachedPart is the denormalized read model stored in Redis. Prices are
// decimal strings so no precision is lost in transit.
type CachedPart struct {
	ID               uuid.UUID `json:"id"`
	PartNo           string    `json:"part_no"`
	Code             string    `json:"code"`
	Brand            string    `json:"brand"`
	Description      string    `json:"description"`
	Qty              int       `json:"qty"`
	Unit             string    `json:"unit"`
	BuyingPrice      string    `json:"buying_price"`
	SellingPrice     string    `json:"selling_price"`
	CategoryID       uuid.UUID `json:"category_id"`
	CompatibleModels []string  `json:"compatible_models"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PartCache provides structured read/write operations for part cache entries.
// Key format: "part:{partID}"
type PartCache struct {
	client *RedisClient
}

// NewPartCache creates a new PartCache backed by the given RedisClient.
func NewPartCache(r *RedisClient) *PartCache {
	return &PartCache{client: r}
}

// Get retrieves a cached part by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *PartCache) Get(ctx context.Context, partID uuid.UUID) (*CachedPart, error) {
	key := c.key(partID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	qty, err := strconv.Atoi(vals["qty"])
	if err != nil {
		return nil, fmt.Errorf("cache parse qty: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	var categoryID uuid.UUID
	if vals["category_id"] != "" {
		categoryID, err = uuid.Parse(vals["category_id"])
		if err != nil {
			return nil, fmt.Errorf("cache parse category_id: %w", err)
		}
	}

	var compatibleModels []string
	if vals["compatible_models"] != "" {
		if err := json.Unmarshal([]byte(vals["compatible_models"]), &compatibleModels); err != nil {
			return nil, fmt.Errorf("cache parse compatible_models: %w", err)
		}
	}

	return &CachedPart{
		ID:               id,
		PartNo:           vals["part_no"],
		Code:             vals["code"],
		Brand:            vals["brand"],
		Description:      vals["description"],
		Qty:              qty,
		Unit:             vals["unit"],
		BuyingPrice:      vals["buying_price"],
		SellingPrice:     vals["selling_price"],
		CategoryID:       categoryID,
		CompatibleModels: compatibleModels,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// Set writes a cached part as a Redis hash with the cache TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *PartCache) Set(ctx context.Context, part *CachedPart) error {
	models, err := json.Marshal(part.CompatibleModels)
	if err != nil {
		return fmt.Errorf("cache marshal compatible_models: %w", err)
	}

	key := c.key(part.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", part.ID.String(),
		"part_no", part.PartNo,
		"code", part.Code,
		"brand", part.Brand,
		"description", part.Description,
		"qty", strconv.Itoa(part.Qty),
		"unit", part.Unit,
		"buying_price", part.BuyingPrice,
		"selling_price", part.SellingPrice,
		"category_id", part.CategoryID.String(),
		"compatible_models", string(models),
		"created_at", part.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", part.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, PartCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached part.
func (c *PartCache) Delete(ctx context.Context, partID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(partID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "part:{partID}"
func (c *PartCache) key(partID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", partCacheKeyPrefix, partID)
}
