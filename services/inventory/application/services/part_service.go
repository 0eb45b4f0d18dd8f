package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgcache "github.com/ghuser/autospares/pkg/cache"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	"github.com/ghuser/autospares/services/inventory/domain/models"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/autospares/services/inventory/domain/services"
)

// PartInput carries the caller-supplied fields for creating or updating a
// spare part.
type PartInput struct {
	PartNo           string
	Code             string
	Brand            string
	Description      string
	Qty              int
	Unit             string
	BuyingPrice      decimal.Decimal
	SellingPrice     decimal.Decimal
	CategoryID       uuid.UUID
	CompatibleModels []string
}

// PartService orchestrates spare part CRUD. Event publishing is handled by
// the repository layer (outbox pattern). Reads are served from Redis cache
// when available.
type PartService struct {
	repo       repositories.PartRepository
	categories repositories.CategoryRepository
	cache      *pkgcache.PartCache
}

// NewPartService returns a PartService wired with the given repositories and cache.
func NewPartService(
	repo repositories.PartRepository,
	categories repositories.CategoryRepository,
	cache *pkgcache.PartCache,
) *PartService {
	return &PartService{repo: repo, categories: categories, cache: cache}
}

// Create validates and persists a Part. The repository publishes PartCreatedEvent.
func (s *PartService) Create(ctx context.Context, in PartInput) (*models.Part, error) {
	part, err := s.buildPart(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, part); err != nil {
		return nil, fmt.Errorf("save part: %w", err)
	}

	return part, nil
}

// BulkImport validates and persists a batch of parts in one transaction.
func (s *PartService) BulkImport(ctx context.Context, inputs []PartInput) ([]*models.Part, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no parts provided", inventorydomain.ErrInvalidPart)
	}

	parts := make([]*models.Part, len(inputs))
	for i, in := range inputs {
		part, err := s.buildPart(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = part
	}

	if err := s.repo.BulkInsert(ctx, parts); err != nil {
		return nil, fmt.Errorf("bulk insert parts: %w", err)
	}
	return parts, nil
}

func (s *PartService) buildPart(ctx context.Context, in PartInput) (*models.Part, error) {
	exists, err := s.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown category %s", inventorydomain.ErrInvalidPart, in.CategoryID)
	}

	part, err := models.NewPart(
		in.PartNo, in.Code, in.Brand, in.Description,
		in.Qty, in.Unit, in.BuyingPrice, in.SellingPrice,
		in.CategoryID, in.CompatibleModels,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidPart, err)
	}

	if err := domainsvcs.ValidatePartForCreation(part); err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidPart, err)
	}
	return part, nil
}

// GetByID retrieves a Part using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
//
// Cached quantities can lag a concurrent sale by up to the cache TTL; the
// sale commit path reads quantity at the store, never from this cache.
func (s *PartService) GetByID(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	if s.cache != nil {
		// Miss and cache error look the same here; Postgres is authoritative.
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return cachedToPart(cached), nil
		}
	}

	part, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), partToCached(part))
		}()
	}

	return part, nil
}

// List returns parts matching the filter, newest first.
func (s *PartService) List(ctx context.Context, filter repositories.Filter) ([]*models.Part, error) {
	parts, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return parts, nil
}

// Update replaces the mutable fields of an existing part and invalidates its
// cache entry. Administrative stock corrections go through here; the sales
// flow only ever touches qty via the repository's conditional decrement.
func (s *PartService) Update(ctx context.Context, id uuid.UUID, in PartInput) (*models.Part, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}

	updated, err := s.buildPart(ctx, in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update part: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return updated, nil
}

// Delete removes a part by ID and invalidates its cache entry.
func (s *PartService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

func partToCached(part *models.Part) *pkgcache.CachedPart {
	return &pkgcache.CachedPart{
		ID:               part.ID,
		PartNo:           part.PartNo,
		Code:             part.Code,
		Brand:            part.Brand,
		Description:      part.Description,
		Qty:              part.Qty,
		Unit:             part.Unit,
		BuyingPrice:      part.BuyingPrice.String(),
		SellingPrice:     part.SellingPrice.String(),
		CategoryID:       part.CategoryID,
		CompatibleModels: part.CompatibleModels,
		CreatedAt:        part.CreatedAt,
		UpdatedAt:        part.UpdatedAt,
	}
}

func cachedToPart(cached *pkgcache.CachedPart) *models.Part {
	buying, _ := decimal.NewFromString(cached.BuyingPrice)
	selling, _ := decimal.NewFromString(cached.SellingPrice)
	return &models.Part{
		ID:               cached.ID,
		PartNo:           cached.PartNo,
		Code:             cached.Code,
		Brand:            cached.Brand,
		Description:      cached.Description,
		Qty:              cached.Qty,
		Unit:             cached.Unit,
		BuyingPrice:      buying,
		SellingPrice:     selling,
		CategoryID:       cached.CategoryID,
		CompatibleModels: cached.CompatibleModels,
		CreatedAt:        cached.CreatedAt,
		UpdatedAt:        cached.UpdatedAt,
	}
}
