package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	"github.com/ghuser/autospares/services/inventory/domain/models"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// CategoryService orchestrates category CRUD.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService returns a CategoryService wired with the given repository.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create validates and persists a Category. Returns ErrCategoryExists when
// the trimmed name is already taken.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category, err := models.NewCategory(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidPart, err)
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns categories matching the search term, newest first.
func (s *CategoryService) List(ctx context.Context, search string) ([]*models.Category, error) {
	categories, err := s.repo.Find(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a Category by ID.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Update renames an existing category.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed, err := models.NewCategory(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventorydomain.ErrInvalidPart, err)
	}
	category.Name = renamed.Name

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by ID.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
