package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// CategoryRepository is the persistence interface for Category.
type CategoryRepository interface {
	Save(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)

	// Find returns categories whose name contains search (case-insensitive),
	// newest first. Empty search returns all.
	Find(ctx context.Context, search string) ([]*models.Category, error)

	// Update persists a name change.
	Update(ctx context.Context, category *models.Category) error

	// Delete removes a category by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a category with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
