package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/autospares/pkg/database"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

// NewCategoryRepository returns a CategoryRepository backed by the given pool.
func NewCategoryRepository(db *database.Database) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Save persists a new Category. Returns ErrCategoryExists on unique
// constraint violations.
func (r *CategoryRepository) Save(ctx context.Context, category *models.Category) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at)
		VALUES ($1, $2, $3)`,
		category.ID, category.Name, category.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return inventorydomain.ErrCategoryExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID retrieves a Category by ID. Returns ErrCategoryNotFound if not found.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inventorydomain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &category, nil
}

// Find returns categories whose name contains search (case-insensitive),
// newest first.
func (r *CategoryRepository) Find(ctx context.Context, search string) ([]*models.Category, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, created_at FROM categories
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`,
		search,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// Update persists a name change. Returns ErrCategoryNotFound when no row
// matches and ErrCategoryExists on a name collision.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`,
		category.ID, category.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return inventorydomain.ErrCategoryExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return inventorydomain.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category by ID. Returns ErrCategoryNotFound when no row
// matches.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return inventorydomain.ErrCategoryNotFound
	}
	return nil
}

// Exists reports whether a category with the given ID exists.
func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return exists, nil
}
