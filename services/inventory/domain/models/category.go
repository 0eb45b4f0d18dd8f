package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxCategoryNameLength = 255

// Category groups spare parts for reporting and filtering.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory constructs a Category with a trimmed, validated name.
func NewCategory(name string) (*Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if len(trimmed) > maxCategoryNameLength {
		return nil, fmt.Errorf("category name must not exceed %d characters", maxCategoryNameLength)
	}
	return &Category{
		ID:        uuid.New(),
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}
