package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	"github.com/ghuser/autospares/services/inventory/domain/models"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// fakePartStore serves parts from a map and records saves.
type fakePartStore struct {
	repositories.PartRepository
	parts map[uuid.UUID]*models.Part
	saved []*models.Part
}

func (r *fakePartStore) GetByID(_ context.Context, id uuid.UUID) (*models.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, inventorydomain.ErrPartNotFound
	}
	return p, nil
}

func (r *fakePartStore) Save(_ context.Context, part *models.Part) error {
	r.saved = append(r.saved, part)
	return nil
}

type fakeCategoryStore struct {
	repositories.CategoryRepository
	known map[uuid.UUID]bool
}

func (r *fakeCategoryStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.known[id], nil
}

func TestPartServiceGetByID(t *testing.T) {
	brake := &models.Part{ID: uuid.New(), Description: "brake pad", Qty: 4}
	store := &fakePartStore{parts: map[uuid.UUID]*models.Part{brake.ID: brake}}
	svc := NewPartService(store, &fakeCategoryStore{}, nil)

	t.Run("store is authoritative when no cache is configured", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), brake.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Description != "brake pad" || got.Qty != 4 {
			t.Errorf("got %+v, want the stored part", got)
		}
	})

	t.Run("unknown id surfaces ErrPartNotFound", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), uuid.New())
		if !errors.Is(err, inventorydomain.ErrPartNotFound) {
			t.Errorf("err = %v, want ErrPartNotFound", err)
		}
	})
}

func TestPartServiceCreate(t *testing.T) {
	category := uuid.New()
	input := func() PartInput {
		return PartInput{
			PartNo:       "BP-1",
			Description:  "front brake pad",
			Qty:          10,
			Unit:         "PCS",
			BuyingPrice:  decimal.NewFromInt(45),
			SellingPrice: decimal.NewFromInt(65),
			CategoryID:   category,
		}
	}

	t.Run("valid input is saved", func(t *testing.T) {
		store := &fakePartStore{}
		svc := NewPartService(store, &fakeCategoryStore{known: map[uuid.UUID]bool{category: true}}, nil)
		part, err := svc.Create(context.Background(), input())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if len(store.saved) != 1 || store.saved[0].ID != part.ID {
			t.Errorf("saved = %v, want the created part", store.saved)
		}
	})

	t.Run("unknown category is rejected before save", func(t *testing.T) {
		store := &fakePartStore{}
		svc := NewPartService(store, &fakeCategoryStore{}, nil)
		_, err := svc.Create(context.Background(), input())
		if !errors.Is(err, inventorydomain.ErrInvalidPart) {
			t.Errorf("err = %v, want ErrInvalidPart", err)
		}
		if len(store.saved) != 0 {
			t.Errorf("saved %d parts, want 0", len(store.saved))
		}
	})
}
