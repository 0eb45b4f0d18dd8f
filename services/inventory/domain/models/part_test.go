package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewPart(t *testing.T) {
	categoryID := uuid.New()
	buy, sell := decimal.NewFromInt(45), decimal.NewFromInt(65)

	t.Run("valid part", func(t *testing.T) {
		part, err := NewPart("BP-1", "FR", "Bosch", "front brake pad", 10, "", buy, sell, categoryID, []string{"TUKTUK"})
		if err != nil {
			t.Fatalf("new part: %v", err)
		}
		if part.ID == uuid.Nil {
			t.Error("ID not generated")
		}
		if part.Unit != DefaultUnit {
			t.Errorf("unit = %q, want default %q", part.Unit, DefaultUnit)
		}
	})

	cases := []struct {
		name string
		fn   func() (*Part, error)
	}{
		{"empty description", func() (*Part, error) {
			return NewPart("BP-1", "FR", "Bosch", "", 10, "PCS", buy, sell, categoryID, nil)
		}},
		{"negative qty", func() (*Part, error) {
			return NewPart("BP-1", "FR", "Bosch", "pad", -1, "PCS", buy, sell, categoryID, nil)
		}},
		{"negative buying price", func() (*Part, error) {
			return NewPart("BP-1", "FR", "Bosch", "pad", 1, "PCS", decimal.NewFromInt(-1), sell, categoryID, nil)
		}},
		{"missing category", func() (*Part, error) {
			return NewPart("BP-1", "FR", "Bosch", "pad", 1, "PCS", buy, sell, uuid.Nil, nil)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.fn(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPart_StockPredicates(t *testing.T) {
	part := &Part{Qty: 3}

	if !part.InStock(3) {
		t.Error("InStock(3) = false with qty 3")
	}
	if part.InStock(4) {
		t.Error("InStock(4) = true with qty 3")
	}
	if part.OutOfStock() {
		t.Error("OutOfStock = true with qty 3")
	}

	t.Run("low and out-of-stock are disjoint", func(t *testing.T) {
		cases := []struct {
			qty     int
			wantLow bool
			wantOut bool
		}{
			{0, false, true},
			{1, true, false},
			{3, true, false}, // boundary: qty == threshold is low
			{4, false, false},
		}
		for _, tc := range cases {
			p := &Part{Qty: tc.qty}
			if got := p.LowStock(3); got != tc.wantLow {
				t.Errorf("qty %d: LowStock = %v, want %v", tc.qty, got, tc.wantLow)
			}
			if got := p.OutOfStock(); got != tc.wantOut {
				t.Errorf("qty %d: OutOfStock = %v, want %v", tc.qty, got, tc.wantOut)
			}
		}
	})
}
