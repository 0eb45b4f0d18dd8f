package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// stubSweepRepo serves FindLowStock from a fixed snapshot.
type stubSweepRepo struct {
	repositories.PartRepository
	rows []repositories.LowStockPart
}

func (r *stubSweepRepo) FindLowStock(_ context.Context, threshold int) ([]repositories.LowStockPart, error) {
	var out []repositories.LowStockPart
	for _, row := range r.rows {
		if row.Qty <= threshold {
			out = append(out, row)
		}
	}
	return out, nil
}

func lowStockServices(rows []repositories.LowStockPart, defaultThreshold int) *appsvcs.Services {
	return &appsvcs.Services{
		StockReport: appsvcs.NewStockReportService(&stubSweepRepo{rows: rows}, defaultThreshold),
	}
}

func TestLowStockHandler(t *testing.T) {
	rows := []repositories.LowStockPart{
		{ID: uuid.New(), PartNo: "OF-1", Description: "oil filter", Qty: 0, CategoryName: "Filters"},
		{ID: uuid.New(), PartNo: "BP-1", Description: "brake pad", Qty: 2, CategoryName: "Brakes"},
		{ID: uuid.New(), PartNo: "SP-9", Description: "spark plug", Qty: 7, CategoryName: "Ignition"},
	}

	t.Run("default threshold reports low and out-of-stock parts", func(t *testing.T) {
		h := NewLowStockHandler(lowStockServices(rows, 3))
		req := httptest.NewRequest(http.MethodGet, "/spare-parts/low-stock", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp LowStockResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Threshold != 3 {
			t.Errorf("threshold = %d, want 3", resp.Threshold)
		}
		if resp.Count != 2 || len(resp.Parts) != 2 {
			t.Fatalf("count = %d with %d parts, want 2 and 2", resp.Count, len(resp.Parts))
		}
		// Out-of-stock rows come first.
		if resp.Parts[0].Qty != 0 {
			t.Errorf("first part qty = %d, want 0", resp.Parts[0].Qty)
		}
		for _, p := range resp.Parts {
			if p.Min != 3 {
				t.Errorf("part %s min = %d, want 3", p.PartNo, p.Min)
			}
		}
	})

	t.Run("threshold query overrides the default", func(t *testing.T) {
		h := NewLowStockHandler(lowStockServices(rows, 3))
		req := httptest.NewRequest(http.MethodGet, "/spare-parts/low-stock?threshold=7", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		var resp LowStockResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Threshold != 7 {
			t.Errorf("threshold = %d, want 7", resp.Threshold)
		}
		if resp.Count != 3 {
			t.Errorf("count = %d, want 3", resp.Count)
		}
	})

	t.Run("threshold zero reports only out-of-stock parts", func(t *testing.T) {
		h := NewLowStockHandler(lowStockServices(rows, 3))
		req := httptest.NewRequest(http.MethodGet, "/spare-parts/low-stock?threshold=0", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		var resp LowStockResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Count != 1 || resp.Parts[0].Description != "oil filter" {
			t.Errorf("got %+v, want only the out-of-stock part", resp.Parts)
		}
	})

	t.Run("invalid threshold returns 400", func(t *testing.T) {
		h := NewLowStockHandler(lowStockServices(rows, 3))
		for _, q := range []string{"threshold=abc", "threshold=-1"} {
			req := httptest.NewRequest(http.MethodGet, "/spare-parts/low-stock?"+q, nil)
			rec := httptest.NewRecorder()
			h.Execute(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", q, rec.Code)
			}
		}
	})

	t.Run("empty report has zero count and empty parts array", func(t *testing.T) {
		h := NewLowStockHandler(lowStockServices(nil, 3))
		req := httptest.NewRequest(http.MethodGet, "/spare-parts/low-stock", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		var resp LowStockResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Count != 0 {
			t.Errorf("count = %d, want 0", resp.Count)
		}
	})
}
