package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/logger"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	inventorymodels "github.com/ghuser/autospares/services/inventory/domain/models"
	inventoryrepos "github.com/ghuser/autospares/services/inventory/domain/repositories"
	appsvcs "github.com/ghuser/autospares/services/sales/application/services"
	"github.com/ghuser/autospares/services/sales/domain/models"
)

// stubPartRepo serves a fixed set of parts; mutations are no-ops.
type stubPartRepo struct {
	inventoryrepos.PartRepository
	parts map[uuid.UUID]*inventorymodels.Part
}

func (r *stubPartRepo) GetByID(_ context.Context, id uuid.UUID) (*inventorymodels.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, inventorydomain.ErrPartNotFound
	}
	return p, nil
}

func (r *stubPartRepo) DecrementQty(_ context.Context, id uuid.UUID, n int) error {
	p, ok := r.parts[id]
	if !ok {
		return inventorydomain.ErrPartNotFound
	}
	if p.Qty < n {
		return &inventorydomain.StockShortageError{
			PartID: id, Description: p.Description, Requested: n, Available: p.Qty,
		}
	}
	p.Qty -= n
	return nil
}

func (r *stubPartRepo) IncrementQty(_ context.Context, id uuid.UUID, n int) error {
	r.parts[id].Qty += n
	return nil
}

// stubSaleRepo records saved sales in memory.
type stubSaleRepo struct {
	saved []*models.Sale
}

func (r *stubSaleRepo) Save(_ context.Context, sale *models.Sale) error {
	r.saved = append(r.saved, sale)
	return nil
}

func (r *stubSaleRepo) SaveWithStock(_ context.Context, sale *models.Sale) error {
	r.saved = append(r.saved, sale)
	return nil
}

func (r *stubSaleRepo) Find(_ context.Context, since *time.Time) ([]*models.Sale, error) {
	var out []*models.Sale
	for i := len(r.saved) - 1; i >= 0; i-- {
		s := r.saved[i]
		if since != nil && s.OccurredAt.Before(*since) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func newTestServices(parts map[uuid.UUID]*inventorymodels.Part, sales *stubSaleRepo) *appsvcs.Services {
	log := logger.New(&config.Config{LogLevel: "error"})
	return &appsvcs.Services{
		Sale: appsvcs.NewSaleService(&stubPartRepo{parts: parts}, sales, nil, false, log),
	}
}

func testPart(description string, qty int) *inventorymodels.Part {
	return &inventorymodels.Part{
		ID:           uuid.New(),
		Description:  description,
		Qty:          qty,
		BuyingPrice:  decimal.NewFromInt(45),
		SellingPrice: decimal.NewFromInt(65),
	}
}

func TestPostSaleHandler(t *testing.T) {
	t.Run("valid cart returns 201 with message and sale", func(t *testing.T) {
		brake := testPart("brake pad", 10)
		sales := &stubSaleRepo{}
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{brake.ID: brake}, sales))

		body := `{"items":[{"part":"` + brake.ID.String() + `","qty":2,"selling_price":65,"buying_price":45}]}`
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
		}

		var resp CommitSaleResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Message != "Sale completed" {
			t.Errorf("message = %q, want %q", resp.Message, "Sale completed")
		}
		if want := decimal.NewFromInt(130); !resp.Sale.Total.Equal(want) {
			t.Errorf("total = %s, want %s", resp.Sale.Total, want)
		}
		if len(sales.saved) != 1 {
			t.Errorf("saved %d sales, want 1", len(sales.saved))
		}
	})

	t.Run("insufficient stock returns 400 naming the part", func(t *testing.T) {
		brake := testPart("brake pad", 1)
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{brake.ID: brake}, &stubSaleRepo{}))

		body := `{"items":[{"part":"` + brake.ID.String() + `","qty":5,"selling_price":65,"buying_price":45}]}`
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "brake pad") {
			t.Errorf("error body does not name the part: %s", rec.Body)
		}
	})

	t.Run("unknown part returns 404", func(t *testing.T) {
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{}, &stubSaleRepo{}))

		body := `{"items":[{"part":"` + uuid.NewString() + `","qty":1,"selling_price":65,"buying_price":45}]}`
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("empty cart returns 400", func(t *testing.T) {
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{}, &stubSaleRepo{}))

		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"items":[]}`))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "no sale items provided") {
			t.Errorf("unexpected error body: %s", rec.Body)
		}
	})

	t.Run("zero quantity returns 400", func(t *testing.T) {
		brake := testPart("brake pad", 10)
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{brake.ID: brake}, &stubSaleRepo{}))

		body := `{"items":[{"part":"` + brake.ID.String() + `","qty":0,"selling_price":65,"buying_price":45}]}`
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid sale item data") {
			t.Errorf("unexpected error body: %s", rec.Body)
		}
	})

	t.Run("missing part reference returns 400", func(t *testing.T) {
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{}, &stubSaleRepo{}))

		body := `{"items":[{"qty":1,"selling_price":65,"buying_price":45}]}`
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		h := NewPostSaleHandler(newTestServices(map[uuid.UUID]*inventorymodels.Part{}, &stubSaleRepo{}))

		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"items":`))
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGetSalesHandler(t *testing.T) {
	brake := testPart("brake pad", 100)
	parts := map[uuid.UUID]*inventorymodels.Part{brake.ID: brake}

	yesterday, err := models.NewSale([]models.CartItem{{
		PartID: brake.ID, Qty: 1,
		SellingPrice: decimal.NewFromInt(65), BuyingPrice: decimal.NewFromInt(45),
	}})
	if err != nil {
		t.Fatalf("new sale: %v", err)
	}
	yesterday.OccurredAt = time.Now().Add(-36 * time.Hour)

	today, err := models.NewSale([]models.CartItem{{
		PartID: brake.ID, Qty: 2,
		SellingPrice: decimal.NewFromInt(65), BuyingPrice: decimal.NewFromInt(45),
	}})
	if err != nil {
		t.Fatalf("new sale: %v", err)
	}

	sales := &stubSaleRepo{saved: []*models.Sale{yesterday, today}}
	h := NewGetSalesHandler(newTestServices(parts, sales))

	t.Run("lists all sales", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp []SaleResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 2 {
			t.Errorf("got %d sales, want 2", len(resp))
		}
	})

	t.Run("today=true filters out earlier days", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sales?today=true", nil)
		rec := httptest.NewRecorder()
		h.Execute(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp []SaleResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 1 {
			t.Errorf("got %d sales, want 1", len(resp))
		}
		if len(resp) == 1 && resp[0].ID != today.ID {
			t.Errorf("got sale %s, want today's %s", resp[0].ID, today.ID)
		}
	})
}
