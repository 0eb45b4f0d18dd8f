package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
)

// LowStockPartResponse is one row of the low-stock report.
type LowStockPartResponse struct {
	ID          uuid.UUID `json:"id"`
	PartNo      string    `json:"part_no"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Qty         int       `json:"qty"`
	Min         int       `json:"min"`
	Category    string    `json:"category"`
} // @name LowStockPartResponse

// LowStockResponse is the low-stock report envelope.
type LowStockResponse struct {
	Count     int                    `json:"count"`
	Threshold int                    `json:"threshold"`
	Parts     []LowStockPartResponse `json:"parts"`
} // @name LowStockResponse

// LowStockHandler handles GET /spare-parts/low-stock requests.
type LowStockHandler struct {
	svc *appsvcs.Services
}

// NewLowStockHandler returns a LowStockHandler backed by the given services.
func NewLowStockHandler(svc *appsvcs.Services) *LowStockHandler {
	return &LowStockHandler{svc: svc}
}

// Execute reports parts at or below the stock threshold, out-of-stock rows first.
//
//	@Summary		Low stock report
//	@Description	Lists parts with qty at or below the threshold, including out-of-stock parts
//	@Tags			spare-parts
//	@Produce		json
//	@Param			threshold	query		int	false	"Override the configured threshold"
//	@Success		200			{object}	LowStockResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/spare-parts/low-stock [get]
func (h *LowStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	threshold := -1
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "threshold must be a non-negative integer")
			return
		}
		threshold = parsed
	}

	report, err := h.svc.StockReport.Scan(r.Context(), threshold)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	rows := report.All()
	parts := make([]LowStockPartResponse, len(rows))
	for i, row := range rows {
		parts[i] = LowStockPartResponse{
			ID:          row.ID,
			PartNo:      row.PartNo,
			Code:        row.Code,
			Description: row.Description,
			Qty:         row.Qty,
			Min:         report.Threshold,
			Category:    row.CategoryName,
		}
	}

	httpx.JSON(w, http.StatusOK, LowStockResponse{
		Count:     len(parts),
		Threshold: report.Threshold,
		Parts:     parts,
	})
}
