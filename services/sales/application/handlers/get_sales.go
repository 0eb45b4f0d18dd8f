package handlers

import (
	"net/http"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	appsvcs "github.com/ghuser/autospares/services/sales/application/services"
)

// GetSalesHandler handles GET /sales requests.
type GetSalesHandler struct {
	svc *appsvcs.Services
}

// NewGetSalesHandler returns a GetSalesHandler backed by the given services.
func NewGetSalesHandler(svc *appsvcs.Services) *GetSalesHandler {
	return &GetSalesHandler{svc: svc}
}

// Execute lists recorded sales, newest first.
//
//	@Summary		List sales
//	@Description	Lists recorded sales. With today=true, only sales from the current calendar day are returned.
//	@Tags			sales
//	@Produce		json
//	@Param			today	query		bool	false	"Restrict to today's sales"
//	@Success		200		{array}		SaleResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/sales [get]
func (h *GetSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	todayOnly := r.URL.Query().Get("today") == "true"

	sales, err := h.svc.Sale.List(r.Context(), todayOnly)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSaleResponses(sales))
}
