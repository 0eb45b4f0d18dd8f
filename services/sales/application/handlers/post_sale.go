package handlers

import (
	"net/http"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	pkgvalidator "github.com/ghuser/autospares/pkg/validator"
	appsvcs "github.com/ghuser/autospares/services/sales/application/services"
)

// PostSaleHandler handles POST /sales requests.
type PostSaleHandler struct {
	svc *appsvcs.Services
}

// NewPostSaleHandler returns a PostSaleHandler backed by the given services.
func NewPostSaleHandler(svc *appsvcs.Services) *PostSaleHandler {
	return &PostSaleHandler{svc: svc}
}

// Execute commits a cart as one consistent sale, or rejects it whole.
// Clients may send an Idempotency-Key header to make retries safe.
//
//	@Summary		Commit a sale
//	@Description	Validates the whole cart, deducts stock, and records the sale. No stock moves unless every line passes.
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string		false	"Client-generated key to dedupe retries"
//	@Param			request			body		SaleRequest	true	"Cart to commit"
//	@Success		201				{object}	CommitSaleResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/sales [post]
func (h *PostSaleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SaleRequest](w, r)
	if !ok {
		return
	}

	sale, err := h.svc.Sale.Commit(r.Context(), req.toCart(), r.Header.Get("Idempotency-Key"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CommitSaleResponse{
		Message: "Sale completed",
		Sale:    toSaleResponse(sale),
	})
}
