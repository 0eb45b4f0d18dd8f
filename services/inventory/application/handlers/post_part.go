package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	pkgvalidator "github.com/ghuser/autospares/pkg/validator"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
)

// CreatePartHandler handles POST /spare-parts requests.
type CreatePartHandler struct {
	svc *appsvcs.Services
}

// NewCreatePartHandler returns a CreatePartHandler backed by the given services.
func NewCreatePartHandler(svc *appsvcs.Services) *CreatePartHandler {
	return &CreatePartHandler{svc: svc}
}

// Execute creates a new spare part.
//
//	@Summary		Create spare part
//	@Tags			spare-parts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PartRequest	true	"Part creation request"
//	@Success		201		{object}	PartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/spare-parts [post]
func (h *CreatePartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[PartRequest](w, r)
	if !ok {
		return
	}

	part, err := h.svc.Part.Create(r.Context(), req.toInput())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toPartResponse(part))
}

// BulkInsertPartsHandler handles POST /spare-parts/bulk-insert requests.
type BulkInsertPartsHandler struct {
	svc *appsvcs.Services
}

// NewBulkInsertPartsHandler returns a BulkInsertPartsHandler backed by the given services.
func NewBulkInsertPartsHandler(svc *appsvcs.Services) *BulkInsertPartsHandler {
	return &BulkInsertPartsHandler{svc: svc}
}

// Execute imports a batch of spare parts in one transaction.
//
//	@Summary		Bulk insert spare parts
//	@Tags			spare-parts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]PartRequest	true	"Parts to import"
//	@Success		201		{array}		PartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/spare-parts/bulk-insert [post]
func (h *BulkInsertPartsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var reqs []PartRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	for i := range reqs {
		if err := pkgvalidator.Validate(&reqs[i]); err != nil {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "Validation failed",
				"index":  i,
				"fields": pkgvalidator.FormatValidationErrors(err),
			})
			return
		}
	}

	inputs := make([]appsvcs.PartInput, len(reqs))
	for i, req := range reqs {
		inputs[i] = req.toInput()
	}

	parts, err := h.svc.Part.BulkImport(r.Context(), inputs)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toPartResponses(parts))
}
