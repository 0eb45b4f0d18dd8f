package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// ListPartsHandler handles GET /spare-parts requests.
type ListPartsHandler struct {
	svc *appsvcs.Services
}

// NewListPartsHandler returns a ListPartsHandler backed by the given services.
func NewListPartsHandler(svc *appsvcs.Services) *ListPartsHandler {
	return &ListPartsHandler{svc: svc}
}

// Execute lists spare parts with optional category and model filters.
//
//	@Summary		List spare parts
//	@Description	Lists spare parts, optionally filtered by category or compatible model
//	@Tags			spare-parts
//	@Produce		json
//	@Param			category	query		string	false	"Category ID filter"
//	@Param			model		query		string	false	"Compatible model filter"
//	@Success		200			{array}		PartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/spare-parts [get]
func (h *ListPartsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var filter repositories.Filter
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		filter.CategoryID = id
	}
	filter.Model = r.URL.Query().Get("model")

	parts, err := h.svc.Part.List(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPartResponses(parts))
}

// GetPartHandler handles GET /spare-parts/{id} requests.
type GetPartHandler struct {
	svc *appsvcs.Services
}

// NewGetPartHandler returns a GetPartHandler backed by the given services.
func NewGetPartHandler(svc *appsvcs.Services) *GetPartHandler {
	return &GetPartHandler{svc: svc}
}

// Execute retrieves one spare part by ID.
//
//	@Summary		Get spare part
//	@Tags			spare-parts
//	@Produce		json
//	@Param			id	path		string	true	"Part ID"
//	@Success		200	{object}	PartResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/spare-parts/{id} [get]
func (h *GetPartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	part, err := h.svc.Part.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPartResponse(part))
}
