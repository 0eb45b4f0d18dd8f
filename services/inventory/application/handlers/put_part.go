package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	pkgvalidator "github.com/ghuser/autospares/pkg/validator"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
)

// UpdatePartHandler handles PUT and PATCH /spare-parts/{id} requests.
type UpdatePartHandler struct {
	svc *appsvcs.Services
}

// NewUpdatePartHandler returns an UpdatePartHandler backed by the given services.
func NewUpdatePartHandler(svc *appsvcs.Services) *UpdatePartHandler {
	return &UpdatePartHandler{svc: svc}
}

// Execute replaces the mutable fields of an existing spare part.
//
//	@Summary		Update spare part
//	@Tags			spare-parts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Part ID"
//	@Param			request	body		PartRequest	true	"Part update request"
//	@Success		200		{object}	PartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/spare-parts/{id} [put]
func (h *UpdatePartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PartRequest](w, r)
	if !ok {
		return
	}

	part, err := h.svc.Part.Update(r.Context(), id, req.toInput())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toPartResponse(part))
}

// DeletePartHandler handles DELETE /spare-parts/{id} requests.
type DeletePartHandler struct {
	svc *appsvcs.Services
}

// NewDeletePartHandler returns a DeletePartHandler backed by the given services.
func NewDeletePartHandler(svc *appsvcs.Services) *DeletePartHandler {
	return &DeletePartHandler{svc: svc}
}

// Execute removes a spare part.
//
//	@Summary		Delete spare part
//	@Tags			spare-parts
//	@Produce		json
//	@Param			id	path		string	true	"Part ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	ErrorResponse
//	@Router			/spare-parts/{id} [delete]
func (h *DeletePartHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid part id")
		return
	}

	if err := h.svc.Part.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Spare part deleted"})
}
