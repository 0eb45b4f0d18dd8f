package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/errhttp"
	"github.com/ghuser/autospares/pkg/httpx"
	pkgvalidator "github.com/ghuser/autospares/pkg/validator"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// CategoryRequest is the request body for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Brakes"`
} // @name CategoryRequest

// CategoryResponse is the JSON shape of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
} // @name CategoryResponse

func toCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// CreateCategoryHandler handles POST /categories requests.
type CreateCategoryHandler struct {
	svc *appsvcs.Services
}

// NewCreateCategoryHandler returns a CreateCategoryHandler backed by the given services.
func NewCreateCategoryHandler(svc *appsvcs.Services) *CreateCategoryHandler {
	return &CreateCategoryHandler{svc: svc}
}

// Execute creates a category.
//
//	@Summary		Create category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CategoryRequest	true	"Category creation request"
//	@Success		201		{object}	CategoryResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/categories [post]
func (h *CreateCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CategoryRequest](w, r)
	if !ok {
		return
	}

	category, err := h.svc.Category.Create(r.Context(), req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toCategoryResponse(category))
}

// ListCategoriesHandler handles GET /categories requests.
type ListCategoriesHandler struct {
	svc *appsvcs.Services
}

// NewListCategoriesHandler returns a ListCategoriesHandler backed by the given services.
func NewListCategoriesHandler(svc *appsvcs.Services) *ListCategoriesHandler {
	return &ListCategoriesHandler{svc: svc}
}

// Execute lists categories, optionally filtered by a search term.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Param			search	query		string	false	"Name search term"
//	@Success		200		{array}		CategoryResponse
//	@Router			/categories [get]
func (h *ListCategoriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Category.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// GetCategoryHandler handles GET /categories/{id} requests.
type GetCategoryHandler struct {
	svc *appsvcs.Services
}

// NewGetCategoryHandler returns a GetCategoryHandler backed by the given services.
func NewGetCategoryHandler(svc *appsvcs.Services) *GetCategoryHandler {
	return &GetCategoryHandler{svc: svc}
}

// Execute retrieves one category by ID.
//
//	@Summary		Get category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	CategoryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/categories/{id} [get]
func (h *GetCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.svc.Category.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCategoryResponse(category))
}

// UpdateCategoryHandler handles PUT /categories/{id} requests.
type UpdateCategoryHandler struct {
	svc *appsvcs.Services
}

// NewUpdateCategoryHandler returns an UpdateCategoryHandler backed by the given services.
func NewUpdateCategoryHandler(svc *appsvcs.Services) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{svc: svc}
}

// Execute renames a category.
//
//	@Summary		Update category
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Category ID"
//	@Param			request	body		CategoryRequest	true	"Category update request"
//	@Success		200		{object}	CategoryResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/categories/{id} [put]
func (h *UpdateCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CategoryRequest](w, r)
	if !ok {
		return
	}

	category, err := h.svc.Category.Update(r.Context(), id, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toCategoryResponse(category))
}

// DeleteCategoryHandler handles DELETE /categories/{id} requests.
type DeleteCategoryHandler struct {
	svc *appsvcs.Services
}

// NewDeleteCategoryHandler returns a DeleteCategoryHandler backed by the given services.
func NewDeleteCategoryHandler(svc *appsvcs.Services) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{svc: svc}
}

// Execute removes a category.
//
//	@Summary		Delete category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	ErrorResponse
//	@Router			/categories/{id} [delete]
func (h *DeleteCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.svc.Category.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
