package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// PartRequest is the request body for creating or updating a spare part.
// Prices are decimal to keep money exact end to end.
type PartRequest struct {
	PartNo           string          `json:"part_no" validate:"max=100" example:"BP-2041"`
	Code             string          `json:"code" validate:"max=100" example:"FR-PAD"`
	Brand            string          `json:"brand" validate:"max=255" example:"Bosch"`
	Description      string          `json:"description" validate:"required,max=255" example:"Front brake pad set"`
	Qty              int             `json:"qty" validate:"gte=0" example:"25"`
	Unit             string          `json:"unit" validate:"max=20" example:"PCS"`
	BuyingPrice      decimal.Decimal `json:"buying_price" swaggertype:"number" example:"45"`
	SellingPrice     decimal.Decimal `json:"selling_price" swaggertype:"number" example:"65"`
	Category         uuid.UUID       `json:"category" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	CompatibleModels []string        `json:"compatible_models" example:"TUKTUK,GLE"`
} // @name PartRequest

// PartResponse is the JSON shape of a spare part.
type PartResponse struct {
	ID               uuid.UUID       `json:"id"`
	PartNo           string          `json:"part_no"`
	Code             string          `json:"code"`
	Brand            string          `json:"brand"`
	Description      string          `json:"description"`
	Qty              int             `json:"qty"`
	Unit             string          `json:"unit"`
	BuyingPrice      decimal.Decimal `json:"buying_price" swaggertype:"number"`
	SellingPrice     decimal.Decimal `json:"selling_price" swaggertype:"number"`
	Category         uuid.UUID       `json:"category"`
	CompatibleModels []string        `json:"compatible_models"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
} // @name PartResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"spare part not found"`
} // @name ErrorResponse

func (r PartRequest) toInput() appsvcs.PartInput {
	return appsvcs.PartInput{
		PartNo:           r.PartNo,
		Code:             r.Code,
		Brand:            r.Brand,
		Description:      r.Description,
		Qty:              r.Qty,
		Unit:             r.Unit,
		BuyingPrice:      r.BuyingPrice,
		SellingPrice:     r.SellingPrice,
		CategoryID:       r.Category,
		CompatibleModels: r.CompatibleModels,
	}
}

func toPartResponse(part *models.Part) PartResponse {
	return PartResponse{
		ID:               part.ID,
		PartNo:           part.PartNo,
		Code:             part.Code,
		Brand:            part.Brand,
		Description:      part.Description,
		Qty:              part.Qty,
		Unit:             part.Unit,
		BuyingPrice:      part.BuyingPrice,
		SellingPrice:     part.SellingPrice,
		Category:         part.CategoryID,
		CompatibleModels: part.CompatibleModels,
		CreatedAt:        part.CreatedAt,
		UpdatedAt:        part.UpdatedAt,
	}
}

func toPartResponses(parts []*models.Part) []PartResponse {
	out := make([]PartResponse, len(parts))
	for i, part := range parts {
		out[i] = toPartResponse(part)
	}
	return out
}
