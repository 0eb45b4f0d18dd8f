package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/autospares/services/sales/domain/models"
)

// SaleItemRequest is one line of a proposed sale. Prices come from the
// point-of-sale client and are snapshotted into the sale record on commit.
//
// No validate tags here: cart semantics (non-empty cart, positive qty and
// prices, part reference present) belong to models.ValidateCart, so every
// rejected cart surfaces as a 400 with a single error message.
type SaleItemRequest struct {
	Part         uuid.UUID       `json:"part" example:"550e8400-e29b-41d4-a716-446655440000"`
	Qty          int             `json:"qty" example:"2"`
	SellingPrice decimal.Decimal `json:"selling_price" swaggertype:"number" example:"65"`
	BuyingPrice  decimal.Decimal `json:"buying_price" swaggertype:"number" example:"45"`
} // @name SaleItemRequest

// SaleRequest is the request body for committing a sale.
type SaleRequest struct {
	Items []SaleItemRequest `json:"items"`
} // @name SaleRequest

// SaleItemResponse is one committed line of a recorded sale.
type SaleItemResponse struct {
	Part         uuid.UUID       `json:"part"`
	Qty          int             `json:"qty"`
	SellingPrice decimal.Decimal `json:"selling_price" swaggertype:"number"`
	BuyingPrice  decimal.Decimal `json:"buying_price" swaggertype:"number"`
} // @name SaleItemResponse

// SaleResponse is the JSON shape of a recorded sale.
type SaleResponse struct {
	ID         uuid.UUID          `json:"id"`
	Total      decimal.Decimal    `json:"total" swaggertype:"number"`
	OccurredAt time.Time          `json:"occurred_at"`
	Items      []SaleItemResponse `json:"items"`
} // @name SaleResponse

// CommitSaleResponse wraps a committed sale with a confirmation message.
type CommitSaleResponse struct {
	Message string       `json:"message" example:"Sale completed"`
	Sale    SaleResponse `json:"sale"`
} // @name CommitSaleResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"insufficient stock"`
} // @name SalesErrorResponse

func (r SaleRequest) toCart() []models.CartItem {
	items := make([]models.CartItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = models.CartItem{
			PartID:       item.Part,
			Qty:          item.Qty,
			SellingPrice: item.SellingPrice,
			BuyingPrice:  item.BuyingPrice,
		}
	}
	return items
}

func toSaleResponse(sale *models.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			Part:         item.PartID,
			Qty:          item.Qty,
			SellingPrice: item.SellingPrice,
			BuyingPrice:  item.BuyingPrice,
		}
	}
	return SaleResponse{
		ID:         sale.ID,
		Total:      sale.Total,
		OccurredAt: sale.OccurredAt,
		Items:      items,
	}
}

func toSaleResponses(sales []*models.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		out[i] = toSaleResponse(sale)
	}
	return out
}
