package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POItemRequest línea de una orden de compra.
type POItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePORequest cuerpo de POST /api/purchase-orders.
type CreatePORequest struct {
	Supplier string          `json:"supplier"`
	Items    []POItemRequest `json:"items"`
	Notes    string          `json:"notes,omitempty"`
}

// POItemResponse línea de orden de compra.
type POItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse representación pública de una orden de compra.
type PurchaseOrderResponse struct {
	ID         string           `json:"id"`
	CompanyID  string           `json:"company_id"`
	BranchID   string           `json:"branch_id,omitempty"`
	Supplier   string           `json:"supplier"`
	Items      []POItemResponse `json:"items"`
	TotalCost  decimal.Decimal  `json:"total_cost"`
	Notes      string           `json:"notes,omitempty"`
	Status     string           `json:"status"`
	ReceivedAt *time.Time       `json:"received_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
