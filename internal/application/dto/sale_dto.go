package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito. Solo producto y cantidad: el precio se
// relee siempre del registro autoritativo del producto, nunca del cliente.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	// Price se acepta en el body por compatibilidad con clientes viejos pero
	// se ignora por completo al calcular totales.
	Price decimal.Decimal `json:"price,omitempty"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	Items    []SaleItemRequest `json:"items"`
	IsCredit bool              `json:"is_credit"`
}

// LineItemResponse línea de venta con snapshots.
type LineItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	UnitType     string          `json:"unit_type"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
}

// SaleResponse representación pública de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	BranchID      string             `json:"branch_id,omitempty"`
	SalesRepID    string             `json:"sales_rep_id"`
	Items         []LineItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	VATAmount     decimal.Decimal    `json:"vat_amount"`
	IsCredit      bool               `json:"is_credit"`
	CreditSettled bool               `json:"credit_settled"`
	Status        string             `json:"status"`
	IsPrepared    bool               `json:"is_prepared"`
	PreparedBy    string             `json:"prepared_by,omitempty"`
	RefundStatus  string             `json:"refund_status"`
	RefundReason  string             `json:"refund_reason,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Page  PageResponse   `json:"page"`
}

// RefundRequest cuerpo de POST /api/sales/:id/refund.
type RefundRequest struct {
	Reason string `json:"reason"`
}
