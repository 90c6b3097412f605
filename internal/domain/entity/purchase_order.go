package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusPending  = "pending"
	POStatusReceived = "received"
)

// POItem línea de una orden de compra.
type POItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        int64
	UnitCost        decimal.Decimal
}

// PurchaseOrder orden de reposición a un proveedor. Al pasar a "received" el
// stock de cada producto se incrementa en una sola transacción; recibirla dos
// veces es una transición inválida.
type PurchaseOrder struct {
	ID         string
	CompanyID  string
	BranchID   string // opcional
	Supplier   string
	Items      []POItem
	TotalCost  decimal.Decimal
	Notes      string
	Status     string // pending, received
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanReceive indica si la orden admite la recepción de mercancía.
func (po *PurchaseOrder) CanReceive() bool { return po.Status == POStatusPending }
