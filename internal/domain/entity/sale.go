package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de preparación de una venta.
const (
	SaleStatusPending   = "Pending"
	SaleStatusCompleted = "Completed"
)

// Estados del ciclo de reembolso (máquina de un solo sentido).
const (
	RefundNone      = "none"
	RefundRequested = "requested"
	RefundApproved  = "approved"
)

// LineItem es una línea inmutable de una venta. Nombre y precio unitario son
// snapshots tomados del producto al momento de la venta: ediciones
// posteriores del producto no alteran ventas históricas.
type LineItem struct {
	ID           string
	SaleID       string
	ProductID    string
	ProductName  string
	Quantity     int64
	UnitType     string
	PricePerUnit decimal.Decimal
	Total        decimal.Decimal
}

// Sale representa una venta registrada. Se crea exactamente una vez
// (líneas incluidas) y después solo se muta vía las máquinas de estado de
// preparación, reembolso y crédito.
type Sale struct {
	ID            string
	CompanyID     string
	BranchID      string // opcional
	SalesRepID    string
	Items         []LineItem
	TotalAmount   decimal.Decimal // subtotal + IVA
	VATAmount     decimal.Decimal
	IsCredit      bool
	CreditSettled bool
	Status        string // Pending, Completed
	IsPrepared    bool
	PreparedBy    string
	RefundStatus  string // none, requested, approved
	RefundReason  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanRequestRefund indica si la venta admite solicitar reembolso.
func (s *Sale) CanRequestRefund() bool { return s.RefundStatus == RefundNone }

// CanApproveRefund indica si la venta admite aprobar el reembolso.
func (s *Sale) CanApproveRefund() bool { return s.RefundStatus == RefundRequested }

// CanSettleCredit indica si la venta a crédito admite liquidación.
func (s *Sale) CanSettleCredit() bool { return s.IsCredit && !s.CreditSettled }
