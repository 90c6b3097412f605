package entity

import "time"

// Acciones auditadas por el núcleo.
const (
	ActionSaleCreated     = "SALE_CREATED"
	ActionRefundRequested = "REFUND_REQUESTED"
	ActionRefundApproved  = "REFUND_APPROVED"
	ActionCreditSettled   = "CREDIT_SETTLED"
	ActionOrderPrepared   = "ORDER_PREPARED"
	ActionPOReceived      = "PO_RECEIVED"
)

// AuditLog entrada append-only del registro de actividad. El núcleo nunca la
// actualiza ni la borra.
type AuditLog struct {
	ID         string
	CompanyID  string
	BranchID   string // opcional
	UserID     string
	Action     string // ver constantes Action*
	Details    string
	EntityType string // ej: Sale, Product, PurchaseOrder
	EntityID   string
	IPAddress  string
	CreatedAt  time.Time
}
