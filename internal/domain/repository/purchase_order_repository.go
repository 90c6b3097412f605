package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	// UpdateStatus persiste el cambio de estado y la fecha de recepción.
	UpdateStatus(po *entity.PurchaseOrder) error
}
