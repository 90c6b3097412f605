package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Create persiste cabecera y líneas de una vez; las líneas son inmutables
// después. Los Update* solo tocan los campos de su máquina de estado.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListBySalesRep(companyID, salesRepID string, limit, offset int) ([]*entity.Sale, error)
	CountBySalesRep(companyID, salesRepID string) (int, error)
	// ListUnpreparedBetween lista ventas sin preparar creadas en [from, to),
	// para la cola del picker del día.
	ListUnpreparedBetween(companyID string, from, to time.Time) ([]*entity.Sale, error)
	ListByRefundStatus(companyID, refundStatus string) ([]*entity.Sale, error)
	ListPendingCredit(companyID string) ([]*entity.Sale, error)

	UpdatePreparation(sale *entity.Sale) error
	UpdateRefund(sale *entity.Sale) error
	UpdateCreditSettled(sale *entity.Sale) error
}
