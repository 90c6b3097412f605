package sale

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la venta y todos sus
// decrementos de stock se confirman o se revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator genera la representación imprimible (PDF) de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, company *entity.Company) ([]byte, error)
}
