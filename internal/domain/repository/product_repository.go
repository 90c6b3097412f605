package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// CurrentStock solo se muta vía DecrementStock/IncrementStock: un único
// UPDATE condicional read-modify-write que nunca deja el contador negativo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(companyID, barcode string) (*entity.Product, error)
	// Update actualiza datos del catálogo; no permite tocar CurrentStock.
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	CountByCompany(companyID string) (int, error)

	// DecrementStock aplica current_stock -= qty de forma atómica, guardado
	// por current_stock >= qty. Si el piso se violaría retorna
	// *domain.InsufficientStockError sin aplicar nada. Devuelve el stock
	// resultante (post-decremento) para evaluar el umbral de alerta.
	DecrementStock(productID string, qty int64) (int64, error)
	// IncrementStock aplica current_stock += qty (recepciones de compra).
	IncrementStock(productID string, qty int64) (int64, error)
}
