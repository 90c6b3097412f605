package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad de venta.
const (
	UnitTypePiece  = "PIECE"
	UnitTypeWeight = "WEIGHT"
)

// Product representa un producto del catálogo de una Company (y opcionalmente
// de una Branch). CurrentStock es el contador autoritativo de existencias:
// solo se muta vía ProductRepository.DecrementStock / IncrementStock, nunca
// por asignación directa ni por Update. MinStockLevel en 0 significa usar el
// umbral global configurado.
type Product struct {
	ID            string
	CompanyID     string
	BranchID      string // opcional
	Name          string
	Category      string
	Size          string
	UnitType      string // PIECE, WEIGHT
	ShelfLocation string // ej: A-1
	Barcode       string
	Price         decimal.Decimal // precio de venta unitario
	CurrentStock  int64           // nunca negativo
	MinStockLevel int64           // umbral de alerta; 0 = usar default
	IsActive      bool            // ciclo de vida suave, nunca borrado físico
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStockThreshold devuelve el umbral efectivo de alerta del producto.
func (p *Product) LowStockThreshold(defaultThreshold int64) int64 {
	if p.MinStockLevel > 0 {
		return p.MinStockLevel
	}
	return defaultThreshold
}
