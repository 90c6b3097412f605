package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto con su stock inicial.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Size          string          `json:"size,omitempty"`
	UnitType      string          `json:"unit_type"`
	ShelfLocation string          `json:"shelf_location"`
	Barcode       string          `json:"barcode,omitempty"`
	Price         decimal.Decimal `json:"price"`
	InitialStock  int64           `json:"initial_stock"`
	MinStockLevel int64           `json:"min_stock_level,omitempty"`
	BranchID      string          `json:"branch_id,omitempty"`
}

// UpdateProductRequest edición de catálogo. No incluye stock: el contador
// solo se mueve por ventas y recepciones de compra.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	ShelfLocation *string          `json:"shelf_location,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	MinStockLevel *int64           `json:"min_stock_level,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	BranchID      string          `json:"branch_id,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Size          string          `json:"size,omitempty"`
	UnitType      string          `json:"unit_type"`
	ShelfLocation string          `json:"shelf_location"`
	Barcode       string          `json:"barcode,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CurrentStock  int64           `json:"current_stock"`
	MinStockLevel int64           `json:"min_stock_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}
